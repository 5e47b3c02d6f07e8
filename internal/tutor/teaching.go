package tutor

import (
	"context"
	"fmt"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/session"
	"github.com/samber/lo"
)

// handleTeaching runs the Socratic dialogue. Keywords switch to practice,
// the next subtopic, review or a new subject.
func (t *Tutor) handleTeaching(ctx context.Context, msg string) (string, error) {
	switch {
	case mentions(msg, practiceWords):
		return t.startPractice(ctx), nil
	case mentions(msg, nextWords):
		return t.nextSubtopic(ctx), nil
	case mentions(msg, reviewWords):
		return t.startReview(), nil
	case wantsNewSubject(msg):
		t.sess.Phase = session.PhaseTopicSelection
		return askSubject, nil
	case isReady(msg, false):
		return t.startTeaching(ctx), nil
	}

	return t.content.SocraticResponse(ctx, content.SocraticRequest{
		Subject:  t.flow.subject,
		Subtopic: t.subtopicName(),
		Message:  msg,
		Context:  t.recentContext(3),
		Level:    t.level(),
	}), nil
}

// startTeaching opens the first subtopic of the overview.
func (t *Tutor) startTeaching(ctx context.Context) string {
	f := &t.flow
	t.sess.Phase = session.PhaseTeaching

	subtopics := f.overview.Subtopics
	if len(subtopics) == 0 {
		subtopics = []content.Subtopic{{
			ID:          "main",
			Name:        f.subject,
			Description: fmt.Sprintf("Core concepts of %s", f.subject),
		}}
		f.overview.Subtopics = subtopics
	}
	f.subtopicIdx = 0
	t.enterSubtopic(ctx, subtopics[0])

	question := f.lesson.FirstGuidingQuestion()
	if question == "" {
		question = fmt.Sprintf("What do you think %s means?", f.subtopic.Name)
	}
	return lessonStart(f.subtopic.Name, question)
}

// nextSubtopic advances through the overview. Past the last subtopic it
// offers the next steps without changing state.
func (t *Tutor) nextSubtopic(ctx context.Context) string {
	f := &t.flow
	if f.subtopicIdx+1 >= len(f.overview.Subtopics) {
		f.subtopicIdx = len(f.overview.Subtopics)
		return subtopicsDone(f.subject)
	}
	f.subtopicIdx++
	t.enterSubtopic(ctx, f.overview.Subtopics[f.subtopicIdx])

	question := f.lesson.FirstGuidingQuestion()
	if question == "" {
		question = fmt.Sprintf("What comes to mind when you think about %s?", f.subtopic.Name)
	}
	return lessonNext(f.subtopic, question)
}

func (t *Tutor) enterSubtopic(ctx context.Context, st content.Subtopic) {
	f := &t.flow
	f.subtopic = st
	f.lesson = t.content.LessonContent(ctx, f.subject, st.Name, t.level())
	if !lo.Contains(f.covered, st.Name) {
		f.covered = append(f.covered, st.Name)
	}
	t.sess.Subtopic = st.Name
}

// subtopicName falls back to the subject before any subtopic is open.
func (t *Tutor) subtopicName() string {
	if t.flow.subtopic.Name != "" {
		return t.flow.subtopic.Name
	}
	return t.flow.subject
}
