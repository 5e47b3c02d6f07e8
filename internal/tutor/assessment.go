package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/diagnostic"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
)

// handleTopicSelection takes msg as the new subject, outlines it and asks
// the first assessment question.
func (t *Tutor) handleTopicSelection(ctx context.Context, msg string) (string, error) {
	subject := strings.TrimSpace(msg)
	if subject == "" {
		t.sess.Phase = session.PhaseTopicSelection
		return askSubject, nil
	}

	t.flow = flow{subject: subject, key: subjectKey(subject)}
	t.profile.LastTopic = subject
	t.profile.AddInProgress(t.flow.key)
	if err := t.save(ctx); err != nil {
		return "", err
	}

	t.flow.overview = t.content.TopicOverview(ctx, subject, t.level())
	t.flow.questions = t.content.AssessmentQuestions(ctx, subject, AssessmentSize)
	if len(t.flow.questions) == 0 {
		t.flow.questions = content.FallbackAssessment(subject)
	}
	t.flow.assessmentStart = len(t.sess.AssessmentAnswers)

	t.sess.Phase = session.PhaseAssessment
	t.sess.Topic = subject
	t.logger.InfoContext(ctx, "subject selected", "subject", subject, "key", t.flow.key,
		"subtopics", len(t.flow.overview.Subtopics), "questions", len(t.flow.questions))

	return subjectIntro(subject, t.flow.overview, t.flow.questions[0].Question), nil
}

// handleReturning continues the previous subject or starts a new one.
func (t *Tutor) handleReturning(ctx context.Context, msg string) (string, error) {
	lower := normalize(msg)
	if strings.Contains(lower, "continue") || lower == "1" {
		subject := t.profile.LastTopic
		t.flow = flow{subject: subject, key: subjectKey(subject)}
		t.sess.Topic = subject
		t.flow.overview = t.content.TopicOverview(ctx, subject, t.level())
		return t.startTeaching(ctx), nil
	}
	t.sess.Phase = session.PhaseTopicSelection
	return t.handleTopicSelection(ctx, msg)
}

// handleAssessment grades one answer and asks the next question. Once the
// questions run out the learner's level is set and teaching can begin.
func (t *Tutor) handleAssessment(ctx context.Context, msg string) (string, error) {
	f := &t.flow
	if f.questionIdx >= len(f.questions) {
		if isReady(msg, true) {
			return t.startTeaching(ctx), nil
		}
		return t.content.SocraticResponse(ctx, content.SocraticRequest{
			Subject:  f.subject,
			Subtopic: "getting started",
			Message:  msg,
			Level:    t.level(),
		}), nil
	}

	q := f.questions[f.questionIdx]
	verdict := t.grader.EvaluateAnswer(ctx, evaluate.Submission{
		Question:   q.Question,
		Expected:   q.Answer,
		Acceptable: q.AcceptableAnswers,
		Answer:     msg,
		Subject:    f.subject,
	})
	id := q.ID
	if id == "" {
		id = fmt.Sprintf("q%d", f.questionIdx)
	}
	t.sess.RecordAssessmentAnswer(id, msg, verdict.Correct)
	f.questionIdx++

	ack := acknowledge(verdict.Correct, verdict.Partial)
	if f.questionIdx >= len(f.questions) {
		done, err := t.completeAssessment(ctx)
		if err != nil {
			return "", err
		}
		return ack + "\n\n" + done, nil
	}
	return nextQuestion(ack, f.questions[f.questionIdx].Question), nil
}

// completeAssessment places the learner by the answers given since the
// subject was picked and regenerates the overview at that level.
func (t *Tutor) completeAssessment(ctx context.Context) (string, error) {
	f := &t.flow
	tally := diagnostic.Tally{}
	correct := 0
	for i, ans := range t.sess.AssessmentAnswers[f.assessmentStart:] {
		if i >= len(f.questions) {
			break
		}
		tally.Add(f.questions[i].Level, ans.Correct)
		if ans.Correct {
			correct++
		}
	}
	level := diagnostic.ClassifyByPresence(tally)

	t.profile.CurrentLevel = level
	t.profile.AddAssessmentResult(learner.AssessmentRecord{
		Kind:      "subject",
		Topic:     f.key,
		Level:     level,
		Correct:   correct,
		Total:     len(f.questions),
		Timestamp: time.Now(),
	})
	if err := t.save(ctx); err != nil {
		return "", err
	}
	t.logger.InfoContext(ctx, "assessment complete", "subject", f.subject, "level", level, "correct", correct)

	f.overview = t.content.TopicOverview(ctx, f.subject, level)
	return assessmentComplete(level), nil
}
