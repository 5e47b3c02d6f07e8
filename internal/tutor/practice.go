package tutor

import (
	"context"
	"time"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
)

// startPractice generates a problem set for the current subtopic.
func (t *Tutor) startPractice(ctx context.Context) string {
	f := &t.flow
	t.sess.Phase = session.PhasePractice

	name := t.subtopicName()
	f.problems = t.content.PracticeProblems(ctx, f.subject, name, t.level(), PracticeSize)
	f.problemIdx = 0
	f.hintsGiven = 0
	f.setStart = len(t.sess.Problems)

	if len(f.problems) == 0 {
		return noProblems
	}
	return practiceStart(name, f.problems[0].Question)
}

func (t *Tutor) currentProblem() (content.PracticeProblem, bool) {
	f := &t.flow
	if f.problemIdx >= len(f.problems) {
		return content.PracticeProblem{}, false
	}
	return f.problems[f.problemIdx], true
}

// handlePractice handles hints, giving up and answers for the current
// problem, and the follow-up choice once the set is done.
func (t *Tutor) handlePractice(ctx context.Context, msg string) (string, error) {
	f := &t.flow
	if len(f.problems) == 0 {
		return t.startPractice(ctx), nil
	}
	problem, ok := t.currentProblem()
	if !ok {
		return t.afterPractice(ctx, msg)
	}

	if isOneOf(msg, hintWords) {
		return t.hint(ctx, problem), nil
	}

	if isOneOf(msg, giveUpWords) {
		t.sess.RecordProblem(problemID(problem), msg, false, "gave up")
		reply := revealAnswer(problem.Answer, problem.Explanation)
		next, err := t.nextProblem(ctx)
		if err != nil {
			return "", err
		}
		return reply + "\n\n" + next, nil
	}

	verdict := t.grader.EvaluateAnswer(ctx, evaluate.Submission{
		Question:   problem.Question,
		Expected:   problem.Answer,
		Acceptable: problem.AcceptableAnswers,
		Answer:     msg,
		Subject:    f.subject,
	})

	if !verdict.Correct {
		t.sess.RecordProblem(problemID(problem), msg, false, "incorrect")
		if verdict.Misconception != "" {
			t.profile.AddMisconception(verdict.Misconception)
			if err := t.save(ctx); err != nil {
				return "", err
			}
		}
		return incorrectReply(verdict.Feedback, verdict.Misconception), nil
	}

	t.sess.RecordProblem(problemID(problem), msg, true, "correct")
	t.profile.UpdateMastery(f.key, t.profile.Mastery(f.key)+MasteryGain)
	if err := t.save(ctx); err != nil {
		return "", err
	}
	reply := correctReply(problem.Explanation)
	next, err := t.nextProblem(ctx)
	if err != nil {
		return "", err
	}
	return reply + "\n\n" + next, nil
}

// hint serves the problem's own hints in order, then asks for a new one.
func (t *Tutor) hint(ctx context.Context, problem content.PracticeProblem) string {
	f := &t.flow
	if f.hintsGiven < len(problem.Hints) {
		h := problem.Hints[f.hintsGiven]
		f.hintsGiven++
		return hintReply(h)
	}

	var last string
	if n := len(t.sess.Problems); n > f.setStart {
		if p := t.sess.Problems[n-1]; p.ProblemID == problemID(problem) {
			last = p.Answer
		}
	}
	h := t.content.Hint(ctx, content.HintRequest{
		Subject:       f.subject,
		Problem:       problem,
		LearnerAnswer: last,
		HintsGiven:    f.hintsGiven,
	})
	if h == content.HintsExhausted {
		return h
	}
	f.hintsGiven++
	return hintReply(h)
}

// nextProblem advances the set. Past the last problem it scores the set
// and records it on the profile.
func (t *Tutor) nextProblem(ctx context.Context) (string, error) {
	f := &t.flow
	f.problemIdx++
	f.hintsGiven = 0

	if problem, ok := t.currentProblem(); ok {
		return problemPrompt(f.problemIdx+1, problem.Question), nil
	}

	attempts := t.sess.Problems[f.setStart:]
	correct := countCorrect(attempts)
	t.profile.AddQuizScore(learner.QuizScore{
		Topic:     f.key,
		Subtopic:  t.subtopicName(),
		Correct:   correct,
		Total:     len(f.problems),
		Timestamp: time.Now(),
	})
	if err := t.save(ctx); err != nil {
		return "", err
	}
	return practiceDone(correct, len(attempts)), nil
}

// afterPractice routes the choice offered once a set is complete.
func (t *Tutor) afterPractice(ctx context.Context, msg string) (string, error) {
	switch {
	case wantsNewSubject(msg):
		t.sess.Phase = session.PhaseTopicSelection
		return askSubject, nil
	case mentions(msg, continueWords):
		t.sess.Phase = session.PhaseTeaching
		return t.nextSubtopic(ctx), nil
	case mentions(msg, moreWords):
		return t.startPractice(ctx), nil
	}
	f := &t.flow
	return practiceDone(countCorrect(t.sess.Problems[f.setStart:]), len(t.sess.Problems)-f.setStart), nil
}

func countCorrect(attempts []session.ProblemAttempt) int {
	n := 0
	for _, a := range attempts {
		if a.Correct {
			n++
		}
	}
	return n
}

func problemID(p content.PracticeProblem) string {
	if p.ID == "" {
		return "p1"
	}
	return p.ID
}
