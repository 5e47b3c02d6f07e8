package evaluate

import (
	"context"
	"log/slog"

	"github.com/abhisek/mentorly/internal/curriculum"
)

// OpenEndedAnswer is the expected-answer sentinel for free responses.
const OpenEndedAnswer = curriculum.OpenEnded

// JudgeRequest is the input to a natural-language judge.
type JudgeRequest struct {
	Question string
	Expected string
	Answer   string
	Topic    string
}

// Judge scores a free-text answer against an expected answer.
type Judge interface {
	Judge(ctx context.Context, req JudgeRequest) (Verdict, error)
}

// Evaluator grades answers with escalating strategies: exact or contains
// match, keyword patterns for open-ended questions, then an optional judge.
type Evaluator struct {
	judge  Judge
	logger *slog.Logger
}

// New creates an Evaluator. judge may be nil; logger may be nil.
func New(judge Judge, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{judge: judge, logger: logger}
}

// HasJudge reports whether a judge is configured.
func (e *Evaluator) HasJudge() bool {
	return e.judge != nil
}

// Evaluate grades answer against a diagnostic question. It never fails;
// judge errors fall back to the simple-match verdict.
func (e *Evaluator) Evaluate(ctx context.Context, q *curriculum.Question, answer string) Verdict {
	if q.IsOpenEnded() {
		v := MatchPatterns(answer, q.AcceptablePatterns)
		v.Correct = v.Correct || v.Partial
		return v
	}

	simple := MatchSimple(answer, q.ExpectedAnswer, q.AcceptableAnswers)
	if simple.Correct || e.judge == nil {
		return simple
	}

	v, err := e.judge.Judge(ctx, JudgeRequest{
		Question: q.Prompt,
		Expected: q.ExpectedAnswer,
		Answer:   answer,
		Topic:    q.Topic,
	})
	if err != nil {
		e.logger.Warn("judge failed, using simple match",
			"question", q.ID, "error", err)
		return simple
	}
	return v
}

// Submission is a generated-content answer to grade.
type Submission struct {
	Question   string
	Expected   string
	Acceptable []string
	Answer     string
	Subject    string
}

// EvaluateAnswer grades an answer to generated content. A simple match
// short-circuits; otherwise the judge decides, and without a usable judge
// the length or substring heuristic applies. It never fails.
func (e *Evaluator) EvaluateAnswer(ctx context.Context, s Submission) Verdict {
	openEnded := s.Expected == "" || s.Expected == OpenEndedAnswer
	if !openEnded {
		if v := MatchSimple(s.Answer, s.Expected, s.Acceptable); v.Correct {
			return v
		}
	}

	if e.judge != nil {
		v, err := e.judge.Judge(ctx, JudgeRequest{
			Question: s.Question,
			Expected: s.Expected,
			Answer:   s.Answer,
			Topic:    s.Subject,
		})
		if err == nil {
			return v
		}
		e.logger.Warn("judge failed, using heuristic", "subject", s.Subject, "error", err)
	}

	expected := s.Expected
	if openEnded {
		expected = OpenEndedAnswer
	}
	return heuristic(expected, s.Answer)
}
