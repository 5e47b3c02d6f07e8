// Package diagnostic runs the adaptive genetics placement quiz.
package diagnostic

import (
	"context"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/samber/lo"
)

// ErrNoActiveQuestion is reported when an answer arrives with no question
// outstanding.
const ErrNoActiveQuestion = "No active question"

// State is the lifecycle of an Assessment.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Result records one answered question.
type Result struct {
	QuestionID string           `json:"question_id"`
	Question   string           `json:"question"`
	Answer     string           `json:"answer"`
	Correct    bool             `json:"correct"`
	Partial    bool             `json:"partial"`
	Level      curriculum.Level `json:"level"`
	Topic      string           `json:"topic"`
}

// StepResult is returned by SubmitAnswer.
type StepResult struct {
	Verdict  evaluate.Verdict
	Next     *curriculum.Question
	Complete bool
	Err      string
}

// Summary describes a finished (or partial) assessment.
type Summary struct {
	Level             curriculum.Level `json:"level"`
	QuestionsAnswered int              `json:"questions_answered"`
	CorrectAnswers    int              `json:"correct_answers"`
	Accuracy          float64          `json:"accuracy"`
	KnowledgeGaps     []string         `json:"knowledge_gaps"`
	Strengths         []string         `json:"strengths"`
	Results           []Result         `json:"results"`
	RecommendedTopic  string           `json:"recommended_topic"`
}

// Assessment walks the decision graph, grading each answer.
type Assessment struct {
	evaluator *evaluate.Evaluator
	state     State
	current   *curriculum.Question
	results   []Result
}

// New creates an idle assessment.
func New(evaluator *evaluate.Evaluator) *Assessment {
	if evaluator == nil {
		evaluator = evaluate.New(nil, nil)
	}
	return &Assessment{evaluator: evaluator}
}

// Start clears previous results and returns the first question.
func (a *Assessment) Start() *curriculum.Question {
	a.results = nil
	a.current = curriculum.FirstQuestion()
	a.state = StateRunning
	return a.current
}

// State returns the lifecycle state.
func (a *Assessment) State() State { return a.state }

// Current returns the outstanding question, or nil.
func (a *Assessment) Current() *curriculum.Question { return a.current }

// Results returns the answered questions in order.
func (a *Assessment) Results() []Result {
	return append([]Result(nil), a.results...)
}

// SubmitAnswer grades answer against the current question and advances.
// Submitting with no current question is a no-op that reports completion.
func (a *Assessment) SubmitAnswer(ctx context.Context, answer string) StepResult {
	q := a.current
	if q == nil {
		return StepResult{Err: ErrNoActiveQuestion, Complete: true}
	}

	v := a.evaluator.Evaluate(ctx, q, answer)
	a.results = append(a.results, Result{
		QuestionID: q.ID,
		Question:   q.Prompt,
		Answer:     answer,
		Correct:    v.Correct,
		Partial:    v.Partial,
		Level:      q.Level,
		Topic:      q.Topic,
	})

	a.current = curriculum.NextQuestion(q.ID, v.Correct)
	if a.current == nil {
		a.state = StateComplete
		return StepResult{Verdict: v, Complete: true}
	}
	return StepResult{Verdict: v, Next: a.current}
}

// Level classifies the learner from the results so far.
func (a *Assessment) Level() curriculum.Level {
	t := Tally{}
	for _, r := range a.results {
		t.Add(r.Level, r.Correct)
	}
	return ClassifyByAccuracy(t)
}

// KnowledgeGaps lists topics answered neither correctly nor partially.
func (a *Assessment) KnowledgeGaps() []string {
	return topicsWhere(a.results, func(r Result) bool { return !r.Correct && !r.Partial })
}

// Strengths lists topics answered correctly.
func (a *Assessment) Strengths() []string {
	return topicsWhere(a.results, func(r Result) bool { return r.Correct })
}

func topicsWhere(results []Result, keep func(Result) bool) []string {
	matched := lo.Filter(results, func(r Result, _ int) bool { return r.Topic != "" && keep(r) })
	return lo.Uniq(lo.Map(matched, func(r Result, _ int) string { return r.Topic }))
}

// gapPriority orders foundational topics checked before the level fallback.
var gapPriority = []string{
	curriculum.TopicDNABasics,
	curriculum.TopicMendelian,
	curriculum.TopicPunnett,
}

// RecommendedStartTopic picks the first foundational gap, otherwise a
// topic suited to the level.
func (a *Assessment) RecommendedStartTopic() string {
	gaps := a.KnowledgeGaps()
	for _, topic := range gapPriority {
		if lo.Contains(gaps, topic) {
			return topic
		}
	}

	switch a.Level() {
	case curriculum.LevelAdvanced:
		return curriculum.TopicPedigree
	case curriculum.LevelIntermediate:
		return curriculum.TopicPunnett
	default:
		return curriculum.TopicMendelian
	}
}

// Summary returns the aggregate view of the assessment.
func (a *Assessment) Summary() Summary {
	correct := lo.CountBy(a.results, func(r Result) bool { return r.Correct })
	total := len(a.results)

	var acc float64
	if total > 0 {
		acc = float64(correct) / float64(total)
	}

	return Summary{
		Level:             a.Level(),
		QuestionsAnswered: total,
		CorrectAnswers:    correct,
		Accuracy:          acc,
		KnowledgeGaps:     a.KnowledgeGaps(),
		Strengths:         a.Strengths(),
		Results:           a.Results(),
		RecommendedTopic:  a.RecommendedStartTopic(),
	}
}
