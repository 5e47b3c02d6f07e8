// Package session holds per-conversation bookkeeping for a tutoring session.
package session

import (
	"time"

	"github.com/google/uuid"
)

// MaxHistory is the number of exchanges kept in conversation history.
const MaxHistory = 20

// Role identifies who produced an exchange.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Exchange is one message in the conversation.
type Exchange struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ProblemAttempt records one answer to a practice problem.
type ProblemAttempt struct {
	ProblemID string    `json:"problem_id"`
	Answer    string    `json:"answer"`
	Correct   bool      `json:"correct"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// AssessmentAnswer records one answer to a subject assessment question.
type AssessmentAnswer struct {
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	Timestamp  time.Time `json:"timestamp"`
}

// State is the mutable state of one tutoring session. It is owned by a
// single conversation and is not safe for concurrent use.
type State struct {
	ID                string             `json:"session_id"`
	LearnerID         string             `json:"learner_id"`
	Topic             string             `json:"current_topic,omitempty"`
	Subtopic          string             `json:"current_subtopic,omitempty"`
	History           []Exchange         `json:"conversation_history"`
	QuestionsAsked    int                `json:"questions_asked"`
	Problems          []ProblemAttempt   `json:"problems_attempted"`
	StartedAt         time.Time          `json:"session_start"`
	Phase             Phase              `json:"flow_state"`
	AssessmentAnswers []AssessmentAnswer `json:"assessment_answers"`

	now func() time.Time
}

// New starts a session for learnerID in the start phase.
func New(learnerID string) *State {
	return newWithClock(learnerID, time.Now)
}

func newWithClock(learnerID string, now func() time.Time) *State {
	return &State{
		ID:        uuid.New().String(),
		LearnerID: learnerID,
		StartedAt: now(),
		Phase:     PhaseStart,
		now:       now,
	}
}

func (s *State) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// RecordExchange appends a message to history, evicting the oldest past
// MaxHistory. Assistant messages count as questions asked.
func (s *State) RecordExchange(role Role, content string) {
	s.History = append(s.History, Exchange{Role: role, Content: content, Timestamp: s.clock()})
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = append(s.History[:0:0], s.History[over:]...)
	}
	if role == RoleAssistant {
		s.QuestionsAsked++
	}
}

// RecordProblem appends a practice attempt.
func (s *State) RecordProblem(problemID, answer string, correct bool, feedback string) {
	s.Problems = append(s.Problems, ProblemAttempt{
		ProblemID: problemID,
		Answer:    answer,
		Correct:   correct,
		Feedback:  feedback,
		Timestamp: s.clock(),
	})
}

// RecordAssessmentAnswer appends an assessment answer.
func (s *State) RecordAssessmentAnswer(questionID, answer string, correct bool) {
	s.AssessmentAnswers = append(s.AssessmentAnswers, AssessmentAnswer{
		QuestionID: questionID,
		Answer:     answer,
		Correct:    correct,
		Timestamp:  s.clock(),
	})
}

// RecentContext returns up to the last n exchanges, oldest first.
func (s *State) RecentContext(n int) []Exchange {
	if n <= 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	return append([]Exchange(nil), s.History[len(s.History)-n:]...)
}
