package session

import "time"

// Summary is a read-only projection of a session, folded into the learner
// profile when the session ends.
type Summary struct {
	SessionID         string    `json:"session_id"`
	Topic             string    `json:"topic_covered,omitempty"`
	QuestionsAsked    int       `json:"questions_asked"`
	ProblemsAttempted int       `json:"problems_attempted"`
	ProblemsCorrect   int       `json:"problems_correct"`
	Accuracy          *float64  `json:"accuracy"`
	StartedAt         time.Time `json:"duration_start"`
	Timestamp         time.Time `json:"timestamp"`
	Text              string    `json:"summary,omitempty"`
}

// Summary derives the session summary. It does not mutate the state.
func (s *State) Summary() Summary {
	correct := 0
	for _, p := range s.Problems {
		if p.Correct {
			correct++
		}
	}

	sum := Summary{
		SessionID:         s.ID,
		Topic:             s.Topic,
		QuestionsAsked:    s.QuestionsAsked,
		ProblemsAttempted: len(s.Problems),
		ProblemsCorrect:   correct,
		StartedAt:         s.StartedAt,
		Timestamp:         s.clock(),
	}
	if n := len(s.Problems); n > 0 {
		acc := float64(correct) / float64(n)
		sum.Accuracy = &acc
	}
	return sum
}

// Duration is the time between session start and the summary.
func (s Summary) Duration() time.Duration {
	return s.Timestamp.Sub(s.StartedAt)
}
