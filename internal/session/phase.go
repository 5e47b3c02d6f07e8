package session

// Phase is the tutoring flow the next learner message is routed to.
type Phase string

const (
	PhaseStart          Phase = "start"
	PhaseTopicSelection Phase = "topic_selection"
	PhaseReturning      Phase = "returning"
	PhaseAssessment     Phase = "assessment"
	PhaseTeaching       Phase = "teaching"
	PhasePractice       Phase = "practice"
	PhaseReview         Phase = "review"
)

// AllPhases returns every phase in flow order.
func AllPhases() []Phase {
	return []Phase{
		PhaseStart,
		PhaseTopicSelection,
		PhaseReturning,
		PhaseAssessment,
		PhaseTeaching,
		PhasePractice,
		PhaseReview,
	}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseStart, PhaseTopicSelection, PhaseReturning, PhaseAssessment,
		PhaseTeaching, PhasePractice, PhaseReview:
		return true
	}
	return false
}

// Label returns a short display name for status bars.
func (p Phase) Label() string {
	switch p {
	case PhaseTopicSelection:
		return "Choosing a topic"
	case PhaseReturning:
		return "Welcome back"
	case PhaseAssessment:
		return "Assessment"
	case PhaseTeaching:
		return "Learning"
	case PhasePractice:
		return "Practice"
	case PhaseReview:
		return "Review"
	default:
		return "Starting"
	}
}
