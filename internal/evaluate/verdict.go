package evaluate

// Understanding grades how much of an open-ended answer landed.
type Understanding string

const (
	UnderstandingGood    Understanding = "good"
	UnderstandingPartial Understanding = "partial"
	UnderstandingMinimal Understanding = "minimal"
)

// Verdict is the normalized result of grading one answer.
type Verdict struct {
	Correct       bool          `json:"correct"`
	Partial       bool          `json:"partial"`
	Feedback      string        `json:"feedback,omitempty"`
	Misconception string        `json:"misconception,omitempty"`
	Understanding Understanding `json:"understanding,omitempty"`
}

// rank orders verdicts as none < partial < correct.
func (v Verdict) rank() int {
	switch {
	case v.Correct:
		return 2
	case v.Partial:
		return 1
	default:
		return 0
	}
}
