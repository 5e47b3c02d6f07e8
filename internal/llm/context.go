package llm

import "context"

type purposeKey struct{}

// Purposes recorded with every logged request.
const (
	PurposeOverview    = "topic-overview"
	PurposeAssessment  = "assessment"
	PurposeLesson      = "lesson"
	PurposePractice    = "practice"
	PurposeSocratic    = "socratic"
	PurposeHint        = "hint"
	PurposeExplanation = "explanation"
	PurposeJudge       = "judge"
)

// WithPurpose labels the requests made under ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
