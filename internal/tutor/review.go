package tutor

import (
	"context"

	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/session"
)

func (t *Tutor) startReview() string {
	if len(t.flow.covered) == 0 {
		return nothingToReview
	}
	t.sess.Phase = session.PhaseReview
	return reviewMenu(t.flow.subject, t.flow.covered)
}

// handleReview re-explains a covered subtopic picked by number. Each pick
// of the same subtopic asks for a fresh angle.
func (t *Tutor) handleReview(ctx context.Context, msg string) (string, error) {
	f := &t.flow
	if isOneOf(msg, backWords) {
		t.sess.Phase = session.PhaseTeaching
		return reviewDone(t.subtopicName()), nil
	}

	i, ok := choice(msg, len(f.covered))
	if !ok {
		return reviewMenu(f.subject, f.covered), nil
	}

	name := f.covered[i]
	if f.reviews == nil {
		f.reviews = map[string]int{}
	}
	f.reviews[name]++
	text := t.content.AlternativeExplanation(ctx, content.ExplanationRequest{
		Subject:  f.subject,
		Subtopic: name,
		Question: msg,
		Attempt:  f.reviews[name],
		Level:    t.level(),
	})
	return reviewReply(name, text), nil
}
