package evaluate

import "strings"

// MatchSimple reports a correct verdict when the answer equals expected
// (case-insensitive, trimmed) or contains any acceptable variant. A miss
// is not final; callers escalate to a judge.
func MatchSimple(answer, expected string, acceptable []string) Verdict {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return Verdict{}
	}
	if a == strings.ToLower(strings.TrimSpace(expected)) {
		return Verdict{Correct: true}
	}
	for _, acc := range acceptable {
		acc = strings.ToLower(acc)
		if acc != "" && strings.Contains(a, acc) {
			return Verdict{Correct: true}
		}
	}
	return Verdict{}
}

// MatchPatterns counts keyword patterns present in the answer. Two or more
// hits is correct, one is partial.
func MatchPatterns(answer string, patterns []string) Verdict {
	a := strings.ToLower(answer)
	hits := 0
	for _, p := range patterns {
		p = strings.ToLower(p)
		if p != "" && strings.Contains(a, p) {
			hits++
		}
	}

	switch {
	case hits >= 2:
		return Verdict{Correct: true, Understanding: UnderstandingGood}
	case hits == 1:
		return Verdict{Partial: true, Understanding: UnderstandingPartial}
	default:
		return Verdict{Understanding: UnderstandingMinimal}
	}
}

// heuristic grades an answer without a judge. Open-ended answers pass on
// length alone; closed answers need equality or to contain expected.
func heuristic(expected, answer string) Verdict {
	if strings.EqualFold(strings.TrimSpace(expected), OpenEndedAnswer) {
		if len(strings.TrimSpace(answer)) > 10 {
			return Verdict{Correct: true, Feedback: "Thanks for sharing!"}
		}
		return Verdict{Partial: true, Feedback: "Could you tell me a bit more?"}
	}

	a := strings.ToLower(strings.TrimSpace(answer))
	e := strings.ToLower(strings.TrimSpace(expected))
	if a != "" && (a == e || strings.Contains(a, e)) {
		return Verdict{Correct: true, Feedback: "Let's continue."}
	}
	return Verdict{Feedback: "Let me help you with that."}
}
