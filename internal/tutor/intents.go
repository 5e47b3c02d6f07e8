package tutor

import (
	"slices"
	"strconv"
	"strings"
)

var (
	readyWords    = []string{"yes", "ready", "ok", "sure", "let's go", "start", "begin"}
	practiceWords = []string{"practice", "problem", "quiz", "test me"}
	nextWords     = []string{"next", "move on", "next topic"}
	reviewWords   = []string{"review", "go back", "revisit"}
	newWords      = []string{"new subject", "new topic", "something new"}
	hintWords     = []string{"hint", "help", "stuck", "clue"}
	giveUpWords   = []string{"give up", "answer", "show answer", "skip", "i don't know"}
	moreWords     = []string{"more", "practice", "again"}
	continueWords = []string{"continue", "next"}
	backWords     = []string{"back", "continue", "resume"}
)

func normalize(msg string) string {
	return strings.ToLower(strings.TrimSpace(msg))
}

// isOneOf reports whether msg is exactly one of words.
func isOneOf(msg string, words []string) bool {
	return slices.Contains(words, normalize(msg))
}

// mentions reports whether msg contains any of words.
func mentions(msg string, words []string) bool {
	lower := normalize(msg)
	return slices.ContainsFunc(words, func(w string) bool {
		return strings.Contains(lower, w)
	})
}

// isReady accepts the teaching entry words. "begin" only counts once the
// assessment is done.
func isReady(msg string, afterAssessment bool) bool {
	if !afterAssessment && normalize(msg) == "begin" {
		return false
	}
	return isOneOf(msg, readyWords)
}

// wantsNewSubject matches a request to leave the current subject. A bare
// "new" only counts as an exact answer.
func wantsNewSubject(msg string) bool {
	return normalize(msg) == "new" || mentions(msg, newWords)
}

// choice parses a 1-based menu pick in [1, n].
func choice(msg string, n int) (int, bool) {
	i, err := strconv.Atoi(normalize(msg))
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
