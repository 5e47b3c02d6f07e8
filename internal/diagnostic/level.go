package diagnostic

import "github.com/abhisek/mentorly/internal/curriculum"

// Tally counts attempts and correct answers per level.
type Tally map[curriculum.Level]LevelCount

// LevelCount is the per-level attempt record.
type LevelCount struct {
	Attempted int
	Correct   int
}

// Add records one answer at level.
func (t Tally) Add(level curriculum.Level, correct bool) {
	if !level.Valid() {
		level = curriculum.LevelBeginner
	}
	c := t[level]
	c.Attempted++
	if correct {
		c.Correct++
	}
	t[level] = c
}

// Accuracy returns correct/attempted at level, or 0 when nothing was
// attempted there.
func (t Tally) Accuracy(level curriculum.Level) float64 {
	c := t[level]
	if c.Attempted == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempted)
}

// ClassifyByAccuracy is the placement-quiz rule: a level counts as passed at
// 50% accuracy, and advanced needs intermediate passed too.
func ClassifyByAccuracy(t Tally) curriculum.Level {
	adv := t.Accuracy(curriculum.LevelAdvanced)
	mid := t.Accuracy(curriculum.LevelIntermediate)
	beg := t.Accuracy(curriculum.LevelBeginner)

	switch {
	case adv >= 0.5 && mid >= 0.5:
		return curriculum.LevelAdvanced
	case mid >= 0.5 && beg >= 0.5:
		return curriculum.LevelIntermediate
	default:
		return curriculum.LevelBeginner
	}
}

// ClassifyByPresence is the subject-assessment rule: a level counts as
// passed with at least one correct answer there.
func ClassifyByPresence(t Tally) curriculum.Level {
	adv := t[curriculum.LevelAdvanced].Correct
	mid := t[curriculum.LevelIntermediate].Correct
	beg := t[curriculum.LevelBeginner].Correct

	switch {
	case adv >= 1 && mid >= 1:
		return curriculum.LevelAdvanced
	case mid >= 1 && beg >= 1:
		return curriculum.LevelIntermediate
	default:
		return curriculum.LevelBeginner
	}
}
