package curriculum

// End marks the terminal edge of the decision graph.
const End = "end"

// startID is the root of the decision graph.
const startID = "diag_001"

// Branch is the outgoing rule for one question. Follow-up questions use
// Next and ignore correctness; the rest branch on OnCorrect/OnWrong.
type Branch struct {
	Next      string
	OnCorrect string
	OnWrong   string
}

// Unconditional reports whether the branch ignores correctness.
func (b Branch) Unconditional() bool {
	return b.Next != ""
}

// target resolves the edge taken for the given correctness.
func (b Branch) target(correct bool) string {
	if b.Unconditional() {
		return b.Next
	}
	var id string
	if correct {
		id = b.OnCorrect
	} else {
		id = b.OnWrong
	}
	if id == "" {
		return End
	}
	return id
}

// decisionGraph is fixed at init and never mutated.
var decisionGraph = map[string]Branch{
	"diag_001":  {OnCorrect: "diag_002", OnWrong: "diag_001b"},
	"diag_001b": {Next: "diag_002"},
	"diag_002":  {OnCorrect: "diag_003", OnWrong: "diag_002b"},
	"diag_002b": {Next: "diag_003"},
	"diag_003":  {OnCorrect: "diag_005", OnWrong: "diag_003b"},
	"diag_003b": {Next: "diag_004"},
	"diag_004":  {OnCorrect: "diag_005", OnWrong: End},
	"diag_005":  {OnCorrect: End, OnWrong: End},
}

// FirstQuestion returns the root question of the placement quiz.
func FirstQuestion() *Question {
	return LookupQuestion(startID)
}

// NextQuestion returns the question that follows currentID given whether it
// was answered correctly. It returns nil when the quiz is over, including
// when currentID is unknown.
func NextQuestion(currentID string, wasCorrect bool) *Question {
	b, ok := decisionGraph[currentID]
	if !ok {
		return nil
	}
	next := b.target(wasCorrect)
	if next == End {
		return nil
	}
	return LookupQuestion(next)
}

// BranchFor returns the branch rule for id.
func BranchFor(id string) (Branch, bool) {
	b, ok := decisionGraph[id]
	return b, ok
}
