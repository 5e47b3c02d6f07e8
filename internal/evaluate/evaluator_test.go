package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/llm"
)

type stubJudge struct {
	verdict Verdict
	err     error
	calls   int
}

func (s *stubJudge) Judge(_ context.Context, _ JudgeRequest) (Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func TestMatchSimple(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		expected   string
		acceptable []string
		want       bool
	}{
		{"exact", "DNA", "DNA", nil, true},
		{"case insensitive", "dna", "DNA", nil, true},
		{"trimmed", "  brown  ", "brown", nil, true},
		{"acceptable substring", "I think it is 1/4 of them", "25%", []string{"1/4"}, true},
		{"acceptable case folded", "both are heterozygous", "x", []string{"Heterozygous"}, true},
		{"miss", "blue", "brown", []string{"brown eyes"}, false},
		{"empty answer", "", "brown", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchSimple(tt.answer, tt.expected, tt.acceptable)
			if got.Correct != tt.want {
				t.Errorf("MatchSimple(%q, %q) = %v, want %v", tt.answer, tt.expected, got.Correct, tt.want)
			}
			if got.Partial {
				t.Error("simple match never reports partial")
			}
		})
	}
}

func TestMatchSimple_ExactIsIdempotent(t *testing.T) {
	for _, x := range []string{"a", "DNA", "Both must be heterozygous (Bb)", "25%", "  Mixed Case  "} {
		if !MatchSimple(x, x, nil).Correct {
			t.Errorf("MatchSimple(%q, %q) should be correct", x, x)
		}
		if !MatchSimple(strings.ToUpper(x), x, nil).Correct {
			t.Errorf("MatchSimple upper(%q) should be correct", x)
		}
	}
}

func TestMatchPatterns(t *testing.T) {
	patterns := []string{"instruction", "code", "information", "genes"}

	tests := []struct {
		answer string
		want   Understanding
	}{
		{"no idea", UnderstandingMinimal},
		{"it holds information", UnderstandingPartial},
		{"it is a CODE of Instructions", UnderstandingGood},
	}
	for _, tt := range tests {
		got := MatchPatterns(tt.answer, patterns)
		if got.Understanding != tt.want {
			t.Errorf("MatchPatterns(%q) = %q, want %q", tt.answer, got.Understanding, tt.want)
		}
	}
}

// Adding a matched pattern never lowers the verdict.
func TestMatchPatterns_Monotonic(t *testing.T) {
	patterns := []string{"alpha", "beta", "gamma", "delta"}
	answer := ""
	prev := MatchPatterns(answer, patterns).rank()
	for _, p := range patterns {
		answer += " " + p
		cur := MatchPatterns(answer, patterns).rank()
		if cur < prev {
			t.Fatalf("rank decreased from %d to %d after adding %q", prev, cur, p)
		}
		prev = cur
	}
	if prev != 2 {
		t.Errorf("final rank = %d, want 2", prev)
	}
}

func TestEvaluate_OpenEndedPartialCountsAsCorrect(t *testing.T) {
	e := New(nil, nil)
	q := curriculum.LookupQuestion("diag_001b")

	v := e.Evaluate(context.Background(), q, "it carries information")
	if !v.Correct || !v.Partial {
		t.Errorf("verdict = %+v, want correct and partial", v)
	}

	v = e.Evaluate(context.Background(), q, "no clue")
	if v.Correct || v.Partial {
		t.Errorf("verdict = %+v, want neither", v)
	}
}

func TestEvaluate_JudgeOnlyOnClosedMiss(t *testing.T) {
	judge := &stubJudge{verdict: Verdict{Correct: true, Feedback: "close enough"}}
	e := New(judge, nil)
	ctx := context.Background()

	// Simple match decides; no judge call.
	e.Evaluate(ctx, curriculum.LookupQuestion("diag_001"), "DNA")
	if judge.calls != 0 {
		t.Fatalf("judge called %d times on simple match", judge.calls)
	}

	// Open-ended never reaches the judge.
	e.Evaluate(ctx, curriculum.LookupQuestion("diag_002b"), "nothing")
	if judge.calls != 0 {
		t.Fatalf("judge called for open-ended question")
	}

	// Closed miss escalates and the verdict is returned verbatim.
	v := e.Evaluate(ctx, curriculum.LookupQuestion("diag_004"), "gene variants")
	if judge.calls != 1 {
		t.Fatalf("judge calls = %d, want 1", judge.calls)
	}
	if !v.Correct || v.Feedback != "close enough" {
		t.Errorf("verdict = %+v, want judge verdict", v)
	}
}

func TestEvaluate_JudgeFailureFallsBack(t *testing.T) {
	e := New(&stubJudge{err: errors.New("boom")}, nil)
	v := e.Evaluate(context.Background(), curriculum.LookupQuestion("diag_002"), "blue")
	if v.Correct || v.Partial {
		t.Errorf("verdict = %+v, want simple miss", v)
	}
}

func TestEvaluateAnswer_Heuristics(t *testing.T) {
	e := New(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		sub      Submission
		correct  bool
		partial  bool
		feedback string
	}{
		{"open long", Submission{Expected: OpenEndedAnswer, Answer: "genes carry traits"}, true, false, "Thanks for sharing!"},
		{"open short", Submission{Expected: OpenEndedAnswer, Answer: "genes"}, false, true, "Could you tell me a bit more?"},
		{"open empty expected", Submission{Answer: "a fairly long answer"}, true, false, "Thanks for sharing!"},
		{"closed contains", Submission{Expected: "Mitosis", Answer: "it is mitosis"}, true, false, ""},
		{"closed miss", Submission{Expected: "mitosis", Answer: "meiosis"}, false, false, "Let me help you with that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.EvaluateAnswer(ctx, tt.sub)
			if v.Correct != tt.correct || v.Partial != tt.partial {
				t.Errorf("verdict = %+v, want correct=%v partial=%v", v, tt.correct, tt.partial)
			}
			if tt.feedback != "" && v.Feedback != tt.feedback {
				t.Errorf("feedback = %q, want %q", v.Feedback, tt.feedback)
			}
		})
	}
}

func TestEvaluateAnswer_UsesLLMJudge(t *testing.T) {
	out, _ := json.Marshal(verdictOutput{Correct: false, Partial: true, Feedback: "Almost!", Misconception: "confuses genotype and phenotype"})
	mock := llm.NewMockProvider(llm.MockResponse{Content: out})
	e := New(NewLLMJudge(mock), nil)

	v := e.EvaluateAnswer(context.Background(), Submission{
		Question: "What is a phenotype?",
		Expected: "observable trait",
		Answer:   "the genes",
		Subject:  "genetics",
	})
	if !v.Partial || v.Misconception == "" || v.Feedback != "Almost!" {
		t.Errorf("verdict = %+v", v)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].Schema != VerdictSchema {
		t.Error("judge request should carry VerdictSchema")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "the genes") {
		t.Error("prompt should include the student's answer")
	}
}

func TestEvaluateAnswer_LLMFailureUsesHeuristic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	e := New(NewLLMJudge(mock), nil)

	v := e.EvaluateAnswer(context.Background(), Submission{Expected: OpenEndedAnswer, Answer: "I would use a grid to cross them"})
	if !v.Correct || v.Feedback != "Thanks for sharing!" {
		t.Errorf("verdict = %+v, want length heuristic", v)
	}
}
