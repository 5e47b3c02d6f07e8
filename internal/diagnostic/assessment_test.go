package diagnostic

import (
	"context"
	"testing"

	"github.com/abhisek/mentorly/internal/curriculum"
)

func TestAssessment_EndToEnd(t *testing.T) {
	a := New(nil)
	ctx := context.Background()

	if a.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", a.State())
	}

	q := a.Start()
	if q == nil || q.ID != "diag_001" {
		t.Fatalf("Start() = %v, want diag_001", q)
	}
	if a.State() != StateRunning {
		t.Fatalf("state after start = %v, want running", a.State())
	}

	step := a.SubmitAnswer(ctx, "DNA")
	if !step.Verdict.Correct {
		t.Errorf("DNA should be correct")
	}
	if step.Complete || step.Next == nil || step.Next.ID != "diag_002" {
		t.Fatalf("next = %v, want diag_002", step.Next)
	}

	step = a.SubmitAnswer(ctx, "blue")
	if step.Verdict.Correct {
		t.Errorf("blue should be wrong")
	}
	if step.Next == nil || step.Next.ID != "diag_002b" {
		t.Fatalf("next = %v, want diag_002b", step.Next)
	}

	// Follow-up proceeds to diag_003 regardless of the answer.
	step = a.SubmitAnswer(ctx, "no idea")
	if step.Next == nil || step.Next.ID != "diag_003" {
		t.Fatalf("next = %v, want diag_003", step.Next)
	}

	if got := len(a.Results()); got != 3 {
		t.Errorf("results = %d, want 3", got)
	}
}

func TestAssessment_CompletesAndRejectsFurtherAnswers(t *testing.T) {
	a := New(nil)
	ctx := context.Background()
	a.Start()

	answers := []string{"DNA", "brown", "25%", "both heterozygous"}
	var step StepResult
	for _, ans := range answers {
		step = a.SubmitAnswer(ctx, ans)
	}
	if !step.Complete || step.Next != nil {
		t.Fatalf("expected completion after diag_005, got %+v", step)
	}
	if a.State() != StateComplete {
		t.Errorf("state = %v, want complete", a.State())
	}
	if a.Level() != curriculum.LevelAdvanced {
		t.Errorf("level = %q, want advanced", a.Level())
	}

	step = a.SubmitAnswer(ctx, "extra")
	if step.Err != ErrNoActiveQuestion || !step.Complete {
		t.Errorf("post-completion submit = %+v", step)
	}
	if len(a.Results()) != len(answers) {
		t.Error("post-completion submit should not record a result")
	}
}

func TestAssessment_SubmitBeforeStart(t *testing.T) {
	step := New(nil).SubmitAnswer(context.Background(), "DNA")
	if step.Err == "" || !step.Complete {
		t.Errorf("submit before start = %+v, want error result", step)
	}
}

func TestAssessment_StartResets(t *testing.T) {
	a := New(nil)
	a.Start()
	a.SubmitAnswer(context.Background(), "DNA")
	a.Start()
	if len(a.Results()) != 0 {
		t.Error("Start should clear results")
	}
}

func TestAssessment_GapsAndStrengths(t *testing.T) {
	a := New(nil)
	ctx := context.Background()
	a.Start()
	a.SubmitAnswer(ctx, "protein")     // diag_001 wrong
	a.SubmitAnswer(ctx, "no idea")     // diag_001b minimal
	a.SubmitAnswer(ctx, "brown")       // diag_002 right
	a.SubmitAnswer(ctx, "50%")         // diag_003 wrong
	a.SubmitAnswer(ctx, "yes, a grid") // diag_003b good

	gaps := a.KnowledgeGaps()
	wantGaps := []string{curriculum.TopicDNABasics, curriculum.TopicPunnett}
	if len(gaps) != len(wantGaps) {
		t.Fatalf("gaps = %v, want %v", gaps, wantGaps)
	}
	for i := range wantGaps {
		if gaps[i] != wantGaps[i] {
			t.Errorf("gaps[%d] = %q, want %q", i, gaps[i], wantGaps[i])
		}
	}

	strengths := a.Strengths()
	wantStrengths := []string{curriculum.TopicMendelian, curriculum.TopicPunnett}
	if len(strengths) != len(wantStrengths) {
		t.Fatalf("strengths = %v, want %v", strengths, wantStrengths)
	}

	if got := a.RecommendedStartTopic(); got != curriculum.TopicDNABasics {
		t.Errorf("recommended = %q, want dna_basics", got)
	}
}

func TestAssessment_RecommendedByLevel(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
	}{
		// All correct: advanced, no gaps.
		{"advanced", []string{"DNA", "brown", "25%", "carriers"}, curriculum.TopicPedigree},
		// Beginner correct, diag_003 wrong, followup good, diag_004 right, diag_005 wrong.
		// Punnett gap from diag_003 wins over the level.
		{"punnett gap", []string{"DNA", "brown", "75%", "yes grid", "alleles", "no"}, curriculum.TopicPunnett},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(nil)
			a.Start()
			for _, ans := range tt.answers {
				a.SubmitAnswer(context.Background(), ans)
			}
			if got := a.RecommendedStartTopic(); got != tt.want {
				t.Errorf("recommended = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessment_EmptySummary(t *testing.T) {
	s := New(nil).Summary()
	if s.Level != curriculum.LevelBeginner {
		t.Errorf("level = %q, want beginner", s.Level)
	}
	if s.Accuracy != 0 || s.QuestionsAnswered != 0 {
		t.Errorf("summary = %+v", s)
	}
	if s.RecommendedTopic != curriculum.TopicMendelian {
		t.Errorf("recommended = %q, want mendelian_inheritance", s.RecommendedTopic)
	}
}
