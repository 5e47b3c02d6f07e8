package session

import (
	"fmt"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNew(t *testing.T) {
	s := New("ada")
	if s.ID == "" {
		t.Error("expected a session ID")
	}
	if s.Phase != PhaseStart {
		t.Errorf("phase = %q, want start", s.Phase)
	}
	if New("ada").ID == s.ID {
		t.Error("session IDs should be unique")
	}
}

func TestRecordExchange_CapsHistory(t *testing.T) {
	s := newWithClock("ada", fixedClock())
	for i := 0; i < 25; i++ {
		s.RecordExchange(RoleUser, fmt.Sprintf("msg-%d", i))
	}

	if len(s.History) != MaxHistory {
		t.Fatalf("history = %d, want %d", len(s.History), MaxHistory)
	}
	for i, ex := range s.History {
		want := fmt.Sprintf("msg-%d", i+5)
		if ex.Content != want {
			t.Errorf("history[%d] = %q, want %q", i, ex.Content, want)
		}
	}
}

func TestRecordExchange_CountsAssistantTurns(t *testing.T) {
	s := New("ada")
	s.RecordExchange(RoleUser, "hi")
	s.RecordExchange(RoleAssistant, "hello")
	s.RecordExchange(RoleUser, "genetics")
	s.RecordExchange(RoleAssistant, "great")

	if s.QuestionsAsked != 2 {
		t.Errorf("questions asked = %d, want 2", s.QuestionsAsked)
	}
}

func TestRecentContext(t *testing.T) {
	s := New("ada")
	for i := 0; i < 4; i++ {
		s.RecordExchange(RoleUser, fmt.Sprintf("m%d", i))
	}

	got := s.RecentContext(3)
	if len(got) != 3 || got[0].Content != "m1" || got[2].Content != "m3" {
		t.Errorf("RecentContext(3) = %+v", got)
	}
	if got := s.RecentContext(10); len(got) != 4 {
		t.Errorf("RecentContext(10) len = %d, want 4", len(got))
	}
	if got := s.RecentContext(0); got != nil {
		t.Errorf("RecentContext(0) = %+v, want nil", got)
	}
}

func TestSummary(t *testing.T) {
	s := newWithClock("ada", fixedClock())
	s.Topic = "genetics"
	s.RecordProblem("p1", "DNA", true, "")
	s.RecordProblem("p2", "RNA", false, "not quite")

	sum := s.Summary()
	if sum.ProblemsAttempted != 2 || sum.ProblemsCorrect != 1 {
		t.Errorf("summary counts = %d/%d, want 1/2", sum.ProblemsCorrect, sum.ProblemsAttempted)
	}
	if sum.Accuracy == nil || *sum.Accuracy != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", sum.Accuracy)
	}
	if sum.Topic != "genetics" || sum.SessionID != s.ID {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Duration() <= 0 {
		t.Errorf("duration = %v, want positive", sum.Duration())
	}
	if len(s.Problems) != 2 {
		t.Error("Summary must not mutate problems")
	}
}

func TestSummary_NoProblems(t *testing.T) {
	sum := New("ada").Summary()
	if sum.Accuracy != nil {
		t.Errorf("accuracy = %v, want nil", *sum.Accuracy)
	}
}

func TestRecordAssessmentAnswer(t *testing.T) {
	s := New("ada")
	s.RecordAssessmentAnswer("q1", "dunno", false)
	s.RecordAssessmentAnswer("q2", "genes", true)
	if len(s.AssessmentAnswers) != 2 || s.AssessmentAnswers[1].QuestionID != "q2" {
		t.Errorf("assessment answers = %+v", s.AssessmentAnswers)
	}
}

func TestPhaseValid(t *testing.T) {
	for _, p := range AllPhases() {
		if !p.Valid() {
			t.Errorf("phase %q should be valid", p)
		}
	}
	if Phase("wandering").Valid() {
		t.Error("unknown phase should be invalid")
	}
}
