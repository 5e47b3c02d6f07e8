package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/diagnostic"
	"github.com/abhisek/mentorly/internal/evaluate"
)

func TestRunPlacement_AllCorrect(t *testing.T) {
	in := strings.NewReader("DNA\nbrown\n25%\nBoth must be heterozygous (Bb)\n")
	var out bytes.Buffer

	sum, err := runPlacement(context.Background(), diagnostic.New(evaluate.New(nil, nil)), in, &out)
	if err != nil {
		t.Fatalf("runPlacement: %v", err)
	}
	if sum.QuestionsAnswered != 4 || sum.CorrectAnswers != 4 {
		t.Errorf("answered %d, correct %d; want 4 and 4", sum.QuestionsAnswered, sum.CorrectAnswers)
	}
	if !strings.Contains(out.String(), "Q4.") {
		t.Errorf("output missing fourth question:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Q5.") {
		t.Errorf("asked more questions than the graph allows:\n%s", out.String())
	}
}

func TestRunPlacement_InputEndsEarly(t *testing.T) {
	var out bytes.Buffer
	_, err := runPlacement(context.Background(), diagnostic.New(nil), strings.NewReader("DNA\n"), &out)
	if err == nil {
		t.Fatal("expected error when input ends mid-quiz")
	}
	if !strings.Contains(err.Error(), "after 1 questions") {
		t.Errorf("error = %q", err)
	}
}

func TestResolveStoreKind(t *testing.T) {
	tests := []struct {
		flag, env string
		want      string
		wantErr   bool
	}{
		{"", "", storeJSON, false},
		{"sqlite", "", storeSQLite, false},
		{"", "sqlite", storeSQLite, false},
		{"json", "sqlite", storeJSON, false},
		{"postgres", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.env, func(t *testing.T) {
			t.Setenv("MENTORLY_STORE", tt.env)
			cmd := &cobra.Command{}
			cmd.Flags().String("store", tt.flag, "")

			got, err := resolveStoreKind(cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
