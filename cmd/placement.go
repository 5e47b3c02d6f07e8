package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/diagnostic"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/llm"
	"github.com/abhisek/mentorly/internal/logging"
)

var placementCmd = &cobra.Command{
	Use:   "placement <learner>",
	Short: "Run the genetics placement quiz and set the learner's level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		logger, closeLog, err := sessionLogger(e.dataDir)
		if err != nil {
			return err
		}
		defer closeLog()

		p, err := e.learners.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if p == nil {
			name, _ := cmd.Flags().GetString("name")
			p = learner.NewProfile(args[0], name)
		}

		var judge evaluate.Judge
		if provider, err := llm.NewProviderFromEnv(ctx, e.st.EventRepo(), logger); err == nil {
			judge = evaluate.NewLLMJudge(provider)
		}
		a := diagnostic.New(evaluate.New(judge, logging.Discard()))

		sum, err := runPlacement(ctx, a, os.Stdin, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		p.ApplyPlacement(sum)
		if err := e.learners.Save(ctx, p); err != nil {
			return fmt.Errorf("save learner: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved. %s starts at the %s level.\n", p.Name, p.CurrentLevel.DisplayName())
		return nil
	},
}

func init() {
	placementCmd.Flags().String("name", "", "Display name if the learner is new")
}

// runPlacement asks each question on out and reads answers from in until
// the quiz completes.
func runPlacement(ctx context.Context, a *diagnostic.Assessment, in io.Reader, out io.Writer) (diagnostic.Summary, error) {
	if err := curriculum.ValidateGraph(); err != nil {
		return diagnostic.Summary{}, fmt.Errorf("placement quiz unavailable: %w", err)
	}

	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, "Let's see what you already know about genetics.")

	q := a.Start()
	for n := 1; q != nil; n++ {
		fmt.Fprintf(out, "\nQ%d. %s\n> ", n, q.Prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return diagnostic.Summary{}, fmt.Errorf("read answer: %w", err)
			}
			return diagnostic.Summary{}, fmt.Errorf("placement stopped after %d questions", n-1)
		}

		step := a.SubmitAnswer(ctx, strings.TrimSpace(sc.Text()))
		switch {
		case step.Verdict.Correct:
			fmt.Fprintln(out, "Correct!")
		case step.Verdict.Partial:
			fmt.Fprintln(out, "Partly there.")
		default:
			fmt.Fprintln(out, "Not quite.")
		}
		if step.Verdict.Feedback != "" {
			fmt.Fprintln(out, step.Verdict.Feedback)
		}
		q = step.Next
	}

	sum := a.Summary()
	fmt.Fprintf(out, "\nLevel: %s (%d/%d correct)\n", sum.Level.DisplayName(), sum.CorrectAnswers, sum.QuestionsAnswered)
	if len(sum.KnowledgeGaps) > 0 {
		fmt.Fprintf(out, "Worth revisiting: %s\n", strings.Join(sum.KnowledgeGaps, ", "))
	}
	if len(sum.Strengths) > 0 {
		fmt.Fprintf(out, "Strong on: %s\n", strings.Join(sum.Strengths, ", "))
	}
	fmt.Fprintf(out, "Suggested first topic: %s\n", sum.RecommendedTopic)
	return sum, nil
}
