package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <learner>",
	Short: "Export a learner's progress to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = args[0] + "-progress.xlsx"
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.learners.Get(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if p == nil {
			return fmt.Errorf("learner %q not found", args[0])
		}

		if err := export.SaveAs(out, p); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default <learner>-progress.xlsx)")
}
