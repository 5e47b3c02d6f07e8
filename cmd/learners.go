package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/ui/components"
)

var learnersCmd = &cobra.Command{
	Use:   "learners",
	Short: "List, inspect and delete learner profiles",
}

var learnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ids, err := e.learners.List(ctx)
		if err != nil {
			return fmt.Errorf("list learners: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No learners yet.")
			return nil
		}

		t := components.NewTable([]string{"ID", "Name", "Level", "Sessions", "Last topic"}, 3)
		for _, id := range ids {
			p, err := e.learners.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("load learner %s: %w", id, err)
			}
			if p == nil {
				continue
			}
			t.Row(p.LearnerID, truncate(p.Name, 24), p.CurrentLevel.DisplayName(),
				strconv.Itoa(p.TotalSessions), topicName(p.LastTopic))
		}
		fmt.Println(t.Render())
		return nil
	},
}

var learnersShowCmd = &cobra.Command{
	Use:   "show <learner>",
	Short: "Show a learner's mastery and recent sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.learners.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if p == nil {
			return fmt.Errorf("learner %q not found", args[0])
		}

		fmt.Printf("%s (%s)\n", p.Name, p.LearnerID)
		fmt.Printf("Level:     %s\n", p.CurrentLevel.DisplayName())
		fmt.Printf("Sessions:  %d\n", p.TotalSessions)
		if p.LastTopic != "" {
			fmt.Printf("Last topic: %s\n", p.LastTopic)
		}

		if len(p.Knowledge.TopicsMastered) > 0 {
			fmt.Println("\nMastery")
			topics := make([]string, 0, len(p.Knowledge.TopicsMastered))
			for t := range p.Knowledge.TopicsMastered {
				topics = append(topics, t)
			}
			sort.Strings(topics)
			for _, t := range topics {
				fmt.Println(components.MasteryBar(fmt.Sprintf("%-24s", topicName(t)), p.Mastery(t), learner.MasteryThreshold, 60).View())
			}
		}

		if len(p.Knowledge.Misconceptions) > 0 {
			fmt.Println("\nMisconceptions")
			for _, m := range p.Knowledge.Misconceptions {
				fmt.Println("  -", m)
			}
		}

		events, err := e.st.EventRepo().QuerySessionEvents(ctx, p.LearnerID, 10)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(events) > 0 {
			fmt.Println("\nRecent activity")
			for _, ev := range events {
				fmt.Printf("  %s  %-5s  %-24s  %d/%d correct\n",
					ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Action, truncate(ev.Topic, 24),
					ev.ProblemsCorrect, ev.ProblemsAttempted)
			}
		}
		return nil
	},
}

var learnersDeleteCmd = &cobra.Command{
	Use:   "delete <learner>",
	Short: "Delete a learner profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ok, err := e.learners.Delete(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("delete learner: %w", err)
		}
		if !ok {
			return fmt.Errorf("learner %q not found", args[0])
		}
		fmt.Printf("Deleted %s.\n", args[0])
		return nil
	},
}

// topicName shows the curriculum name for known topic ids.
func topicName(id string) string {
	if t, ok := curriculum.GetTopic(id); ok {
		return t.Name
	}
	return id
}

func init() {
	learnersCmd.AddCommand(learnersListCmd)
	learnersCmd.AddCommand(learnersShowCmd)
	learnersCmd.AddCommand(learnersDeleteCmd)
}
