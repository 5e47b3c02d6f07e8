package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/curriculum"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [query]",
	Short: "Browse the built-in genetics curriculum",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := curriculum.Topics()
		if len(args) == 1 {
			topics = curriculum.SearchTopics(args[0])
			if len(topics) == 0 {
				fmt.Printf("No topics match %q.\n", args[0])
				return nil
			}
		}

		for _, t := range topics {
			fmt.Printf("%s  [%s]  %s\n", t.Name, t.Level.DisplayName(), t.ID)
			fmt.Printf("  %s\n", t.Description)
			if len(t.Subtopics) > 0 {
				fmt.Printf("  Subtopics: %s\n", strings.Join(t.Subtopics, ", "))
			}
			if len(t.Prerequisites) > 0 {
				names := make([]string, len(t.Prerequisites))
				for i, id := range t.Prerequisites {
					names[i] = topicName(id)
				}
				fmt.Printf("  Requires:  %s\n", strings.Join(names, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}
