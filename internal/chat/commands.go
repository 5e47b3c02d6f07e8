// Package chat is the conversation front end: a Bubble Tea chat screen and
// a plain line-based REPL over the same tutor.
package chat

import (
	"context"
	"slices"
	"strings"

	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/session"
)

// Tutor is the conversation the front ends drive.
type Tutor interface {
	StartSession(ctx context.Context, learnerID, name string) (string, error)
	HandleInput(ctx context.Context, msg string) (string, error)
	EndSession(ctx context.Context) (string, error)
	Phase() session.Phase
	Subject() string
	Profile() *learner.Profile
}

// HelpText lists the commands understood by both front ends.
const HelpText = `Commands:
  'quit' or 'exit'  - End the session and save progress
  'practice'        - Start practice problems
  'hint'            - Get a hint (during practice)
  'skip'            - Skip current question
  'next'            - Move to the next subtopic
  'review'          - Revisit a subtopic you've covered
  'help'            - Show this help message

During learning, just type naturally - the tutor will guide you!`

var quitWords = []string{"quit", "exit", "bye", "done", "end"}

// IsQuit reports whether msg ends the session.
func IsQuit(msg string) bool {
	return slices.Contains(quitWords, strings.ToLower(strings.TrimSpace(msg)))
}

// IsHelp reports whether msg asks for the command list.
func IsHelp(msg string) bool {
	return strings.EqualFold(strings.TrimSpace(msg), "help")
}
