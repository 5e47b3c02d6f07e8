package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// WrapWidth is the line width of the plain REPL.
const WrapWidth = 80

var rule = strings.Repeat("-", 60)

// Wrap word-wraps text to width, keeping existing line breaks.
func Wrap(text string, width int) string {
	return ansi.Wordwrap(text, width, "")
}

// REPL is the line-based front end for terminals without a TTY.
type REPL struct {
	tutor Tutor
	in    *bufio.Scanner
	out   io.Writer
}

// NewREPL creates a REPL reading learner messages from in.
func NewREPL(t Tutor, in io.Reader, out io.Writer) *REPL {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), 64*1024)
	return &REPL{tutor: t, in: sc, out: out}
}

// Run starts a session and loops until a quit command or end of input. The
// session is always ended so progress is saved.
func (r *REPL) Run(ctx context.Context, learnerID, name string) error {
	welcome, err := r.tutor.StartSession(ctx, learnerID, name)
	if err != nil {
		return err
	}
	r.block(welcome)

	for {
		fmt.Fprint(r.out, "\nYou: ")
		if !r.in.Scan() {
			break
		}
		msg := strings.TrimSpace(r.in.Text())
		switch {
		case msg == "":
			continue
		case IsQuit(msg):
			return r.end(ctx)
		case IsHelp(msg):
			fmt.Fprintln(r.out, "\n"+HelpText)
			continue
		}

		reply, err := r.tutor.HandleInput(ctx, msg)
		if err != nil {
			return err
		}
		r.block("Tutor: " + reply)

		if ctx.Err() != nil {
			break
		}
	}
	if err := r.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(r.out, "\n\nSession interrupted.")
	return r.end(context.WithoutCancel(ctx))
}

func (r *REPL) end(ctx context.Context) error {
	goodbye, err := r.tutor.EndSession(ctx)
	if err != nil {
		return err
	}
	r.block(goodbye)
	return nil
}

func (r *REPL) block(text string) {
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", rule, Wrap(text, WrapWidth), rule)
}

// PromptLearner asks for a username: "new" creates an account and also
// asks for a display name.
func (r *REPL) PromptLearner() (id, name string, err error) {
	fmt.Fprintf(r.out, "\n%s\n        Welcome to Mentorly\n       Learn through guided discovery!\n%s\n\n",
		strings.Repeat("=", 60), strings.Repeat("=", 60))
	if id, err = r.ask("Enter your username (or 'new' to create): "); err != nil {
		return "", "", err
	}
	if strings.EqualFold(id, "new") {
		if id, err = r.ask("Choose a username: "); err != nil {
			return "", "", err
		}
		if name, err = r.ask("What's your name? "); err != nil {
			return "", "", err
		}
	}
	if id == "" {
		return "", "", errors.New("username required")
	}
	return id, name, nil
}

func (r *REPL) ask(q string) (string, error) {
	fmt.Fprint(r.out, q)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}
