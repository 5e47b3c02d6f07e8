package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/chat"
	"github.com/abhisek/mentorly/internal/content"
	"github.com/abhisek/mentorly/internal/evaluate"
	"github.com/abhisek/mentorly/internal/llm"
	"github.com/abhisek/mentorly/internal/logging"
	"github.com/abhisek/mentorly/internal/tutor"
)

// contentTTL bounds how long generated material stays in a shared Redis
// cache.
const contentTTL = 24 * time.Hour

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func addChatFlags(c *cobra.Command) {
	c.Flags().Bool("plain", false, "Use the line-based REPL instead of the full-screen UI")
	c.Flags().StringP("learner", "l", "", "Learner username (asked interactively when empty)")
	c.Flags().String("name", "", "Display name for a new learner")
}

func init() {
	addChatFlags(chatCmd)
}

// runChat wires storage, the LLM provider, content generation and grading
// into a tutor and hands it to the chosen front end.
func runChat(cmd *cobra.Command) error {
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

	eventRepo := e.st.EventRepo()

	// The tutor works offline from static content when no provider is set.
	var provider llm.Provider
	p, err := llm.NewProviderFromEnv(ctx, eventRepo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Using built-in lesson material.")
	} else {
		provider = p
	}

	var cache content.Cache = content.NewMemoryCache()
	if url := os.Getenv("MENTORLY_REDIS_URL"); url != "" {
		rc, err := content.DialRedisCache(ctx, url, contentTTL)
		if err != nil {
			logger.WarnContext(ctx, "redis cache unavailable, using memory cache", "error", err)
		} else {
			defer rc.Close()
			cache = rc
		}
	}
	generator := content.New(provider, cache, logger, content.DefaultConfig())

	var judge evaluate.Judge
	if provider != nil {
		judge = evaluate.NewLLMJudge(provider)
	}
	grader := evaluate.New(judge, logger)

	t := tutor.New(generator, grader, e.learners, eventRepo, logger)

	plain, _ := cmd.Flags().GetBool("plain")
	id, _ := cmd.Flags().GetString("learner")
	name, _ := cmd.Flags().GetString("name")

	if plain {
		repl := chat.NewREPL(t, os.Stdin, os.Stdout)
		if id == "" {
			if id, name, err = repl.PromptLearner(); err != nil {
				return err
			}
		}
		return repl.Run(ctx, id, name)
	}

	final, err := chat.Run(ctx, t, id, name)
	if err != nil {
		return fmt.Errorf("run chat: %w", err)
	}
	if final.Farewell() != "" {
		fmt.Println(chat.Wrap(final.Farewell(), chat.WrapWidth))
	}
	return final.Err()
}

// sessionLogger writes operational logs to a file in the data directory
// so they never land on the chat screen.
func sessionLogger(dataDir string) (*slog.Logger, func(), error) {
	cfg, err := logging.ConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	f, err := logging.OpenFile(filepath.Join(dataDir, "mentorly.log"))
	if err != nil {
		return nil, nil, err
	}
	cfg.Output = f
	return logging.New(cfg), func() { f.Close() }, nil
}
