package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mentorly/internal/learner"
	"github.com/abhisek/mentorly/internal/store"
)

const (
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "mentorly",
	Short: "Socratic tutor in your terminal",
	Long:  "Mentorly — a conversational tutor that assesses what you know, teaches through guiding questions and tracks your progress across sessions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MENTORLY_DB env var)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for learner profiles and logs (overrides MENTORLY_DATA_DIR env var)")
	rootCmd.PersistentFlags().String("store", "", "Learner profile storage: json or sqlite (overrides MENTORLY_STORE env var)")
	addChatFlags(rootCmd)

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(placementCmd)
	rootCmd.AddCommand(learnersCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data-dir (highest
// priority), then MENTORLY_DATA_DIR, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" {
		return d, os.MkdirAll(d, 0o755)
	}
	return store.DefaultDataDir()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MENTORLY_DB env var, then mentorly.db in the data directory.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" && os.Getenv("MENTORLY_DB") == "" {
		return filepath.Join(d, "mentorly.db"), os.MkdirAll(d, 0o755)
	}
	return store.DefaultDBPath()
}

// resolveStoreKind returns --store, then MENTORLY_STORE, then json.
func resolveStoreKind(cmd *cobra.Command) (string, error) {
	kind, _ := cmd.Flags().GetString("store")
	if kind == "" {
		kind = os.Getenv("MENTORLY_STORE")
	}
	switch kind {
	case "", storeJSON:
		return storeJSON, nil
	case storeSQLite:
		return storeSQLite, nil
	default:
		return "", fmt.Errorf("unknown store %q (want json or sqlite)", kind)
	}
}

// env bundles what every command opens: the SQLite store (LLM and session
// events, and profiles when the sqlite store is selected) and the learner
// manager.
type env struct {
	dataDir  string
	st       *store.Store
	learners *learner.Manager
}

func (e *env) Close() error {
	return e.st.Close()
}

func openEnv(cmd *cobra.Command) (*env, error) {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	kind, err := resolveStoreKind(cmd)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var profiles store.Storage = st.Profiles()
	if kind == storeJSON {
		js, err := store.NewJSONFileStore(filepath.Join(dataDir, "learners"))
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open learner store: %w", err)
		}
		profiles = js
	}

	return &env{
		dataDir:  dataDir,
		st:       st,
		learners: learner.NewManager(profiles),
	}, nil
}
