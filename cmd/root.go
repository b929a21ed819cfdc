package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/config"
	"github.com/abhisek/bibletrack/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bibletrack",
	Short: "Track your Bible reading",
	Long:  "Bibletrack records the chapters and books you read, per profile, and keeps your progress offline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd, false)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BIBLETRACK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(concludeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(translationCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or BIBLETRACK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// loadConfig reads --config, or the default config file when present, and
// applies environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	optional := path == ""
	if optional {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}
