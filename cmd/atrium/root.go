package main

import (
	"fmt"
	"os"

	"github.com/atriumhq/atrium"
	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atrium",
	Short: "Atrium is the alumni platform data sync client",
	Long: `Atrium keeps a local view of the alumni job board and directory in sync,
against either the built-in simulated backend or a remote API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Each one shadows the
	// matching ATRIUM_* environment variable and .atrium.yaml key.
	rootCmd.PersistentFlags().String("backend", "", "Backend mode: simulated or remote")
	rootCmd.PersistentFlags().String("base-url", "", "Remote API base URL")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the remote API")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for session persistence")
	rootCmd.PersistentFlags().String("state-dir", "", "Directory for file-based session persistence")
	rootCmd.PersistentFlags().String("session", "", "Session ID to bind client state to")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves the effective configuration for a command run,
// flags layered over environment and file.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(config.WithFlags(cmd.Flags()))
	if err != nil {
		fmt.Printf("Error resolving configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newClient builds the sync client the way every subcommand needs it.
func newClient(cmd *cobra.Command) (*atrium.Client, *config.Config) {
	cfg := loadConfig(cmd)
	client, err := atrium.New(cfg,
		atrium.WithLogger(logging.New(cfg.Level())),
		atrium.WithNotifier(func(message string) {
			fmt.Fprintln(os.Stderr, message)
		}),
	)
	if err != nil {
		fmt.Printf("Error initializing atrium: %v\n", err)
		os.Exit(1)
	}
	return client, cfg
}
