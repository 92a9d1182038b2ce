// ABOUTME: Root Cobra command for aria CLI.
// ABOUTME: Handles config loading and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/aria/internal/config"
	"github.com/harperreed/aria/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "aria",
	Short: "Personal wellness companion",
	Long: `Aria is a CLI wellness companion: mood tracking, habit building,
daily check-ins, and gentle coaching insights.

MOOD:

  $ aria mood record happy --energy 7          # Log how you feel
  $ aria mood analyze "stressed about work"    # Detect mood from text
  $ aria mood list                             # Recent mood entries

HABITS:

  $ aria habit add "Morning Meditation" --type meditation
  $ aria habit done abc123                     # Log a completion
  $ aria habit due                             # What's due today
  $ aria habit stats abc123                    # Streaks and rates

CHECK-INS:

  $ aria checkin                               # Guided daily check-in
  $ aria checkin set gratitude "my family"     # Answer one category
  $ aria checkin streak                        # Consecutive days

INSIGHTS & CHAT:

  $ aria insights generate                     # Run the coaching rules
  $ aria insights list --unread                # Unread insights
  $ aria chat "rough day today"                # Talk to Aria

MCP INTEGRATION:

  Run 'aria mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "aria": { "command": "aria", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in JSON files at ~/.local/share/aria by default. Set
  "backend": "charm" in ~/.config/aria/config.json to sync through
  Charm Cloud instead (E2E encrypted with your SSH key).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
}
