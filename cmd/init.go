package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/focusguard/internal/config"
	"github.com/marcus/focusguard/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a new focusguard project",
	Long:    `Creates the local .focusguard directory, SQLite database and config.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		out := cmd.OutOrStdout()

		if _, err := os.Stat(filepath.Join(dir, ".focusguard", "projects.db")); err == nil {
			fmt.Fprintln(out, ".focusguard/ already exists")
			return nil
		}

		database, err := db.Initialize(dir)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		if err := config.Save(dir, config.Default()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintln(out, "INITIALIZED .focusguard/")

		if noSeed, _ := cmd.Flags().GetBool("no-seed"); noSeed {
			return nil
		}
		n, err := database.Seed()
		if err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		if n > 0 {
			fmt.Fprintf(out, "Added %d sample projects\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("no-seed", false, "Do not add sample projects")
}
