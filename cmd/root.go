package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/focusguard/internal/config"
	"github.com/marcus/focusguard/internal/db"
	"github.com/marcus/focusguard/internal/models"
	"github.com/marcus/focusguard/internal/workdir"
	"github.com/marcus/focusguard/internal/workflow"
	"github.com/marcus/focusguard/pkg/workbench"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "focusguard",
	Short: "Keyboard-first project workbench with focus-trapping dialogs",
	Long: `focusguard - a terminal workbench for community projects.

Every dialog traps keyboard focus while open: Tab and Shift+Tab cycle through
its controls, Esc closes it, and focus returns to the row that opened it.`,
	SilenceUsage: true,
	RunE:         runWorkbench,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir, initLogging)

	rootCmd.PersistentFlags().String("dir", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug events")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file")

	rootCmd.Flags().Bool("close-on-escape", true, "Close dialogs with Esc")
	rootCmd.Flags().Bool("close-on-outside-click", false, "Close dialogs when the backdrop is clicked")
	rootCmd.Flags().Int("width", config.DefaultDialogWidth, "Dialog width in columns")

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

func initBaseDir() {
	dir, _ := rootCmd.PersistentFlags().GetString("dir")
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
			os.Exit(1)
		}
	}
	baseDir = workdir.ResolveBaseDir(dir)
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// applyFlagOverrides copies explicitly set flags over the stored config.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *models.Config) {
	if flags.Changed("close-on-escape") {
		cfg.CloseOnEscape, _ = flags.GetBool("close-on-escape")
	}
	if flags.Changed("close-on-outside-click") {
		cfg.CloseOnOutsideClick, _ = flags.GetBool("close-on-outside-click")
	}
	if flags.Changed("width") {
		if w, _ := flags.GetInt("width"); w > 0 {
			cfg.DialogWidth = w
		}
	}
}

// openWorkbench loads the database and config and builds a workbench.
func openWorkbench(flags *pflag.FlagSet) (*workbench.Model, *db.DB, error) {
	dir := getBaseDir()

	database, err := db.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	applyFlagOverrides(flags, cfg)

	m := workbench.New(workbench.Options{
		DB:      database,
		Config:  cfg,
		Machine: workflow.DefaultMachine(),
	})
	return m, database, nil
}

func runWorkbench(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("focusguard needs a terminal; use 'focusguard inspect' for scripted runs")
	}

	m, database, err := openWorkbench(cmd.Flags())
	if err != nil {
		return err
	}
	defer database.Close()
	defer m.Close()

	slog.Info("workbench: start", "dir", getBaseDir(), "version", version)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running workbench: %w", err)
	}
	return nil
}
