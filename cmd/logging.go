package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logFile is kept open for the life of the process.
var logFile *os.File

// initLogging installs the default slog logger. Without --log-file logs are
// discarded; the workbench owns the terminal.
func initLogging() {
	debug, _ := rootCmd.PersistentFlags().GetBool("debug")
	path, _ := rootCmd.PersistentFlags().GetString("log-file")

	w := io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			logFile = f
			w = f
		}
	}
	slog.SetDefault(newLogger(w, debug))
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
