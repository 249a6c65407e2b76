package workbench

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/marcus/focusguard/internal/models"
)

// copyToClipboard copies text to the system clipboard.
// Uses pbcopy on macOS, xclip on Linux, clip.exe on Windows.
var copyToClipboard = func(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard tool found (install xclip or xsel)")
		}
	case "windows":
		cmd = exec.Command("clip.exe")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// formatProjectAsMarkdown renders a project and its status history.
func formatProjectAsMarkdown(p *models.Project, history []models.StatusChange) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n", p.Name)
	fmt.Fprintf(&sb, "**ID:** `%s`\n", p.ID)
	if p.Partner != "" {
		fmt.Fprintf(&sb, "**Partner:** %s | **Status:** %s\n", p.Partner, p.Status.Label())
	} else {
		fmt.Fprintf(&sb, "**Status:** %s\n", p.Status.Label())
	}

	if len(history) > 0 {
		sb.WriteString("\n## History\n\n")
		for _, c := range history {
			fmt.Fprintf(&sb, "- %s %s → %s", c.Timestamp.Format("2006-01-02"), c.From.Label(), c.To.Label())
			if c.Reason != "" {
				fmt.Fprintf(&sb, ": %s", c.Reason)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
