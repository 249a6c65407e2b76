package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/focusguard/internal/config"
	"github.com/marcus/focusguard/internal/output"
	"github.com/marcus/focusguard/pkg/workbench"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [key...]",
	Short: "Replay keys against the workbench and print the focus tree",
	Long: `Runs the workbench without a terminal, sends the given keys in order and
prints where focus ended up: the active element, the open dialog's
accessibility attributes, the Tab order of the current focus scope and the
full element tree.

Keys use bubbletea names: tab, shift+tab, esc, enter, up, down, space, or
any single character.`,
	Example: `  focusguard inspect j j d        # delete dialog for the third row
  focusguard inspect s tab --view  # status dialog, reason field focused`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, database, err := openWorkbench(cmd.Flags())
		if err != nil {
			return err
		}
		defer database.Close()
		defer m.Close()

		w, h := terminalSize()
		m.Update(tea.WindowSizeMsg{Width: w, Height: h})
		if err := m.Settle(m.Init()); err != nil {
			return err
		}
		for _, k := range args {
			if err := m.Press(k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
		}

		showView, _ := cmd.Flags().GetBool("view")
		depth, _ := cmd.Flags().GetInt("depth")
		return writeInspection(cmd.OutOrStdout(), m, showView, depth)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("view", false, "Also print the rendered screen")
	inspectCmd.Flags().Int("depth", 0, "Limit tree depth (0 = unlimited)")
	inspectCmd.Flags().Bool("close-on-escape", true, "Close dialogs with Esc")
	inspectCmd.Flags().Bool("close-on-outside-click", false, "Close dialogs when the backdrop is clicked")
	inspectCmd.Flags().Int("width", config.DefaultDialogWidth, "Dialog width in columns")
}

// terminalSize falls back to 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}

func writeInspection(out io.Writer, m *workbench.Model, showView bool, depth int) error {
	doc := m.Document()
	active := doc.Active()

	var sb strings.Builder
	fmt.Fprintf(&sb, "active: %s (%s)\n", active.ID, active.Kind)

	scope := doc.Body()
	if d := m.Dialog(); d != nil {
		scope = d.Container()
		if sem, ok := d.Semantics(); ok {
			fmt.Fprintf(&sb, "dialog: role=%s aria-modal=%t aria-labelledby=%s aria-describedby=%s\n",
				sem.Role, sem.Modal, sem.LabelledBy, sem.DescribedBy)
		}
	} else {
		sb.WriteString("dialog: none\n")
	}

	sb.WriteString("\ntab order:\n")
	for _, line := range output.RenderTabOrder(scope, active) {
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\ntree:\n")
	tree := output.RenderTree(output.FromElement(doc.Body(), active), output.TreeRenderOptions{
		MaxDepth:  depth,
		ShowKind:  true,
		ShowOrder: true,
	})
	sb.WriteString(tree + "\n")

	if showView {
		sb.WriteString("\nscreen:\n")
		sb.WriteString(ansi.Strip(m.View()) + "\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}
