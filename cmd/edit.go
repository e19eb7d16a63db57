package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/tui"
	"github.com/easeltools/easel/tui/panels/editor"
)

// NewEditCmd creates the `edit` command.
func NewEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path>",
		Short: "Edit a file on the host",
		Long: `Opens the editor panel for one file served by the host. Saves are
validated first: oversized files and malformed JSON are rejected before
anything is written. With $NVIM set, ctrl+o hands the buffer to the
surrounding Neovim instance.

Examples:
  # Edit a workflow file
  easel edit workflows/main.json

  # Edit a prompt preset
  easel edit presets/portrait.txt
`,
		Args: cobra.ExactArgs(1),
		RunE: runEditE,
	}
}

func runEditE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	tui.InitializeTUI()
	panel := editor.New(editor.Options{
		Client: host.NewClient(cfg.Host.URL),
		Bus:    bus.New(),
		Config: cfg,
		Path:   args[0],
	})

	if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
