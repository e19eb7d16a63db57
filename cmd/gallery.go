package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/tui"
	"github.com/easeltools/easel/tui/panels/gallery"
)

// NewGalleryCmd creates the `gallery` command.
func NewGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gallery",
		Short: "Walk the host's output images",
		Long: `Opens the gallery panel over the host's image outputs. The last
visited folder is remembered between runs.

Examples:
  # Browse images, starting in the last visited folder
  easel gallery
`,
		RunE: runGalleryE,
	}
}

func runGalleryE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	b := bus.New()
	client := host.NewClient(cfg.Host.URL)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if listener, err := host.NewEventListener(cfg.Host.URL, cfg.Host.EventsPath, b); err == nil {
		go listener.Run(ctx)
	}

	tui.InitializeTUI()
	panel := gallery.New(gallery.Options{
		Client: client,
		Bus:    b,
		Config: cfg,
	})
	defer panel.Close()

	if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run gallery: %w", err)
	}
	return nil
}
