package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/catalog"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/pkg/scan"
	"github.com/easeltools/easel/tui"
	"github.com/easeltools/easel/tui/panels/modelbrowser"
)

const watcherDebounce = 500 * time.Millisecond

// NewBrowseCmd creates the `browse` command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse models known to the host",
		Long: `Opens the model browser panel. Models come from the host application
when it is reachable, otherwise from scanning the configured model roots.

Examples:
  # Browse with the configured defaults
  easel browse

  # Start in tree view sorted by last use
  easel browse --view tree --sort lastused-desc
`,
		RunE: runBrowseE,
	}

	cmd.Flags().String("view", "", "View mode: flat or tree")
	cmd.Flags().String("sort", "", "Sort: name|lastused|size|type with optional -desc suffix")

	return cmd
}

func runBrowseE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)
	logger := cli.GetLogger(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}
	logger.WithField("host", cfg.Host.URL).Debug("starting model browser")

	applyBrowserFlags(cmd, cfg)

	b := bus.New()
	client := host.NewClient(cfg.Host.URL)

	var scanner *scan.Scanner
	var watcher *scan.Watcher
	if len(cfg.ModelRoots) > 0 {
		scanner, err = scan.NewScanner(cfg.ModelRoots, cfg.IgnorePatterns)
		if err != nil {
			return handler.Handle(err)
		}
		watcher, err = scan.NewWatcher(cfg.ModelRoots, b, watcherDebounce)
		if err == nil {
			defer watcher.Close()
		}
		// A failed watcher only disables live refresh; browsing still works.
	}

	usage, err := catalog.NewUsageStore(".easel")
	if err != nil {
		return handler.Handle(err)
	}
	defer usage.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if listener, err := host.NewEventListener(cfg.Host.URL, cfg.Host.EventsPath, b); err == nil {
		go listener.Run(ctx)
	}

	tui.InitializeTUI()
	panel := modelbrowser.New(modelbrowser.Options{
		Client:  client,
		Scanner: scanner,
		Usage:   usage,
		Bus:     b,
		Config:  cfg,
	})
	defer panel.Close()

	if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run model browser: %w", err)
	}
	return nil
}

// applyBrowserFlags overlays command-line view and sort choices on the
// loaded config.
func applyBrowserFlags(cmd *cobra.Command, cfg *config.Config) {
	view, _ := cmd.Flags().GetString("view")
	sort, _ := cmd.Flags().GetString("sort")
	if view == "" && sort == "" {
		return
	}
	if cfg.Browser == nil {
		cfg.Browser = &config.BrowserConfig{}
	}
	if view != "" {
		cfg.Browser.View = view
	}
	if sort != "" {
		cfg.Browser.Sort = sort
	}
}
