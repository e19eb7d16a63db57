package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/tui"
	"github.com/easeltools/easel/tui/components/logviewer"
	"github.com/easeltools/easel/tui/theme"
	"github.com/easeltools/easel/util/pathutil"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Follow the host application's logs",
		Long: `Follows the host log file configured under host.log_file together
with easel's own component logs from .easel/logs. Press f to toggle
follow, q to quit.

Examples:
  # Follow all known log files
  easel logs
`,
		RunE: runLogsE,
	}
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	files := collectLogFiles(cfg)
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No log files found. Set host.log_file in easel.yml or run a panel first.")
		return nil
	}

	tui.InitializeTUI()
	model := &logsModel{
		viewer: logviewer.New(80, 24),
		files:  files,
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run log viewer: %w", err)
	}
	return nil
}

// collectLogFiles gathers followable files keyed by source label: the host's
// own log plus the newest per-component file under .easel/logs.
func collectLogFiles(cfg *config.Config) map[string]string {
	files := make(map[string]string)

	if cfg.Host.LogFile != "" {
		if expanded, err := pathutil.Expand(cfg.Host.LogFile); err == nil {
			files["host"] = expanded
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return files
	}
	matches, _ := filepath.Glob(filepath.Join(cwd, ".easel", "logs", "*.log"))
	sort.Strings(matches)

	// Filenames are <component>-YYYY-MM-DD.log; sorted order makes the
	// newest date win per component.
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".log")
		if parts := strings.Split(name, "-"); len(parts) >= 4 {
			name = strings.Join(parts[:len(parts)-3], "-")
		}
		files[name] = path
	}
	return files
}

// logsModel wraps the log viewer component with a status bar and quit keys.
type logsModel struct {
	viewer  logviewer.Model
	files   map[string]string
	started bool
}

func (m *logsModel) Init() tea.Cmd {
	return nil
}

func (m *logsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.started {
			m.started = true
			cmds = append(cmds, m.viewer.Start(m.files))
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.viewer.Stop()
			return m, tea.Quit
		case "g":
			m.viewer.GotoTop()
			return m, nil
		case "G":
			m.viewer.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *logsModel) View() string {
	follow := "off"
	if m.viewer.IsFollowing() {
		follow = "on"
	}
	current, total := m.viewer.ScrollInfo()

	var sources []string
	for source := range m.files {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	status := theme.DefaultTheme.Muted.Render(fmt.Sprintf(
		" %s • follow:%s • %d/%d • f toggle follow • q quit",
		strings.Join(sources, ","), follow, current, total,
	))
	return m.viewer.View() + "\n" + status
}
