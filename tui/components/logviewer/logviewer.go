// Package logviewer follows component log files and renders them in a
// scrollable viewport. Lines written by the structured file sink are parsed
// and recolored; anything else passes through raw.
package logviewer

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"

	"github.com/easeltools/easel/tui/theme"
	"github.com/easeltools/easel/tui/utils/scrollbar"
)

// LogLineMsg is sent when a new log line arrives from any followed source.
type LogLineMsg struct {
	Source   string
	Line     string
	NoPrefix bool // suppress the [source] tag
}

// Model is the log viewer component.
type Model struct {
	viewport   viewport.Model
	tails      []*tail.Tail
	mu         sync.Mutex
	follow     bool
	ready      bool
	width      int
	height     int
	logChannel chan LogLineMsg
	lines      []string
}

// New creates a log viewer. One line is reserved for the caller's status bar.
func New(width, height int) Model {
	vp := viewport.New(width, height-1)
	return Model{
		viewport:   vp,
		follow:     true,
		width:      width,
		height:     height,
		logChannel: make(chan LogLineMsg, 100),
		lines:      []string{},
	}
}

// Start begins following the given log files, keyed by source label.
// Any previous tails are stopped first.
func (m *Model) Start(files map[string]string) tea.Cmd {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	for source, path := range files {
		cfg := tail.Config{
			Follow:   true,
			ReOpen:   true,
			Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
			Logger:   stdlog.New(io.Discard, "", 0),
		}
		t, err := tail.TailFile(path, cfg)
		if err != nil {
			continue
		}
		m.tails = append(m.tails, t)

		go func(src string, t *tail.Tail) {
			for line := range t.Lines {
				m.logChannel <- LogLineMsg{Source: src, Line: line.Text}
			}
		}(source, t)
	}

	return m.waitForLogLine()
}

// Stop halts all followed files.
func (m *Model) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tails {
		t.Stop()
	}
	m.tails = nil
}

func (m *Model) setWrappedContent() {
	if !m.ready {
		return
	}

	// One column is reserved for the scrollbar.
	wrapWidth := m.viewport.Width - 1
	if wrapWidth < 1 {
		wrapWidth = 1
	}

	wrapStyle := lipgloss.NewStyle().Width(wrapWidth)

	var wrapped []string
	for _, line := range m.lines {
		wrapped = append(wrapped, wrapStyle.Render(line))
	}

	m.viewport.SetContent(strings.Join(wrapped, "\n"))
}

// SetContent displays static content, stopping any live follow.
func (m *Model) SetContent(content string) {
	m.Stop()
	m.lines = strings.Split(content, "\n")
	m.setWrappedContent()
	m.viewport.GotoBottom()
}

// Clear stops following and clears the viewer.
func (m *Model) Clear() {
	m.Stop()
	m.lines = []string{}
	m.viewport.SetContent("")
}

// GotoTop scrolls to the top.
func (m *Model) GotoTop() {
	m.viewport.GotoTop()
}

// GotoBottom scrolls to the bottom.
func (m *Model) GotoBottom() {
	m.viewport.GotoBottom()
}

// ScrollInfo returns the 1-indexed top visible line and the total line count.
func (m *Model) ScrollInfo() (currentLine, totalLines int) {
	totalLines = len(m.lines)
	if totalLines == 0 {
		return 0, 0
	}
	return m.viewport.YOffset + 1, totalLines
}

// ScrollPercent returns the scroll position as a fraction.
func (m *Model) ScrollPercent() float64 {
	if len(m.lines) == 0 {
		return 0
	}
	return m.viewport.ScrollPercent()
}

func (m *Model) waitForLogLine() tea.Cmd {
	return func() tea.Msg {
		return <-m.logChannel
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 1
		m.ready = true
		m.setWrappedContent()
	case LogLineMsg:
		m.lines = append(m.lines, formatLogLine(msg.Source, msg.Line, msg.NoPrefix))
		m.setWrappedContent()
		if m.follow {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.waitForLogLine())
	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.follow = !m.follow
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the log viewer with a scrollbar overlay.
func (m Model) View() string {
	if !m.ready {
		return "Initializing log viewer..."
	}

	content := m.viewport.View()
	lines := strings.Split(content, "\n")
	bar := scrollbar.Generate(&m.viewport, len(lines))

	var result []string
	for i, line := range lines {
		ch := " "
		if i < len(bar) {
			ch = bar[i]
		}
		result = append(result, line+ch)
	}

	return strings.Join(result, "\n")
}

// IsFollowing reports whether new lines auto-scroll the viewport.
func (m Model) IsFollowing() bool {
	return m.follow
}

// formatLogLine recolors a structured log line, or passes raw lines through.
func formatLogLine(source, line string, noPrefix bool) string {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line), &logMap); err != nil {
		if noPrefix {
			return line
		}
		return fmt.Sprintf("[%s] %s", theme.DefaultTheme.Accent.Render(source), line)
	}

	msg, _ := logMap["msg"].(string)
	level, _ := logMap["level"].(string)
	ts, _ := logMap["time"].(string)

	var timeStr string
	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}
	if !parsedTime.IsZero() {
		timeStr = parsedTime.Format("15:04:05")
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	default:
		levelStyle = theme.DefaultTheme.Info
	}

	var parts []string
	if timeStr != "" {
		parts = append(parts, timeStr)
	}
	if !noPrefix {
		parts = append(parts, fmt.Sprintf("[%s]", theme.DefaultTheme.Accent.Render(source)))
	}
	parts = append(parts, levelStyle.Render(strings.ToUpper(level))+":")
	parts = append(parts, msg)

	return strings.Join(parts, " ")
}
