// Package editor is the workflow file editor panel: load, edit, save and
// delete files through the host, with a read-only preview mode. Oversize
// files and invalid JSON are rejected before any write reaches the host.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/errors"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/tui/theme"
	"github.com/easeltools/easel/tui/utils/scrollbar"
)

const requestTimeout = 10 * time.Second

// fileLoadedMsg carries the fetched file content.
type fileLoadedMsg struct {
	data []byte
	err  error
}

// fileSavedMsg reports a completed save.
type fileSavedMsg struct {
	err error
}

// fileDeletedMsg reports a completed delete.
type fileDeletedMsg struct {
	err error
}

// nvimMsg reports the outcome of the Neovim hand-off.
type nvimMsg struct {
	err error
}

// Model is the editor panel.
type Model struct {
	client *host.Client
	bus    *bus.Bus
	theme  *theme.Theme
	log    *logrus.Entry

	path        string
	textarea    textarea.Model
	preview     viewport.Model
	showPreview bool
	maxFileSize int64

	dirty  bool
	status string
	width  int
	height int
	ready  bool
}

// Options wires the panel's collaborators.
type Options struct {
	Client *host.Client
	Bus    *bus.Bus
	Config *config.Config
	Path   string
}

// New creates the editor panel for one file.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ta := textarea.New()
	ta.Placeholder = "Loading..."
	ta.ShowLineNumbers = true

	return &Model{
		client:      opts.Client,
		bus:         opts.Bus,
		theme:       theme.DefaultTheme,
		log:         logging.NewLogger("editor"),
		path:        opts.Path,
		textarea:    ta,
		maxFileSize: cfg.Editor.MaxFileSize,
	}
}

// Path returns the edited file's host path.
func (m *Model) Path() string {
	return m.path
}

// Dirty reports whether the buffer has unsaved changes.
func (m *Model) Dirty() bool {
	return m.dirty
}

func (m *Model) loadFile() tea.Cmd {
	client := m.client
	path := m.path
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := client.ReadFile(ctx, path)
		return fileLoadedMsg{data: data, err: err}
	}
}

// validate rejects oversize content and, for .json files, unparseable JSON.
// Runs before any write reaches the host.
func (m *Model) validate(content []byte) error {
	if m.maxFileSize > 0 && int64(len(content)) > m.maxFileSize {
		return errors.FileTooLarge(m.path, int64(len(content)), m.maxFileSize)
	}
	if strings.EqualFold(filepath.Ext(m.path), ".json") && !json.Valid(content) {
		return errors.InvalidJSON(m.path, fmt.Errorf("content does not parse"))
	}
	return nil
}

func (m *Model) saveFile() tea.Cmd {
	content := []byte(m.textarea.Value())
	if err := m.validate(content); err != nil {
		return func() tea.Msg { return fileSavedMsg{err: err} }
	}

	client := m.client
	path := m.path
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.WriteFile(ctx, path, content)
		return fileSavedMsg{err: err}
	}
}

func (m *Model) deleteFile() tea.Cmd {
	client := m.client
	path := m.path
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteFile(ctx, path)
		return fileDeletedMsg{err: err}
	}
}

// openInNvim hands the buffer to a running Neovim instance over its RPC
// socket. Only offered when $NVIM is set.
func (m *Model) openInNvim() tea.Cmd {
	socket := os.Getenv("NVIM")
	if socket == "" {
		return func() tea.Msg {
			return nvimMsg{err: fmt.Errorf("$NVIM is not set")}
		}
	}

	content := m.textarea.Value()
	name := filepath.Base(m.path)
	return func() tea.Msg {
		tmp, err := os.CreateTemp("", "easel-*-"+name)
		if err != nil {
			return nvimMsg{err: err}
		}
		if _, err := tmp.WriteString(content); err != nil {
			tmp.Close()
			return nvimMsg{err: err}
		}
		tmp.Close()

		return nvimMsg{err: handOff(socket, tmp.Name())}
	}
}

// Init loads the file.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadFile())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 2)
		m.textarea.SetHeight(msg.Height - 4)
		m.preview = viewport.New(msg.Width-2, msg.Height-4)
		m.ready = true
		if m.showPreview {
			m.preview.SetContent(m.textarea.Value())
		}
		return m, nil

	case fileLoadedMsg:
		if msg.err != nil {
			m.status = statusFromError(msg.err)
			return m, nil
		}
		m.textarea.SetValue(string(msg.data))
		m.textarea.Focus()
		m.dirty = false
		m.status = fmt.Sprintf("loaded %s (%d bytes)", m.path, len(msg.data))
		return m, nil

	case fileSavedMsg:
		if msg.err != nil {
			m.status = statusFromError(msg.err)
			return m, nil
		}
		m.dirty = false
		m.status = fmt.Sprintf("saved %s", m.path)
		if m.bus != nil {
			m.bus.Publish(bus.Event{Type: bus.EventFileSaved, Path: m.path})
		}
		return m, nil

	case fileDeletedMsg:
		if msg.err != nil {
			m.status = statusFromError(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %s", m.path)
		if m.bus != nil {
			m.bus.Publish(bus.Event{Type: bus.EventFileDeleted, Path: m.path})
		}
		return m, tea.Quit

	case nvimMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("nvim hand-off failed: %v", msg.err)
		} else {
			m.status = "opened in nvim"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return m, m.saveFile()
		case "ctrl+x":
			return m, m.deleteFile()
		case "ctrl+o":
			return m, m.openInNvim()
		case "ctrl+v":
			m.showPreview = !m.showPreview
			if m.showPreview {
				m.textarea.Blur()
				if m.ready {
					m.preview.SetContent(m.textarea.Value())
				}
			} else {
				m.textarea.Focus()
			}
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.showPreview {
				m.showPreview = false
				m.textarea.Focus()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.showPreview {
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	before := m.textarea.Value()
	m.textarea, cmd = m.textarea.Update(msg)
	if m.textarea.Value() != before {
		m.dirty = true
	}
	return m, cmd
}

// View renders the panel.
func (m *Model) View() string {
	title := m.path
	if m.dirty {
		title += " " + m.theme.Warning.Render("[+]")
	}
	header := m.theme.Title.Render("Editor") + " " + m.theme.Muted.Render(title)

	var body string
	if m.showPreview && m.ready {
		body = scrollbar.Overlay(&m.preview)
	} else {
		body = m.textarea.View()
	}

	footer := m.theme.Muted.Render("ctrl+s save  ctrl+v preview  ctrl+o nvim  ctrl+x delete")
	if m.status != "" {
		footer = m.statusStyle().Render(m.status)
	}

	return header + "\n" + body + "\n" + footer
}

func (m *Model) statusStyle() interface{ Render(...string) string } {
	if strings.Contains(m.status, "failed") || strings.Contains(strings.ToUpper(m.status), "ERROR") {
		return m.theme.Error
	}
	return m.theme.Muted
}

// statusFromError maps typed errors to a status string; the panel never
// retries on its own.
func statusFromError(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileTooLarge:
		return fmt.Sprintf("rejected: %v", err)
	case errors.ErrCodeInvalidJSON:
		return fmt.Sprintf("rejected: %v", err)
	case errors.ErrCodeHostUnreachable:
		return "host unreachable (press refresh to retry)"
	default:
		return err.Error()
	}
}
