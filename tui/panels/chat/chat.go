// Package chat is the LLM chat sidebar panel: a prompt input over a
// transcript viewport, with completions requested through the host and the
// conversation persisted in the state store.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/state"
	"github.com/easeltools/easel/tui/theme"
)

const (
	requestTimeout = 60 * time.Second

	historyStateKey = "chat.history"
)

// replyMsg carries the assistant's completion.
type replyMsg struct {
	content string
	err     error
}

// Model is the chat panel.
type Model struct {
	client *host.Client
	theme  *theme.Theme
	log    *logrus.Entry

	input      textinput.Model
	transcript viewport.Model
	history    []models.ChatMessage
	model      string
	maxHistory int

	waiting bool
	status  string
	width   int
	height  int
	ready   bool
}

// Options wires the panel's collaborators.
type Options struct {
	Client *host.Client
	Config *config.Config
}

// New creates the chat panel, restoring any persisted conversation.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about your workflow..."
	ti.CharLimit = 4096
	ti.Focus()

	m := &Model{
		client:     opts.Client,
		theme:      theme.DefaultTheme,
		log:        logging.NewLogger("chat"),
		input:      ti,
		model:      cfg.Chat.Model,
		maxHistory: cfg.Chat.MaxHistory,
	}
	m.history = loadHistory(m.log)
	return m
}

// History returns the current transcript.
func (m *Model) History() []models.ChatMessage {
	return m.history
}

// loadHistory restores the persisted transcript. A corrupt entry clears the
// history rather than failing the panel.
func loadHistory(log *logrus.Entry) []models.ChatMessage {
	raw, ok, err := state.Get(historyStateKey)
	if err != nil || !ok {
		if err != nil {
			log.WithError(err).Warn("reading chat history failed")
		}
		return nil
	}

	var history []models.ChatMessage
	if err := mapstructure.Decode(raw, &history); err != nil {
		log.WithError(err).Warn("decoding chat history failed, starting fresh")
		return nil
	}
	return history
}

func (m *Model) persistHistory() {
	if err := state.Set(historyStateKey, m.history); err != nil {
		m.log.WithError(err).Warn("persisting chat history failed")
	}
}

// trimHistory drops the oldest turns beyond the configured cap.
func (m *Model) trimHistory() {
	if m.maxHistory > 0 && len(m.history) > m.maxHistory {
		m.history = m.history[len(m.history)-m.maxHistory:]
	}
}

func (m *Model) send(prompt string) tea.Cmd {
	m.history = append(m.history, models.ChatMessage{
		Role:    "user",
		Content: prompt,
		SentAt:  time.Now(),
	})
	m.trimHistory()
	m.persistHistory()
	m.waiting = true

	client := m.client
	model := m.model
	history := append([]models.ChatMessage{}, m.history...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		content, err := client.ChatComplete(ctx, model, history)
		return replyMsg{content: content, err: err}
	}
}

// Clear wipes the transcript, in memory and in the state store.
func (m *Model) Clear() {
	m.history = nil
	if err := state.Delete(historyStateKey); err != nil {
		m.log.WithError(err).Warn("clearing chat history failed")
	}
	if m.ready {
		m.transcript.SetContent("")
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript = viewport.New(msg.Width, msg.Height-3)
		m.input.Width = msg.Width - 4
		m.ready = true
		m.renderTranscript()
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.history = append(m.history, models.ChatMessage{
			Role:    "assistant",
			Content: msg.content,
			SentAt:  time.Now(),
		})
		m.trimHistory()
		m.persistHistory()
		m.renderTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")
			cmd := m.send(prompt)
			m.renderTranscript()
			return m, cmd
		case "ctrl+l":
			m.Clear()
			return m, nil
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) renderTranscript() {
	if !m.ready {
		return
	}

	wrap := lipgloss.NewStyle().Width(m.transcript.Width - 2)

	var b strings.Builder
	for _, msg := range m.history {
		var label string
		if msg.Role == "user" {
			label = m.theme.ChatUser.Render("you")
		} else {
			label = m.theme.ChatAssistant.Render("assistant")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Content))
		b.WriteString("\n\n")
	}
	if m.waiting {
		b.WriteString(m.theme.Muted.Render("thinking..."))
		b.WriteString("\n")
	}

	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

// View renders the panel.
func (m *Model) View() string {
	header := m.theme.Title.Render("Chat") + " " + m.theme.Muted.Render(m.model)

	var body string
	if m.ready {
		body = m.transcript.View()
	}

	footer := fmt.Sprintf("%s %s", theme.IconChat, m.input.View())
	if m.status != "" {
		footer += "\n" + m.theme.Error.Render(m.status)
	}

	return header + "\n" + body + "\n" + footer
}
