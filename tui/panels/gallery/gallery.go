// Package gallery is the output image gallery panel: the generic browser
// component over the host's image listing, grouped by subfolder. The current
// folder survives restarts through the state store; thumbnail metadata is
// fetched per highlighted image with a per-navigation abort.
package gallery

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/errors"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/state"
	"github.com/easeltools/easel/tui/components/browser"
	"github.com/easeltools/easel/tui/theme"
)

const (
	loadTimeout = 10 * time.Second

	// state store keys
	folderStateKey = "gallery.folder"
)

// thumbnailMsg carries fetched thumbnail metadata.
type thumbnailMsg struct {
	meta *host.ThumbnailMeta
	err  error
}

// foldersMsg carries the derived folder list.
type foldersMsg []string

// statusMsg replaces the status line.
type statusMsg string

// Model is the gallery panel.
type Model struct {
	browser browser.Model
	client  *host.Client
	bus     *bus.Bus
	theme   *theme.Theme
	log     *logrus.Entry

	folder  string
	folders []string

	// navCtx scopes thumbnail fetches to the current folder; changing
	// folders cancels everything in flight.
	navCtx    context.Context
	navCancel context.CancelFunc

	thumbnail *host.ThumbnailMeta
	status    string
	width     int
	height    int
}

// Options wires the panel's collaborators.
type Options struct {
	Client *host.Client
	Bus    *bus.Bus
	Config *config.Config
}

// New creates the gallery panel, restoring the persisted folder.
func New(opts Options) *Model {
	m := &Model{
		client: opts.Client,
		bus:    opts.Bus,
		theme:  theme.DefaultTheme,
		log:    logging.NewLogger("gallery"),
	}

	folder, err := state.GetString(folderStateKey)
	if err != nil {
		m.log.WithError(err).Warn("reading persisted folder failed")
	}
	m.folder = folder

	b := browser.New(browser.Config{
		ViewMode: browser.ViewFlat,
		Title:    "Gallery",
	})
	b.ItemsLoader = m.loadItems
	b.OnSelect = m.onSelect
	b.CustomKeyHandler = m.handleCustomKey
	m.browser = b

	m.navCtx, m.navCancel = context.WithCancel(context.Background())

	return m
}

// Folder returns the active subfolder ("" = all).
func (m *Model) Folder() string {
	return m.folder
}

func (m *Model) loadItems() ([]models.Item, error) {
	if m.client == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return m.client.ListImages(ctx, m.folder)
}

// loadFolders derives the folder list from the unscoped image listing.
func (m *Model) loadFolders() tea.Cmd {
	if m.client == nil {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		items, err := client.ListImages(ctx, "")
		if err != nil {
			return statusMsg(err.Error())
		}

		seen := map[string]struct{}{}
		var folders []string
		for _, item := range items {
			dir := path.Dir(strings.ReplaceAll(item.Path, "\\", "/"))
			if dir == "." || dir == "/" {
				continue
			}
			if _, ok := seen[dir]; !ok {
				seen[dir] = struct{}{}
				folders = append(folders, dir)
			}
		}
		return foldersMsg(folders)
	}
}

// onSelect publishes the image and fetches its thumbnail metadata under the
// navigation context.
func (m *Model) onSelect(items []models.Item) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	selected := items[0]

	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Type: bus.EventImageSelected,
			Id:   selected.Id,
			Path: selected.Path,
		})
	}

	if m.client == nil {
		return nil
	}
	client := m.client
	ctx := m.navCtx
	return func() tea.Msg {
		meta, err := client.Thumbnail(ctx, selected.Path)
		return thumbnailMsg{meta: meta, err: err}
	}
}

// setFolder switches the active folder: persists it, cancels in-flight
// thumbnail fetches, and reloads the listing.
func (m *Model) setFolder(folder string) tea.Cmd {
	m.folder = folder
	m.thumbnail = nil

	m.navCancel()
	m.navCtx, m.navCancel = context.WithCancel(context.Background())

	if err := state.Set(folderStateKey, folder); err != nil {
		m.log.WithError(err).Warn("persisting folder failed")
	}

	return m.browser.RefreshItemsCmd()
}

// handleCustomKey cycles the active folder with [ and ].
func (m *Model) handleCustomKey(b browser.Model, msg tea.KeyMsg) (browser.Model, tea.Cmd) {
	switch msg.String() {
	case "[", "]":
		if len(m.folders) == 0 {
			return b, nil
		}
		// "" (all folders) sits before the first real folder in the cycle.
		cycle := append([]string{""}, m.folders...)
		idx := 0
		for i, f := range cycle {
			if f == m.folder {
				idx = i
				break
			}
		}
		if msg.String() == "]" {
			idx = (idx + 1) % len(cycle)
		} else {
			idx = (idx - 1 + len(cycle)) % len(cycle)
		}
		return b, m.setFolder(cycle[idx])
	}
	return b, nil
}

// Init loads folders and the initial image list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.browser.Init(),
		m.browser.RefreshItemsCmd(),
		m.loadFolders(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case foldersMsg:
		m.folders = msg
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case browser.ItemsLoadErrorMsg:
		m.log.WithError(msg.Err).Warn("loading images failed")
		m.status = "load failed: " + msg.Err.Error()
		return m, nil

	case thumbnailMsg:
		if msg.err != nil {
			// A navigation abort is expected, not an error to surface.
			if !errors.Is(msg.err, errors.ErrCodeRequestCanceled) {
				m.status = msg.err.Error()
			}
			return m, nil
		}
		m.thumbnail = msg.meta
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m *Model) View() string {
	folder := m.folder
	if folder == "" {
		folder = "all folders"
	}
	header := m.theme.Title.Render("Gallery") + " " + m.theme.Muted.Render(folder)

	out := header + "\n" + m.browser.View()

	if m.thumbnail != nil {
		out += "\n" + m.theme.Muted.Render(fmt.Sprintf("%s %dx%d %s",
			theme.IconImage, m.thumbnail.Width, m.thumbnail.Height, m.thumbnail.URL))
	}
	if m.status != "" {
		out += "\n" + m.theme.Error.Render(m.status)
	}
	return out
}

// Close cancels any in-flight navigation work.
func (m *Model) Close() {
	m.navCancel()
}
