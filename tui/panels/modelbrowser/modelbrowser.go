// Package modelbrowser is the model browser panel: the generic browser
// component parameterized for the host's model catalog, enriched with local
// usage data and falling back to the filesystem scanner when the host is
// down.
package modelbrowser

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/catalog"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/pkg/profiling"
	"github.com/easeltools/easel/pkg/scan"
	"github.com/easeltools/easel/state"
	"github.com/easeltools/easel/tui/components/browser"
	"github.com/easeltools/easel/tui/theme"
)

const loadTimeout = 10 * time.Second

// state store keys for the remembered controls
const (
	viewStateKey   = "browser.view"
	sortStateKey   = "browser.sort"
	searchStateKey = "browser.search"
)

// busEventMsg wraps a bus event for the Update loop.
type busEventMsg bus.Event

// statusMsg replaces the status line.
type statusMsg string

// Model is the model browser panel.
type Model struct {
	browser browser.Model
	client  *host.Client
	scanner *scan.Scanner
	usage   *catalog.UsageStore
	bus     *bus.Bus
	events  chan bus.Event
	theme   *theme.Theme
	log     *logrus.Entry
	status  string
	width   int
	height  int
}

// Options wires the panel's collaborators.
type Options struct {
	Client  *host.Client
	Scanner *scan.Scanner
	Usage   *catalog.UsageStore
	Bus     *bus.Bus
	Config  *config.Config
}

// New creates the model browser panel, restoring the persisted view, sort
// and search on top of the config defaults.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	browserCfg := cfg.Browser
	if browserCfg == nil {
		browserCfg = &config.BrowserConfig{}
	}

	m := &Model{
		client:  opts.Client,
		scanner: opts.Scanner,
		usage:   opts.Usage,
		bus:     opts.Bus,
		theme:   theme.DefaultTheme,
		log:     logging.NewLogger("modelbrowser"),
	}

	view := browserCfg.View
	sortMode := browserCfg.Sort
	search := ""
	if v, err := state.GetString(viewStateKey); err != nil {
		m.log.WithError(err).Warn("reading persisted view failed")
	} else if v != "" {
		view = v
	}
	if v, err := state.GetString(sortStateKey); err == nil && v != "" {
		sortMode = v
	}
	if v, err := state.GetString(searchStateKey); err == nil && v != "" {
		search = v
	}

	viewMode := browser.ViewFlat
	if view == "tree" {
		viewMode = browser.ViewTree
	}

	b := browser.New(browser.Config{
		ViewMode:        viewMode,
		Filters:         catalog.Filters{Sort: sortMode, Search: search},
		DefaultExpanded: browserCfg.DefaultExpanded,
		Title:           "Model Browser",
	})
	b.ItemsLoader = m.loadItems
	b.OnSelect = m.onSelect
	b.RenderGutter = m.renderGutter
	b.CustomKeyHandler = m.handleCustomKey
	m.browser = b

	if m.bus != nil {
		m.events = m.bus.Subscribe()
	}

	return m
}

// loadItems fetches the host's model listing, falling back to the local
// scanner when the host is unreachable, and enriches with usage data.
func (m *Model) loadItems() ([]models.Item, error) {
	defer profiling.Start("browser.load-items").Stop()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	var items []models.Item
	var err error
	if m.client != nil {
		items, err = m.client.ListModels(ctx)
	}
	if (err != nil || m.client == nil) && m.scanner != nil {
		if err != nil {
			m.log.WithError(err).Debug("host listing failed, scanning locally")
		}
		items, err = m.scanner.Scan()
	}
	if err != nil {
		return nil, err
	}

	if m.usage != nil {
		enriched, enrichErr := m.usage.Enrich(items)
		if enrichErr != nil {
			m.log.WithError(enrichErr).Warn("usage enrichment failed")
			return items, nil
		}
		items = enriched
	}
	return items, nil
}

// onSelect records usage and announces the selection on the bus.
func (m *Model) onSelect(items []models.Item) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	selected := items[0]

	if m.usage != nil {
		if err := m.usage.RecordUse(selected.Id); err != nil {
			m.log.WithError(err).Warn("recording use failed")
		}
	}
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Type: bus.EventModelSelected,
			Id:   selected.Id,
			Path: selected.Path,
		})
	}

	name := selected.DisplayName()
	return func() tea.Msg {
		return statusMsg(fmt.Sprintf("selected %s", name))
	}
}

// renderGutter shows the bucket tag and per-item markers.
func (m *Model) renderGutter(item models.Item, highlighted bool) string {
	c := catalog.Classify(item.Path)
	tag := m.theme.BucketLabel.Render(fmt.Sprintf("%-14s", c.Bucket))
	return tag + " "
}

// handleCustomKey adds the panel's quick actions on top of the browser keys.
func (m *Model) handleCustomKey(b browser.Model, msg tea.KeyMsg) (browser.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		row, ok := b.CurrentRow()
		if !ok || row.Kind != browser.RowItem {
			return b, nil
		}
		name := row.Item.DisplayName()
		if err := clipboard.WriteAll(name); err != nil {
			m.log.WithError(err).Warn("clipboard write failed")
			return b, func() tea.Msg { return statusMsg("clipboard unavailable") }
		}
		return b, func() tea.Msg { return statusMsg(fmt.Sprintf("copied %s", name)) }

	case "u":
		row, ok := b.CurrentRow()
		if !ok || row.Kind != browser.RowItem {
			return b, nil
		}
		if m.usage != nil {
			if err := m.usage.RecordUse(row.Item.Id); err != nil {
				m.log.WithError(err).Warn("recording use failed")
				return b, nil
			}
		}
		return b, tea.Batch(
			b.RefreshItemsCmd(),
			func() tea.Msg { return statusMsg(fmt.Sprintf("marked %s used", row.Item.DisplayName())) },
		)
	}
	return b, nil
}

func (m *Model) waitForBusEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return busEventMsg(ev)
	}
}

// Init loads the initial item list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.browser.Init(),
		m.browser.RefreshItemsCmd(),
		m.waitForBusEvent(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case busEventMsg:
		if msg.Type == bus.EventItemsRefreshed {
			return m, tea.Batch(m.browser.RefreshItemsCmd(), m.waitForBusEvent())
		}
		return m, m.waitForBusEvent()

	case browser.ItemsLoadErrorMsg:
		m.log.WithError(msg.Err).Warn("loading models failed")
		m.status = "load failed: " + msg.Err.Error()
		return m, nil
	}

	prevView := m.browser.ViewModeName()
	prevFilters := m.browser.Filters()

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	m.persistControls(prevView, prevFilters)
	return m, cmd
}

// persistControls writes view, sort and search through the state store when
// a message changed them, so the next session starts where this one left.
func (m *Model) persistControls(prevView browser.ViewMode, prev catalog.Filters) {
	if v := m.browser.ViewModeName(); v != prevView {
		m.persist(viewStateKey, string(v))
	}
	cur := m.browser.Filters()
	if cur.Sort != prev.Sort {
		m.persist(sortStateKey, cur.Sort)
	}
	if cur.Search != prev.Search {
		m.persist(searchStateKey, cur.Search)
	}
}

func (m *Model) persist(key, value string) {
	if err := state.Set(key, value); err != nil {
		m.log.WithError(err).Warn("persisting control state failed")
	}
}

// View renders the panel.
func (m *Model) View() string {
	header := m.theme.Title.Render("Model Browser")
	body := m.browser.View()

	out := header + "\n" + body
	if m.status != "" {
		out += "\n" + m.theme.Muted.Render(m.status)
	}
	return out
}

// Close releases the panel's bus subscription.
func (m *Model) Close() {
	if m.bus != nil && m.events != nil {
		m.bus.Unsubscribe(m.events)
		m.events = nil
	}
}
