// Package browser provides the embeddable hierarchical browser component
// shared by the model browser and gallery panels. It owns filtering,
// sorting, flat/tree presentation, single and multi selection, and
// incremental row rendering for large catalogs.
//
// The component follows a push-data pattern: the parent application loads
// items and delivers them with ItemsLoadedMsg, and customizes behavior
// through the OnSelect, RenderGutter and CustomKeyHandler callbacks.
package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/easeltools/easel/pkg/catalog"
	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/tui/components/help"
	"github.com/easeltools/easel/tui/keymap"
	"github.com/easeltools/easel/tui/theme"
)

// ViewMode selects between the flat list and the folder tree presentation.
type ViewMode string

const (
	ViewFlat ViewMode = "flat"
	ViewTree ViewMode = "tree"
)

// pageStep is how far PgUp and PgDn move the highlight.
const pageStep = 10

// sortCycle is the order the CycleSort key walks through.
var sortCycle = []string{"name", "name-desc", "lastused-desc", "size-desc", "type"}

// bucketCycle is the order the CycleBucket key walks through. Empty means
// no bucket filter.
var bucketCycle = []string{"", "checkpoints", "loras", "embeddings", "vae", "controlnet", "upscale_models", "clip_vision", catalog.BucketOther}

// Model is the generic browser component model.
type Model struct {
	items   []models.Item // full unfiltered list
	visible []models.Item // after filter and sort

	// Incremental render state. rows is revealed in batches; generation
	// invalidates batches that were in flight when the list changed.
	rows        []Row
	pendingRows []Row
	rowsDone    bool
	renderGen   int

	cursor      int
	selected    map[string]struct{}
	multiSelect bool

	viewMode        ViewMode
	expanded        map[string]bool
	defaultExpanded bool

	filters     catalog.Filters
	filterInput textinput.Model

	width  int
	height int
	help   help.Model
	keys   KeyMap
	theme  *theme.Theme
	seq    *keymap.SequenceState

	// --- Callbacks for customization ---

	// OnSelect is called when the selection is committed (Enter). The
	// returned command is executed by the parent program.
	OnSelect func([]models.Item) tea.Cmd

	// RenderGutter allows the parent to define what status indicators
	// appear to the left of each item name.
	RenderGutter func(item models.Item, isHighlighted bool) string

	// CustomKeyHandler allows the parent to intercept key presses before
	// the browser's default keymap. If it returns a non-nil command, the
	// browser executes it and stops processing the key.
	CustomKeyHandler func(m Model, msg tea.KeyMsg) (Model, tea.Cmd)

	// ItemsLoader is called to refresh the item list.
	ItemsLoader func() ([]models.Item, error)

	// RefreshInterval controls auto-refresh in seconds. 0 = no auto-refresh.
	RefreshInterval int
}

// Config defines the initial configuration for the browser.
type Config struct {
	Items           []models.Item
	MultiSelect     bool
	ViewMode        ViewMode
	Filters         catalog.Filters
	Keys            *KeyMap
	Theme           *theme.Theme
	DefaultExpanded bool
	Title           string
}

// New creates a new browser model with the given configuration.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 256
	ti.Width = 50
	if cfg.Filters.Search != "" {
		ti.SetValue(cfg.Filters.Search)
	}

	keys := NewKeyMap(keymap.NewBase())
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}

	th := cfg.Theme
	if th == nil {
		th = theme.DefaultTheme
	}

	viewMode := cfg.ViewMode
	if viewMode == "" {
		viewMode = ViewFlat
	}

	title := cfg.Title
	if title == "" {
		title = "Browser"
	}
	helpModel := help.New(keys)
	helpModel.Title = title

	m := Model{
		items:           cfg.Items,
		selected:        make(map[string]struct{}),
		multiSelect:     cfg.MultiSelect,
		viewMode:        viewMode,
		expanded:        make(map[string]bool),
		defaultExpanded: cfg.DefaultExpanded,
		filters:         cfg.Filters,
		filterInput:     ti,
		help:            helpModel,
		keys:            keys,
		theme:           th,
		seq:             keymap.NewSequenceState(),
	}
	m.applyFilters()
	m.finishRenderNow()
	return m
}

// Init initializes the browser. The parent application is responsible for
// sending the initial ItemsLoadedMsg.
func (m Model) Init() tea.Cmd {
	if m.RefreshInterval > 0 {
		return m.tick()
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case ItemsLoadedMsg:
		return m.handleItemsLoaded(msg)

	case rowsBatchMsg:
		return m.handleRowsBatch(msg)

	case tickMsg:
		cmds := []tea.Cmd{m.RefreshItemsCmd()}
		if m.RefreshInterval > 0 {
			cmds = append(cmds, m.tick())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, cmd
}

func (m Model) handleItemsLoaded(msg ItemsLoadedMsg) (Model, tea.Cmd) {
	// Remember the highlighted row to restore the cursor after reload.
	highlightedId := ""
	if row, ok := m.CurrentRow(); ok {
		highlightedId = row.Id()
	}

	m.items = msg.Items
	m.applyFilters()
	m.pruneSelection()
	cmd := m.startRender()

	if highlightedId != "" {
		for i, row := range m.pendingRows {
			if row.Id() == highlightedId {
				m.cursor = i
				break
			}
		}
	}
	// Rows are still empty while batches stream in; clamp against the
	// pending set so the restored cursor survives the render. An idle
	// highlight stays idle.
	if m.cursor >= len(m.pendingRows) {
		m.cursor = len(m.pendingRows) - 1
	}
	if len(m.pendingRows) == 0 || m.cursor < -1 {
		m.cursor = -1
	}

	return m, cmd
}

func (m Model) handleRowsBatch(msg rowsBatchMsg) (Model, tea.Cmd) {
	// A batch from a superseded render is dropped on the floor.
	if msg.generation != m.renderGen {
		return m, nil
	}

	m.rows = append(m.rows, msg.rows...)
	if msg.done {
		m.rowsDone = true
		m.clampCursor()
		return m, nil
	}
	return m, m.renderBatchCmd(msg.generation, len(m.rows))
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	// If help is visible, it consumes all key presses.
	if m.help.ShowAll {
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	// Give the parent a chance to handle the key press first.
	if m.CustomKeyHandler != nil {
		if newModel, cmd := m.CustomKeyHandler(m, msg); cmd != nil {
			return newModel, cmd
		}
	}

	if m.filterInput.Focused() {
		return m.handleFilterKey(msg)
	}

	// Multi-key sequences (gg, zR, zM, za, dd) are resolved first.
	seqBindings := []key.Binding{m.keys.Top, m.keys.FoldToggle, m.keys.ExpandAll, m.keys.CollapseAll, m.keys.Delete}
	result, idx := m.seq.Process(msg, seqBindings...)
	switch result {
	case keymap.SequencePending:
		return m, nil
	case keymap.SequenceMatch:
		m.seq.Clear()
		switch idx {
		case 0: // gg
			m.cursor = 0
			m.clampCursor()
			return m, nil
		case 1: // za
			return m, m.toggleFoldAtCursor()
		case 2: // zR
			return m, m.setAllFolds(true)
		case 3: // zM
			return m, m.setAllFolds(false)
		case 4: // dd - surfaced to the parent through OnDelete-style custom handlers
			return m, nil
		}
	case keymap.SequenceNone:
		m.seq.Clear()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-pageStep)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(pageStep)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.End), key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Search):
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ClearSearch):
		m.filterInput.SetValue("")
		m.filters.Search = ""
		m.applyFilters()
		return m, m.startRender()

	case key.Matches(msg, m.keys.ToggleView):
		if m.viewMode == ViewFlat {
			m.viewMode = ViewTree
		} else {
			m.viewMode = ViewFlat
		}
		m.cursor = 0
		return m, m.startRender()

	case key.Matches(msg, m.keys.CycleSort):
		m.filters.Sort = nextInCycle(sortCycle, m.filters.Sort)
		m.applyFilters()
		return m, m.startRender()

	case key.Matches(msg, m.keys.CycleBucket):
		m.filters.Bucket = nextInCycle(bucketCycle, m.filters.Bucket)
		m.applyFilters()
		m.cursor = 0
		return m, m.startRender()

	case key.Matches(msg, m.keys.Select):
		if m.multiSelect {
			m.toggleSelectAtCursor()
		} else {
			return m, m.toggleFoldAtCursor()
		}
	case key.Matches(msg, m.keys.SelectAll):
		if m.multiSelect {
			m.selectAllVisible()
		}
	case key.Matches(msg, m.keys.SelectNone):
		m.clearSelection()

	case key.Matches(msg, m.keys.Confirm):
		return m, m.commitSelection()

	case key.Matches(msg, m.keys.Back):
		// Escape clears the selection, idles the highlight and drops any
		// pending filter text. The next Down or Up lands on the first row.
		m.clearSelection()
		m.cursor = -1
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.filters.Search = ""
			m.applyFilters()
			return m, m.startRender()
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.RefreshItemsCmd()

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Type {
	case tea.KeyEsc:
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterInput.Blur()
		return m, m.commitSelection()
	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	default:
		prevValue := m.filterInput.Value()
		m.filterInput, cmd = m.filterInput.Update(msg)

		if m.filterInput.Value() != prevValue {
			m.filters.Search = m.filterInput.Value()
			m.applyFilters()
			m.cursor = 0
			return m, tea.Batch(cmd, m.startRender())
		}
		return m, cmd
	}
}

// applyFilters recomputes the visible item list from the full list.
func (m *Model) applyFilters() {
	m.visible = catalog.Apply(m.items, m.filters)
}

// SetFilters replaces the active filters and recomputes the visible list.
// The returned command must be executed to re-render the rows.
func (m *Model) SetFilters(f catalog.Filters) tea.Cmd {
	m.filters = f
	m.filterInput.SetValue(f.Search)
	m.applyFilters()
	m.cursor = 0
	return m.startRender()
}

// Filters returns the active filters.
func (m Model) Filters() catalog.Filters {
	return m.filters
}

// ViewModeName returns the active view mode.
func (m Model) ViewModeName() ViewMode {
	return m.viewMode
}

// VisibleItems returns the filtered, sorted item list.
func (m Model) VisibleItems() []models.Item {
	return m.visible
}

// Rows returns the materialized display rows. While an incremental render
// is in flight this is a prefix of the full row list.
func (m Model) Rows() []Row {
	return m.rows
}

// RenderComplete reports whether all row batches have been applied.
func (m Model) RenderComplete() bool {
	return m.rowsDone
}

// Cursor returns the highlight position within the rows.
func (m Model) Cursor() int {
	return m.cursor
}

// CurrentRow returns the highlighted row, if any.
func (m Model) CurrentRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// moveCursor steps the highlight. From the idle position (-1) any movement
// lands on the first row; otherwise the step is clamped to the row range.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = -1
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// clampCursor keeps the highlight inside the row range after a list-length
// change. -1 is the idle position; an empty list always idles.
func (m *Model) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = -1
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < -1 {
		m.cursor = -1
	}
}

func (m Model) pageSize() int {
	size := m.height - 6
	if size < 5 {
		size = 5
	}
	return size
}

func nextInCycle(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// folderKey joins a folder path for the expanded set.
func folderKey(segments []string) string {
	return strings.Join(segments, "/")
}
