package browser

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/easeltools/easel/pkg/catalog"
	"github.com/easeltools/easel/pkg/models"
	"github.com/easeltools/easel/tui/theme"
)

// renderBatchSize is how many rows are materialized per batch. Large
// catalogs appear incrementally instead of blocking the event loop.
const renderBatchSize = 50

// RowKind distinguishes folder rows from item rows in tree view.
type RowKind int

const (
	RowItem RowKind = iota
	RowFolder
)

// Row is one display row of the browser.
type Row struct {
	Kind   RowKind
	Depth  int
	Folder string // joined folder path, set for folder rows
	Item   models.Item
}

// Id returns a stable identity for cursor restoration across reloads.
func (r Row) Id() string {
	if r.Kind == RowFolder {
		return "folder:" + r.Folder
	}
	return r.Item.Id
}

// startRender begins a new incremental render of the current visible list.
// Any batches still in flight from a previous render are invalidated by the
// generation bump.
func (m *Model) startRender() tea.Cmd {
	m.renderGen++
	m.pendingRows = m.buildRows()
	m.rows = nil
	m.rowsDone = false
	return m.renderBatchCmd(m.renderGen, 0)
}

// finishRenderNow materializes all rows synchronously. Used at construction
// time when there is no program loop to deliver batch messages yet.
func (m *Model) finishRenderNow() {
	m.renderGen++
	m.pendingRows = m.buildRows()
	m.rows = m.pendingRows
	m.rowsDone = true
	m.clampCursor()
}

func (m Model) renderBatchCmd(generation, offset int) tea.Cmd {
	pending := m.pendingRows
	return func() tea.Msg {
		end := offset + renderBatchSize
		if end >= len(pending) {
			end = len(pending)
		}
		return rowsBatchMsg{
			generation: generation,
			rows:       pending[offset:end],
			done:       end == len(pending),
		}
	}
}

// buildRows materializes the full row list for the current view mode.
func (m *Model) buildRows() []Row {
	if m.viewMode == ViewFlat {
		rows := make([]Row, 0, len(m.visible))
		for _, item := range m.visible {
			rows = append(rows, Row{Kind: RowItem, Item: item})
		}
		return rows
	}
	return m.buildTreeRows()
}

func (m *Model) buildTreeRows() []Row {
	root := catalog.BuildTree(m.visible)
	var rows []Row
	m.appendFolderRows(root, nil, 0, &rows)
	return rows
}

func (m *Model) appendFolderRows(node *catalog.FolderNode, path []string, depth int, rows *[]Row) {
	for _, item := range node.Items {
		*rows = append(*rows, Row{Kind: RowItem, Depth: depth, Item: item})
	}
	for _, name := range node.ChildKeys() {
		child := node.Children[name]
		childPath := append(append([]string{}, path...), name)
		keyStr := folderKey(childPath)
		*rows = append(*rows, Row{Kind: RowFolder, Depth: depth, Folder: keyStr})
		if m.isExpanded(keyStr) {
			m.appendFolderRows(child, childPath, depth+1, rows)
		}
	}
}

func (m Model) isExpanded(folder string) bool {
	if v, ok := m.expanded[folder]; ok {
		return v
	}
	return m.defaultExpanded
}

// toggleFoldAtCursor flips the expansion of the highlighted folder row.
func (m *Model) toggleFoldAtCursor() tea.Cmd {
	row, ok := m.CurrentRow()
	if !ok || row.Kind != RowFolder {
		return nil
	}
	m.expanded[row.Folder] = !m.isExpanded(row.Folder)
	return m.startRender()
}

// setAllFolds expands or collapses every folder in the visible tree.
func (m *Model) setAllFolds(open bool) tea.Cmd {
	if m.viewMode != ViewTree {
		return nil
	}
	m.expanded = make(map[string]bool)
	m.defaultExpanded = open
	m.cursor = 0
	return m.startRender()
}

// View renders the browser.
func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	visibleHeight := m.pageSize()

	start := 0
	end := len(m.rows)
	if end > visibleHeight {
		if m.cursor < visibleHeight/2 {
			start = 0
		} else if m.cursor >= len(m.rows)-visibleHeight/2 {
			start = len(m.rows) - visibleHeight
		} else {
			start = m.cursor - visibleHeight/2
		}

		end = start + visibleHeight
		if end > len(m.rows) {
			end = len(m.rows)
		}
		if start < 0 {
			start = 0
		}
	}

	for i := start; i < end && i < len(m.rows); i++ {
		b.WriteString(m.rowView(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		if len(m.items) == 0 {
			b.WriteString(m.theme.Muted.Render("No items found"))
		} else {
			b.WriteString(m.theme.Muted.Render("No matching items"))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusView(start, end))
	return b.String()
}

func (m Model) headerView() string {
	var header strings.Builder
	header.WriteString(m.filterInput.View())

	var badges []string
	if m.filters.Bucket != "" {
		badges = append(badges, m.theme.BucketLabel.Render(m.filters.Bucket))
	}
	if m.filters.Sort != "" {
		badges = append(badges, m.theme.Muted.Render("sort:"+m.filters.Sort))
	}
	if m.viewMode == ViewTree {
		badges = append(badges, m.theme.Muted.Render("tree"))
	}
	if len(badges) > 0 {
		header.WriteString("  ")
		header.WriteString(strings.Join(badges, " "))
	}
	return header.String()
}

func (m Model) rowView(row Row, isHighlighted bool) string {
	var line strings.Builder

	if isHighlighted {
		line.WriteString(m.theme.Highlight.Render("▶ "))
	} else {
		line.WriteString("  ")
	}

	line.WriteString(strings.Repeat("  ", row.Depth))

	if row.Kind == RowFolder {
		icon := theme.IconFolder
		if m.isExpanded(row.Folder) {
			icon = theme.IconFolderOpen
		}
		name := row.Folder
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		rendered := m.theme.Folder.Render(icon + " " + name)
		if isHighlighted {
			rendered = m.theme.Selected.Render(icon + " " + name)
		}
		line.WriteString(rendered)
		return line.String()
	}

	if m.multiSelect {
		if m.IsSelected(row.Item.Id) {
			line.WriteString(m.theme.Checked.Render(theme.IconSelect) + " ")
		} else {
			line.WriteString(m.theme.Muted.Render(theme.IconUnselected) + " ")
		}
	}

	if m.RenderGutter != nil {
		line.WriteString(m.RenderGutter(row.Item, isHighlighted))
	}

	displayName := row.Item.DisplayName()
	filter := strings.ToLower(m.filterInput.Value())
	if filter != "" {
		displayName = m.highlightMatch(displayName, filter)
	}

	if isHighlighted {
		line.WriteString(m.theme.Selected.Render(displayName))
	} else {
		line.WriteString(m.theme.Item.Render(displayName))
	}

	if hasUpdate, ok := row.Item.Info["has_update"].(bool); ok && hasUpdate {
		line.WriteString(" " + m.theme.UpdateBadge.Render(theme.IconUpdate))
	}

	return line.String()
}

func (m Model) statusView(start, end int) string {
	var parts []string

	if !m.rowsDone {
		parts = append(parts, m.theme.Muted.Render(fmt.Sprintf("rendering %d/%d...", len(m.rows), len(m.pendingRows))))
	} else if start > 0 || end < len(m.rows) {
		parts = append(parts, m.theme.Muted.Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(m.rows))))
	}

	if m.multiSelect && len(m.selected) > 0 {
		parts = append(parts, m.theme.Checked.Render(fmt.Sprintf("%d selected", len(m.selected))))
	}

	parts = append(parts, m.theme.Muted.Render("Press ? for help"))
	return strings.Join(parts, " • ")
}

// highlightMatch highlights the matching portion of a string.
func (m Model) highlightMatch(s, filter string) string {
	if filter == "" {
		return s
	}

	lowerS := strings.ToLower(s)
	idx := strings.Index(lowerS, filter)
	if idx == -1 {
		return s
	}

	before := s[:idx]
	match := s[idx : idx+len(filter)]
	after := s[idx+len(filter):]

	return before + m.theme.Success.Render(match) + after
}
