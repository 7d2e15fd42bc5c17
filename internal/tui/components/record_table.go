package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/search"
	"github.com/mfergus/tiller/internal/tui/styles"
)

// RecordTable renders the catalog list with per-row checkboxes and an
// incremental quick-filter. Which rows are checked lives in the
// session's selection set; the table only asks.
type RecordTable struct {
	rows    []domain.RecordSummary
	index   *search.FilterIndex
	visible []domain.RecordSummary

	cursor    int
	filtering bool
	filter    textinput.Model

	width  int
	height int

	isChecked func(id string) bool
	tr        domain.Translator
}

// NewRecordTable creates a catalog table. isChecked reports whether a
// row id is in the current selection.
func NewRecordTable(tr domain.Translator, isChecked func(id string) bool) RecordTable {
	ti := textinput.New()
	ti.Placeholder = "Filter by name or SKU..."
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle

	return RecordTable{
		filter:    ti,
		isChecked: isChecked,
		tr:        tr,
	}
}

// SetSize updates the table dimensions
func (t *RecordTable) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// SetRows replaces the table contents and reapplies the active filter
func (t *RecordTable) SetRows(rows []domain.RecordSummary) {
	t.rows = rows
	t.index = search.NewFilterIndex(rows)
	t.applyFilter()
}

func (t *RecordTable) applyFilter() {
	if t.index == nil {
		t.visible = nil
		return
	}
	results := t.index.Filter(t.filter.Value())
	t.visible = make([]domain.RecordSummary, len(results))
	for i, r := range results {
		t.visible[i] = r.Record
	}
	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// MoveUp moves the cursor up one row
func (t *RecordTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveDown moves the cursor down one row
func (t *RecordTable) MoveDown() {
	if t.cursor < len(t.visible)-1 {
		t.cursor++
	}
}

// CursorRow returns the row under the cursor
func (t *RecordTable) CursorRow() (domain.RecordSummary, bool) {
	if t.cursor < 0 || t.cursor >= len(t.visible) {
		return domain.RecordSummary{}, false
	}
	return t.visible[t.cursor], true
}

// VisibleIDs returns the ids currently shown, in display order
func (t *RecordTable) VisibleIDs() []string {
	ids := make([]string, len(t.visible))
	for i, r := range t.visible {
		ids[i] = r.ID
	}
	return ids
}

// AllIDs returns every loaded row id regardless of filter
func (t *RecordTable) AllIDs() []string {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID
	}
	return ids
}

// Filtering reports whether the filter input has focus
func (t *RecordTable) Filtering() bool {
	return t.filtering
}

// StartFilter focuses the filter input
func (t *RecordTable) StartFilter() {
	t.filtering = true
	t.filter.Focus()
}

// StopFilter blurs the filter input, keeping its value applied
func (t *RecordTable) StopFilter() {
	t.filtering = false
	t.filter.Blur()
}

// ClearFilter blurs and empties the filter input
func (t *RecordTable) ClearFilter() {
	t.filtering = false
	t.filter.SetValue("")
	t.filter.Blur()
	t.applyFilter()
}

// Update routes input to the filter field while it has focus
func (t RecordTable) Update(msg tea.Msg) (RecordTable, tea.Cmd) {
	if !t.filtering {
		return t, nil
	}
	var cmd tea.Cmd
	t.filter, cmd = t.filter.Update(msg)
	t.applyFilter()
	return t, cmd
}

// View renders the table
func (t RecordTable) View() string {
	var lines []string

	nameW := t.width * 4 / 10
	if nameW < 16 {
		nameW = 16
	}
	skuW := 10
	priceW := 9
	stockW := 6

	header := fmt.Sprintf(" %s %s %s %s %s %s",
		"[ ]",
		styles.Pad("NAME", nameW),
		styles.Pad("SKU", skuW),
		styles.Pad("PRICE", priceW),
		styles.Pad("STOCK", stockW),
		"STATUS",
	)
	lines = append(lines, styles.HeaderRowStyle.Render(header))

	maxRows := t.height - 3
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if t.cursor >= maxRows {
		start = t.cursor - maxRows + 1
	}

	for i := start; i < len(t.visible) && i < start+maxRows; i++ {
		r := t.visible[i]

		check := "[ ]"
		if t.isChecked != nil && t.isChecked(r.ID) {
			check = styles.CheckedRowStyle.Render("[x]")
		}

		badge := styles.SellingBadge.Render(t.tr.T("Selling"))
		if !r.IsAvailable || r.StockLevel <= 0 {
			badge = styles.SoldOutBadge.Render(t.tr.T("SoldOut"))
		}

		row := fmt.Sprintf(" %s %s %s %s %s %s",
			check,
			styles.Pad(styles.Truncate(r.DisplayName, nameW), nameW),
			styles.Pad(r.SKU, skuW),
			styles.Pad(domain.FormattedPrice(r.EffectiveSalePrice()), priceW),
			styles.Pad(fmt.Sprintf("%d", r.StockLevel), stockW),
			badge,
		)

		if i == t.cursor {
			row = styles.SelectedRowStyle.Render(row)
		} else {
			row = styles.NormalRowStyle.Render(row)
		}
		lines = append(lines, row)
	}

	if len(t.visible) == 0 {
		lines = append(lines, styles.DimStyle.Render("  No records."))
	}

	if t.filtering || t.filter.Value() != "" {
		lines = append(lines, t.filter.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
