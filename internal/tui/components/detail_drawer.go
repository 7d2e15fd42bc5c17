package components

import (
	"fmt"
	"strings"

	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/session"
	"github.com/mfergus/tiller/internal/tui/styles"
)

// DetailDrawer renders the full record for the row the user opened. It
// draws whatever the detail cache holds for the target: a stale value
// with a refresh marker while a fetch is in flight, a spinner line when
// there is nothing yet, an error line when the last fetch failed.
type DetailDrawer struct {
	visible bool
	id      string
	entry   session.Entry

	width  int
	height int
}

// NewDetailDrawer creates a hidden drawer
func NewDetailDrawer() DetailDrawer {
	return DetailDrawer{}
}

// Show opens the drawer for a record id
func (d *DetailDrawer) Show(id string) {
	d.visible = true
	d.id = id
}

// Hide closes the drawer
func (d *DetailDrawer) Hide() {
	d.visible = false
	d.id = ""
	d.entry = session.Entry{}
}

// IsVisible returns whether the drawer is shown
func (d DetailDrawer) IsVisible() bool {
	return d.visible
}

// TargetID returns the record the drawer is open for
func (d DetailDrawer) TargetID() string {
	return d.id
}

// SetEntry refreshes the cache entry the drawer renders from
func (d *DetailDrawer) SetEntry(entry session.Entry) {
	d.entry = entry
}

// SetSize updates the drawer dimensions
func (d *DetailDrawer) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the drawer
func (d DetailDrawer) View() string {
	if !d.visible {
		return ""
	}

	var b strings.Builder

	detail := d.entry.Value
	switch {
	case detail == nil && d.entry.Status == session.StatusFailed:
		b.WriteString(styles.ErrorStyle.Render("Could not load record details."))
	case detail == nil:
		b.WriteString(styles.DimStyle.Render("Loading..."))
	default:
		title := styles.TitleStyle.Render(detail.DisplayName)
		if d.entry.Status == session.StatusPending {
			title += styles.DimStyle.Render("  (refreshing)")
		}
		if d.entry.Status == session.StatusFailed {
			title += styles.ErrorStyle.Render("  (refresh failed)")
		}
		b.WriteString(title)
		b.WriteString("\n\n")

		writeField(&b, "SKU", detail.SKU)
		writeField(&b, "Barcode", detail.Barcode)
		writeField(&b, "Category", detail.Category)
		writeField(&b, "Price", domain.FormattedPrice(detail.UnitPrice))
		if detail.SalePrice > 0 {
			writeField(&b, "Sale price", domain.FormattedPrice(detail.SalePrice))
		}
		writeField(&b, "Stock", fmt.Sprintf("%d", detail.StockLevel))
		if len(detail.Tags) > 0 {
			writeField(&b, "Tags", strings.Join(detail.Tags, ", "))
		}
		if detail.Description != "" {
			b.WriteString("\n")
			b.WriteString(styles.SubtitleStyle.Render(detail.Description))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpDescStyle.Render("esc to close"))

	w := d.width
	if w <= 0 {
		w = 48
	}
	return styles.DrawerStyle.Width(w).Render(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(styles.FieldLabelStyle.Render(label))
	b.WriteString(styles.FieldValueStyle.Render(value))
	b.WriteString("\n")
}
