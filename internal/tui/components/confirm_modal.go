package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mfergus/tiller/internal/tui/styles"
)

// ConfirmModal asks the user to confirm deleting one record.
type ConfirmModal struct {
	visible    bool
	targetID   string
	targetName string
}

// NewConfirmModal creates a hidden confirm modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal for a record
func (m *ConfirmModal) Show(id, name string) {
	m.visible = true
	m.targetID = id
	m.targetName = name
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
	m.targetID = ""
	m.targetName = ""
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// TargetID returns the record pending deletion
func (m ConfirmModal) TargetID() string {
	return m.targetID
}

// View renders the confirm modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	title := styles.ModalTitleStyle.Render("Delete record?")
	name := styles.SubtitleStyle.Render(styles.Truncate(m.targetName, modalWidth))
	hint := styles.HelpKeyStyle.Render("y") +
		styles.HelpDescStyle.Render(" delete   ") +
		styles.HelpKeyStyle.Render("n") +
		styles.HelpDescStyle.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, name, "", hint)

	return styles.DangerModalStyle.
		Padding(1, 2).
		Width(modalWidth).
		Render(content)
}
