package components

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/tui/styles"
)

// FormField identifies one focusable row of the onboarding form
type FormField int

const (
	FieldName FormField = iota
	FieldEmail
	FieldPhone
	FieldDate
	FieldRole
	FieldTerms
	FieldAssets

	fieldCount
)

// Roles are the selectable staff roles, cycled with left/right
var Roles = []string{"Admin", "Manager", "Cashier", "Accountant"}

// SignupForm renders the staff onboarding form: four text fields, a
// role selector, the terms checkbox, and the staged image list. Domain
// actions on the asset list (add, remove) are the caller's job; the
// form only tracks focus and raw input.
type SignupForm struct {
	inputs  [4]textinput.Model // name, email, phone, joining date
	roleIdx int                // -1 until the user picks one
	terms   bool
	focus   FormField

	drafts      []domain.AssetDraft
	assetCursor int

	fieldErrs map[string]string

	picking bool
	picker  filepicker.Model

	tr    domain.Translator
	width int
}

// NewSignupForm creates the onboarding form with the joining date
// defaulted to today.
func NewSignupForm(tr domain.Translator) SignupForm {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		ti.Width = 32
		ti.Prompt = ""
		ti.PlaceholderStyle = styles.DimStyle
		return ti
	}

	f := SignupForm{
		roleIdx: -1,
		tr:      tr,
	}
	f.inputs[0] = mk("Full name")
	f.inputs[1] = mk("email@example.com")
	f.inputs[2] = mk("Phone number")
	f.inputs[3] = mk("YYYY-MM-DD")
	f.inputs[3].SetValue(time.Now().Format("2006-01-02"))
	f.inputs[0].Focus()

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpeg", ".jpg", ".png", ".webp"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	f.picker = fp

	return f
}

// Form returns the scalar field values as the domain shape
func (f SignupForm) Form() domain.StaffForm {
	role := ""
	if f.roleIdx >= 0 {
		role = Roles[f.roleIdx]
	}
	return domain.StaffForm{
		Name:          strings.TrimSpace(f.inputs[0].Value()),
		Email:         strings.TrimSpace(f.inputs[1].Value()),
		PhoneNumber:   strings.TrimSpace(f.inputs[2].Value()),
		JoiningDate:   strings.TrimSpace(f.inputs[3].Value()),
		Role:          role,
		TermsAccepted: f.terms,
	}
}

// Reset clears every field back to its initial state
func (f *SignupForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.inputs[3].SetValue(time.Now().Format("2006-01-02"))
	f.roleIdx = -1
	f.terms = false
	f.fieldErrs = nil
	f.assetCursor = 0
	f.setFocus(FieldName)
}

// SetFieldErrors attaches inline validation messages by field name
func (f *SignupForm) SetFieldErrors(errs map[string]string) {
	f.fieldErrs = errs
}

// SetDrafts refreshes the staged asset list the form displays
func (f *SignupForm) SetDrafts(drafts []domain.AssetDraft) {
	f.drafts = drafts
	if f.assetCursor >= len(drafts) {
		f.assetCursor = len(drafts) - 1
	}
	if f.assetCursor < 0 {
		f.assetCursor = 0
	}
}

// SetWidth updates the rendered width
func (f *SignupForm) SetWidth(width int) {
	f.width = width
}

// Focus returns the row that currently has focus
func (f SignupForm) Focus() FormField {
	return f.focus
}

// AssetCursorRef returns the draft ref under the asset cursor
func (f SignupForm) AssetCursorRef() (string, bool) {
	if f.focus != FieldAssets || f.assetCursor >= len(f.drafts) {
		return "", false
	}
	return f.drafts[f.assetCursor].Ref, true
}

// Picking reports whether the file picker overlay is open
func (f SignupForm) Picking() bool {
	return f.picking
}

// StartPicker opens the file picker
func (f *SignupForm) StartPicker() tea.Cmd {
	f.picking = true
	return f.picker.Init()
}

func (f *SignupForm) setFocus(field FormField) {
	f.focus = field
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if int(field) < len(f.inputs) {
		f.inputs[field].Focus()
	}
}

// FocusNext moves focus down one row
func (f *SignupForm) FocusNext() {
	f.setFocus((f.focus + 1) % fieldCount)
}

// FocusPrev moves focus up one row
func (f *SignupForm) FocusPrev() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

// CycleRole steps the role selector by delta
func (f *SignupForm) CycleRole(delta int) {
	n := len(Roles)
	if f.roleIdx < 0 {
		if delta >= 0 {
			f.roleIdx = 0
		} else {
			f.roleIdx = n - 1
		}
		return
	}
	f.roleIdx = (f.roleIdx + delta%n + n) % n
}

// ToggleTerms flips the terms checkbox
func (f *SignupForm) ToggleTerms() {
	f.terms = !f.terms
}

// Update routes input. The returned path is non-empty when the user
// just picked a file to stage.
func (f SignupForm) Update(msg tea.Msg) (SignupForm, tea.Cmd, string) {
	if f.picking {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			f.picking = false
			return f, nil, ""
		}
		var cmd tea.Cmd
		f.picker, cmd = f.picker.Update(msg)
		if ok, path := f.picker.DidSelectFile(msg); ok {
			f.picking = false
			return f, cmd, path
		}
		return f, cmd, ""
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, f.updateInputs(msg), ""
	}

	switch keyMsg.String() {
	case "down", "enter":
		f.FocusNext()
		return f, nil, ""
	case "up", "shift+tab":
		f.FocusPrev()
		return f, nil, ""
	}

	switch f.focus {
	case FieldRole:
		switch keyMsg.String() {
		case "left":
			f.CycleRole(-1)
		case "right":
			f.CycleRole(1)
		}
		return f, nil, ""
	case FieldTerms:
		if keyMsg.String() == " " {
			f.ToggleTerms()
		}
		return f, nil, ""
	case FieldAssets:
		switch keyMsg.String() {
		case "left":
			if f.assetCursor > 0 {
				f.assetCursor--
			}
		case "right":
			if f.assetCursor < len(f.drafts)-1 {
				f.assetCursor++
			}
		}
		return f, nil, ""
	}

	return f, f.updateInputs(msg), ""
}

func (f *SignupForm) updateInputs(msg tea.Msg) tea.Cmd {
	if int(f.focus) >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form, or the file picker while it is open
func (f SignupForm) View() string {
	if f.picking {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Pick an image"),
			"",
			f.picker.View(),
			styles.HelpDescStyle.Render("esc to cancel"),
		)
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(f.tr.T("CreateAccountTitle")))
	b.WriteString("\n\n")

	labels := [4]string{"Name", "Email", "Phone", "Joining date"}
	errKeys := [4]string{"name", "email", "phoneNumber", "joiningDate"}
	for i, in := range f.inputs {
		b.WriteString(f.renderLabel(labels[i], FormField(i)))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
		f.writeFieldError(&b, errKeys[i])
	}

	// Role selector
	b.WriteString(f.renderLabel("Role", FieldRole))
	b.WriteString("\n")
	role := "(choose with ←/→)"
	if f.roleIdx >= 0 {
		role = "◀ " + Roles[f.roleIdx] + " ▶"
	}
	if f.focus == FieldRole {
		b.WriteString(styles.AccentStyle.Render(role))
	} else {
		b.WriteString(styles.SubtitleStyle.Render(role))
	}
	b.WriteString("\n")
	f.writeFieldError(&b, "role")

	// Terms checkbox
	check := "[ ]"
	if f.terms {
		check = "[x]"
	}
	terms := fmt.Sprintf("%s %s %s", check, f.tr.T("Iagree"), f.tr.T("privacyPolicy"))
	if f.focus == FieldTerms {
		b.WriteString(styles.AccentStyle.Render(terms))
	} else {
		b.WriteString(styles.SubtitleStyle.Render(terms))
	}
	b.WriteString("\n")
	f.writeFieldError(&b, "termsAccepted")

	// Staged images
	b.WriteString(f.renderLabel("Images", FieldAssets))
	b.WriteString("\n")
	if len(f.drafts) == 0 {
		b.WriteString(styles.DimStyle.Render("  none staged"))
		b.WriteString("\n")
	}
	for i, d := range f.drafts {
		line := fmt.Sprintf("  %s (%s)", d.Name, formatSize(d.SizeBytes))
		if f.focus == FieldAssets && i == f.assetCursor {
			line = styles.SelectedRowStyle.Render(line)
		} else {
			line = styles.NormalRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if f.focus == FieldAssets {
		b.WriteString(styles.HelpDescStyle.Render("  a add · x remove · ←/→ move"))
		b.WriteString("\n")
	}
	f.writeFieldError(&b, "file")

	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render("ctrl+s"))
	b.WriteString(styles.HelpDescStyle.Render(" " + f.tr.T("CreateAccount")))

	return b.String()
}

func (f SignupForm) renderLabel(label string, field FormField) string {
	if f.focus == field {
		return styles.FocusedLabelStyle.Render(label)
	}
	return styles.InputLabelStyle.Render(label)
}

func (f SignupForm) writeFieldError(b *strings.Builder, key string) {
	if msg, ok := f.fieldErrs[key]; ok {
		b.WriteString(styles.FieldErrorStyle.Render(msg))
		b.WriteString("\n")
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fMB", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fKB", float64(n)/1_000)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
