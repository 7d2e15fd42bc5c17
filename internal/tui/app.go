package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfergus/tiller/internal/assets"
	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/notify"
	"github.com/mfergus/tiller/internal/session"
	"github.com/mfergus/tiller/internal/submit"
	"github.com/mfergus/tiller/internal/tui/components"
	"github.com/mfergus/tiller/internal/tui/styles"
)

// Screen identifies the active top-level screen
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenOnboarding
)

// Model is the main Bubble Tea model for the application
type Model struct {
	screen Screen
	ready  bool

	// Core state entities
	client     domain.CatalogClient
	store      domain.SnapshotStore
	sess       *session.Session
	queue      *assets.Queue
	submitCtrl *submit.Controller
	hub        *notify.Hub
	tr         domain.Translator
	logger     *slog.Logger

	// UI components
	table   components.RecordTable
	drawer  components.DetailDrawer
	confirm components.ConfirmModal
	form    components.SignupForm

	// Dimensions
	width  int
	height int

	// UI state
	statusMsg   string
	statusIsErr bool
	loading     bool
}

// NewModel creates the application model
func NewModel(
	client domain.CatalogClient,
	store domain.SnapshotStore,
	sess *session.Session,
	queue *assets.Queue,
	submitCtrl *submit.Controller,
	hub *notify.Hub,
	tr domain.Translator,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		screen:     ScreenCatalog,
		client:     client,
		store:      store,
		sess:       sess,
		queue:      queue,
		submitCtrl: submitCtrl,
		hub:        hub,
		tr:         tr,
		logger:     logger,
		drawer:     components.NewDetailDrawer(),
		confirm:    components.NewConfirmModal(),
		form:       components.NewSignupForm(tr),
	}
	m.table = components.NewRecordTable(tr, sess.Selection.Has)
	return m
}

// Init starts the snapshot read, the network refresh, and the toast pump
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadSnapshotCmd(m.store, ""),
		LoadRecordsCmd(m.client, m.store, ""),
		WaitToastCmd(m.hub),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.table.SetSize(msg.Width, msg.Height-2)
		m.drawer.SetSize(msg.Width/2, msg.Height-4)
		m.form.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RecordsLoadedMsg:
		m.loading = false
		m.table.SetRows(msg.Records)
		// A fresh list invalidates per-record session state: checked
		// rows, the open overlay, and detail entries for departed ids.
		m.sess.ResetForList(m.table.AllIDs())
		m.drawer.Hide()
		m.confirm.Hide()
		return m, nil

	case DetailFetchedMsg:
		m.sess.Details.OnFetchSettled(msg.ID, msg.Token, msg.Detail, msg.Err)
		if m.drawer.IsVisible() && m.drawer.TargetID() == msg.ID {
			if entry, ok := m.sess.Details.Peek(msg.ID); ok {
				m.drawer.SetEntry(entry)
			}
		}
		return m, nil

	case RecordDeletedMsg:
		if msg.Err != nil {
			m.logger.Error("delete failed", "id", msg.ID, "error", msg.Err)
			m.hub.NotifyError(m.tr.T("DeleteFailed"))
			return m, nil
		}
		m.hub.NotifySuccess(m.tr.T("RecordDeleted"))
		m.store.InvalidateAll()
		m.sess.Details.Invalidate(msg.ID)
		m.loading = true
		return m, LoadRecordsCmd(m.client, m.store, "")

	case SubmitSettledMsg:
		m.loading = false
		if msg.FieldErrors != nil {
			m.form.SetFieldErrors(msg.FieldErrors)
			return m, nil
		}
		if msg.Result.Reset {
			m.queue.Clear()
			m.form.Reset()
			m.form.SetDrafts(nil)
		}
		return m, nil

	case AssetPickedMsg:
		if msg.Err != nil {
			m.statusMsg = "Could not read file: " + msg.Err.Error()
			m.statusIsErr = true
			return m, ClearStatusCmd(3 * time.Second)
		}
		m.queue.Enqueue([]assets.Incoming{{Name: msg.Name, Size: msg.Size, Data: msg.Data}})
		m.form.SetDrafts(m.queue.Snapshot())
		return m, nil

	case ToastMsg:
		m.statusMsg = msg.Toast.Text
		m.statusIsErr = msg.Toast.Level == notify.LevelError
		return m, tea.Batch(
			ClearStatusCmd(3*time.Second),
			WaitToastCmd(m.hub),
		)

	case StatusMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case ErrMsg:
		m.loading = false
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.statusMsg = msg.Error()
		m.statusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)
	}

	// Forward everything else (blinks, picker IO) to the active
	// screen's components.
	return m.updateComponents(msg)
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.screen == ScreenOnboarding {
		var picked string
		m.form, cmd, picked = m.form.Update(msg)
		cmds = append(cmds, cmd)
		if picked != "" {
			cmds = append(cmds, ReadAssetCmd(picked, filepath.Base(picked)))
		}
	} else {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Confirm modal swallows all input while visible
	if m.confirm.IsVisible() {
		switch {
		case key.Matches(msg, Keys.Confirm):
			id := m.confirm.TargetID()
			m.confirm.Hide()
			m.sess.Overlay.Dismiss()
			return m, DeleteRecordCmd(m.client, id)
		case key.Matches(msg, Keys.Deny):
			m.confirm.Hide()
			m.sess.Overlay.Dismiss()
			return m, nil
		}
		return m, nil
	}

	// Detail drawer: esc closes, everything else falls through
	if m.drawer.IsVisible() && key.Matches(msg, Keys.Escape) {
		m.drawer.Hide()
		m.sess.Overlay.Dismiss()
		return m, nil
	}

	switch m.screen {
	case ScreenCatalog:
		return m.handleCatalogKey(msg)
	case ScreenOnboarding:
		return m.handleOnboardingKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter input has focus it owns most keys
	if m.table.Filtering() {
		switch msg.String() {
		case "esc":
			m.table.ClearFilter()
			return m, nil
		case "enter":
			m.table.StopFilter()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Tab):
		m.screen = ScreenOnboarding
		m.form.SetDrafts(m.queue.Snapshot())
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.table.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.table.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.table.StartFilter()
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		m.loading = true
		return m, LoadRecordsCmd(m.client, m.store, "")

	case key.Matches(msg, Keys.ToggleSelect):
		if row, ok := m.table.CursorRow(); ok {
			m.sess.Selection.Toggle(row.ID, !m.sess.Selection.Has(row.ID))
		}
		return m, nil

	case key.Matches(msg, Keys.ClearSelection):
		m.sess.Selection.Clear()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.openDetail()

	case key.Matches(msg, Keys.Delete):
		return m.requestDelete()
	}

	return m, nil
}

// openDetail runs the drawer gate and, when it opens, the single-flight
// detail request.
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	row, ok := m.table.CursorRow()
	if !ok {
		return m, nil
	}
	if !m.sess.Overlay.RequestDetail(row.ID) {
		m.statusMsg = "Close the selection first (2+ rows selected)."
		m.statusIsErr = true
		return m, ClearStatusCmd(3 * time.Second)
	}

	m.drawer.Show(row.ID)
	_, token, start := m.sess.Details.Request(row.ID)
	if entry, ok := m.sess.Details.Peek(row.ID); ok {
		m.drawer.SetEntry(entry)
	}
	if start {
		return m, FetchDetailCmd(m.client, row.ID, token)
	}
	return m, nil
}

// requestDelete runs the confirm-modal gate for the row under the
// cursor.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	row, ok := m.table.CursorRow()
	if !ok {
		return m, nil
	}
	if !m.sess.Overlay.RequestDelete(row.ID) {
		m.statusMsg = "Clear the selection before deleting a single record."
		m.statusIsErr = true
		return m, ClearStatusCmd(3 * time.Second)
	}
	// The confirm overlay replaces whatever was open; the drawer's own
	// flag has to follow the coordinator.
	m.drawer.Hide()
	m.confirm.Show(row.ID, row.DisplayName)
	return m, nil
}

func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.Picking() {
		return m.updateComponents(msg)
	}

	switch {
	case key.Matches(msg, Keys.Tab):
		m.screen = ScreenCatalog
		return m, nil

	case key.Matches(msg, Keys.Submit):
		if m.submitCtrl.Loading() {
			return m, nil
		}
		m.form.SetFieldErrors(nil)
		m.loading = true
		return m, SubmitCmd(m.submitCtrl, m.form.Form(), m.queue.Snapshot())
	}

	// Asset-row shortcuts only apply while that row has focus; in the
	// text fields these keys are just characters.
	if m.form.Focus() == components.FieldAssets {
		switch msg.String() {
		case "a":
			return m, m.form.StartPicker()
		case "x":
			if ref, ok := m.form.AssetCursorRef(); ok {
				m.queue.Remove(ref)
				m.form.SetDrafts(m.queue.Snapshot())
			}
			return m, nil
		}
	}

	return m.updateComponents(msg)
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch m.screen {
	case ScreenCatalog:
		content = m.table.View()
	case ScreenOnboarding:
		content = m.form.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		content,
		m.renderFooter(),
	)

	if m.drawer.IsVisible() {
		view = lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.drawer.View())
	}

	if m.confirm.IsVisible() {
		view = lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.confirm.View())
	}

	return view
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.statusMsg != "" && m.statusIsErr:
		left = styles.ErrorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		left = styles.SuccessStyle.Render(m.statusMsg)
	case m.loading:
		left = styles.DimStyle.Render("Loading...")
	case m.sess.Selection.Len() > 0:
		left = styles.AccentStyle.Render(fmt.Sprintf("%d selected", m.sess.Selection.Len()))
	}

	var right string
	if m.screen == ScreenCatalog {
		right = styles.HelpDescStyle.Render("space select · enter details · x delete · / filter · tab form · q quit")
	} else {
		right = styles.HelpDescStyle.Render("↑/↓ fields · ctrl+s submit · tab catalog")
	}

	if left == "" {
		return right
	}
	return left + "  " + right
}

