package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfergus/tiller/internal/assets"
	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/notify"
	"github.com/mfergus/tiller/internal/session"
	"github.com/mfergus/tiller/internal/submit"
)

type stubClient struct{}

func (stubClient) ListRecords(ctx context.Context, filter string) ([]domain.RecordSummary, error) {
	return nil, nil
}

func (stubClient) GetRecord(ctx context.Context, id string) (*domain.RecordDetail, error) {
	return &domain.RecordDetail{ID: id}, nil
}

func (stubClient) CreateStaff(ctx context.Context, form domain.StaffForm, assets []domain.AssetDraft) error {
	return nil
}

func (stubClient) DeleteRecord(ctx context.Context, id string) error { return nil }

type memStore struct{ invalidated bool }

func (s *memStore) GetSummaries(filter string) ([]domain.RecordSummary, bool) { return nil, false }
func (s *memStore) SaveSummaries(filter string, records []domain.RecordSummary) error {
	return nil
}
func (s *memStore) Invalidate(filter string) {}
func (s *memStore) InvalidateAll()           { s.invalidated = true }
func (s *memStore) Close() error             { return nil }

type fakePreviews struct{}

func (fakePreviews) Create(ref, name string, data []byte) (string, error) {
	return "preview://" + ref, nil
}
func (fakePreviews) Release(path string) error { return nil }
func (fakePreviews) Close() error              { return nil }

type keyTranslator struct{}

func (keyTranslator) T(key string) string { return key }

func newTestModel() Model {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := notify.NewHub(logger)
	sess := session.New(logger)
	queue := assets.NewQueue(fakePreviews{}, hub, keyTranslator{}, logger, nil)
	ctrl := submit.NewController(stubClient{}, hub, keyTranslator{}, logger)

	m := NewModel(stubClient{}, &memStore{}, sess, queue, ctrl, hub, keyTranslator{}, logger)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(RecordsLoadedMsg{Records: []domain.RecordSummary{
		{ID: "r1", DisplayName: "Ceramic Mug", SKU: "MUG-1"},
		{ID: "r2", DisplayName: "Tea Pot", SKU: "POT-1"},
	}})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDeleteRequestOverOpenDrawerSwapsOverlays(t *testing.T) {
	m := newTestModel()

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.drawer.IsVisible() {
		t.Fatal("drawer should open on enter")
	}
	if got := m.sess.Overlay.Current().Kind; got != session.OverlayDetailDrawer {
		t.Fatalf("overlay = %v, want detail drawer", got)
	}

	// The confirm overlay replaces the drawer; both component flags must
	// track the coordinator.
	m = press(m, runeKey("x"))
	if m.drawer.IsVisible() {
		t.Error("drawer must close when the confirm overlay takes over")
	}
	if !m.confirm.IsVisible() {
		t.Error("confirm should be visible after the delete request")
	}
	if got := m.sess.Overlay.Current().Kind; got != session.OverlayConfirmDelete {
		t.Errorf("overlay = %v, want confirm delete", got)
	}

	m = press(m, runeKey("n"))
	if got := m.sess.Overlay.Current().Kind; got != session.OverlayNone {
		t.Errorf("overlay = %v, want none after cancel", got)
	}
	if m.drawer.IsVisible() || m.confirm.IsVisible() {
		t.Error("no component overlay may stay visible after cancel")
	}
}

func TestConfirmedDeleteLeavesNoOverlay(t *testing.T) {
	m := newTestModel()

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, runeKey("x"))
	m = press(m, runeKey("y"))

	if got := m.sess.Overlay.Current().Kind; got != session.OverlayNone {
		t.Errorf("overlay = %v, want none after confirm", got)
	}
	if m.drawer.IsVisible() || m.confirm.IsVisible() {
		t.Error("no component overlay may stay visible after confirm")
	}
}

func TestSubmitSettledResetClearsFormAndQueue(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "Ada" {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.queue.Enqueue([]assets.Incoming{{Name: "badge.png", Size: 10}})

	if got := m.form.Form().Name; got != "Ada" {
		t.Fatalf("form name = %q, want Ada", got)
	}

	next, _ := m.Update(SubmitSettledMsg{Result: submit.Result{Reset: true}})
	m = next.(Model)

	if got := m.queue.Len(); got != 0 {
		t.Errorf("queue length = %d, want 0 after successful submission", got)
	}
	if got := m.form.Form().Name; got != "" {
		t.Errorf("form name = %q, want cleared", got)
	}
}

func TestSubmitSettledFieldErrorsKeepState(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "Ada" {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.queue.Enqueue([]assets.Incoming{{Name: "badge.png", Size: 10}})

	next, _ := m.Update(SubmitSettledMsg{
		FieldErrors: submit.FieldErrors{"email": "Email is required."},
	})
	m = next.(Model)

	if got := m.queue.Len(); got != 1 {
		t.Errorf("queue length = %d, want drafts untouched on validation failure", got)
	}
	if got := m.form.Form().Name; got != "Ada" {
		t.Errorf("form name = %q, want kept", got)
	}
}
