package submit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mfergus/tiller/internal/catalog"
	"github.com/mfergus/tiller/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClient struct {
	createCalls int
	createErr   error
	lastForm    domain.StaffForm
	lastAssets  []domain.AssetDraft
	block       chan struct{} // when set, CreateStaff waits until closed
}

func (f *fakeClient) ListRecords(ctx context.Context, filter string) ([]domain.RecordSummary, error) {
	return nil, nil
}

func (f *fakeClient) GetRecord(ctx context.Context, id string) (*domain.RecordDetail, error) {
	return nil, domain.ErrRecordNotFound
}

func (f *fakeClient) DeleteRecord(ctx context.Context, id string) error { return nil }

func (f *fakeClient) CreateStaff(ctx context.Context, form domain.StaffForm, assets []domain.AssetDraft) error {
	f.createCalls++
	f.lastForm = form
	f.lastAssets = assets
	if f.block != nil {
		<-f.block
	}
	return f.createErr
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) NotifySuccess(text string) { n.successes = append(n.successes, text) }
func (n *recordingNotifier) NotifyError(text string)   { n.failures = append(n.failures, text) }

// keyTranslator echoes keys so assertions can match on them.
type keyTranslator struct{}

func (keyTranslator) T(key string) string { return key }

func newTestController(client *fakeClient, n *recordingNotifier) *Controller {
	return NewController(client, n, keyTranslator{}, testLogger())
}

func TestSubmitInvalidFormSkipsNetwork(t *testing.T) {
	client := &fakeClient{}
	n := &recordingNotifier{}
	c := newTestController(client, n)

	form := validForm()
	form.Email = ""

	res, errs, err := c.Submit(context.Background(), form, []domain.AssetDraft{{Ref: "d1"}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Reset {
		t.Error("Reset = true for invalid form")
	}
	if len(errs) != 1 || errs["email"] != "Email is required." {
		t.Errorf("errs = %v", errs)
	}
	if client.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", client.createCalls)
	}
	if len(n.failures)+len(n.successes) != 0 {
		t.Errorf("toasts emitted for validation failure: %v %v", n.successes, n.failures)
	}
}

func TestSubmitSuccess(t *testing.T) {
	client := &fakeClient{}
	n := &recordingNotifier{}
	c := newTestController(client, n)

	drafts := []domain.AssetDraft{{Ref: "d1", Name: "a.png"}, {Ref: "d2", Name: "b.jpg"}}
	res, errs, err := c.Submit(context.Background(), validForm(), drafts)
	if err != nil || errs != nil {
		t.Fatalf("Submit: res=%+v errs=%v err=%v", res, errs, err)
	}
	if !res.Reset {
		t.Error("Reset = false, want true")
	}
	if client.createCalls != 1 || len(client.lastAssets) != 2 {
		t.Errorf("createCalls = %d, assets = %d", client.createCalls, len(client.lastAssets))
	}
	if len(n.successes) != 1 || n.successes[0] != "StaffCreated" {
		t.Errorf("successes = %v", n.successes)
	}
	if c.Loading() {
		t.Error("Loading() = true after settle")
	}
}

func TestSubmitServerRejectionKeepsState(t *testing.T) {
	client := &fakeClient{createErr: &catalog.SubmitError{Status: 409, Message: "duplicate email"}}
	n := &recordingNotifier{}
	c := newTestController(client, n)

	res, errs, err := c.Submit(context.Background(), validForm(), []domain.AssetDraft{{Ref: "d1"}})
	if err == nil {
		t.Fatal("err = nil, want submit error")
	}
	if res.Reset || errs != nil {
		t.Errorf("res=%+v errs=%v", res, errs)
	}
	if len(n.failures) != 1 || !strings.Contains(n.failures[0], "duplicate email") {
		t.Errorf("failures = %v", n.failures)
	}
	if c.Loading() {
		t.Error("Loading() = true after failure")
	}
}

func TestSubmitGenericFailureToast(t *testing.T) {
	client := &fakeClient{createErr: domain.ErrServerOffline}
	n := &recordingNotifier{}
	c := newTestController(client, n)

	_, _, err := c.Submit(context.Background(), validForm(), []domain.AssetDraft{{Ref: "d1"}})
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("err = %v", err)
	}
	if len(n.failures) != 1 || n.failures[0] != "SubmitFailed" {
		t.Errorf("failures = %v", n.failures)
	}
}

func TestSubmitRejectsWhileInFlight(t *testing.T) {
	client := &fakeClient{block: make(chan struct{})}
	n := &recordingNotifier{}
	c := newTestController(client, n)

	drafts := []domain.AssetDraft{{Ref: "d1"}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Submit(context.Background(), validForm(), drafts)
	}()

	// Wait for the first submit to take the flag.
	for !c.Loading() {
	}

	_, _, err := c.Submit(context.Background(), validForm(), drafts)
	if !errors.Is(err, domain.ErrSubmitInFlight) {
		t.Errorf("err = %v, want ErrSubmitInFlight", err)
	}

	close(client.block)
	<-done
	if client.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", client.createCalls)
	}
}
