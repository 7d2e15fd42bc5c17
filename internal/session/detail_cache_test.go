package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mfergus/tiller/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func detail(id, name string) *domain.RecordDetail {
	return &domain.RecordDetail{ID: id, DisplayName: name}
}

func TestDetailCacheSingleFlight(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	_, tok1, start1 := c.Request("A")
	if !start1 {
		t.Fatal("first Request should start a fetch")
	}

	// Second request before the first resolves shares the same token
	// and does not start another fetch.
	_, tok2, start2 := c.Request("A")
	if start2 {
		t.Error("second Request while Pending should not start a fetch")
	}
	if tok1 != tok2 {
		t.Errorf("tokens differ: %q vs %q", tok1, tok2)
	}

	c.OnFetchSettled("A", tok1, detail("A", "v1"), nil)

	e, ok := c.Peek("A")
	if !ok || e.Status != StatusReady {
		t.Fatalf("entry after settle = %+v ok=%v, want Ready", e, ok)
	}
	if e.Value.DisplayName != "v1" {
		t.Errorf("value = %q, want v1", e.Value.DisplayName)
	}
}

func TestDetailCacheStaleWhileRevalidate(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	_, tok, _ := c.Request("A")
	c.OnFetchSettled("A", tok, detail("A", "v1"), nil)

	// Revalidation keeps v1 visible until v2 settles.
	stale, tok2, start := c.Request("A")
	if !start {
		t.Fatal("Request on Ready entry should revalidate")
	}
	if stale == nil || stale.DisplayName != "v1" {
		t.Fatalf("stale value = %v, want v1", stale)
	}
	if e, ok := c.Peek("A"); !ok || e.Status != StatusPending || e.Value.DisplayName != "v1" {
		t.Fatalf("mid-revalidation entry = %+v ok=%v, want Pending with v1", e, ok)
	}

	c.OnFetchSettled("A", tok2, detail("A", "v2"), nil)
	if e, _ := c.Peek("A"); e.Value.DisplayName != "v2" {
		t.Errorf("value after revalidation = %q, want v2", e.Value.DisplayName)
	}
}

func TestDetailCacheSupersededTokenIgnored(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	_, tok1, _ := c.Request("A")
	c.OnFetchSettled("A", tok1, detail("A", "v1"), nil)
	_, tok2, _ := c.Request("A")

	// A settlement from the superseded first fetch arrives late.
	c.OnFetchSettled("A", tok1, detail("A", "late"), nil)
	if e, _ := c.Peek("A"); e.Status != StatusPending || e.Value.DisplayName != "v1" {
		t.Fatalf("entry after stale settle = %+v, want Pending with v1", e)
	}

	c.OnFetchSettled("A", tok2, detail("A", "v2"), nil)
	if e, _ := c.Peek("A"); e.Value.DisplayName != "v2" {
		t.Errorf("value = %q, want v2", e.Value.DisplayName)
	}
}

func TestDetailCacheFailureKeepsPriorValue(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	_, tok, _ := c.Request("A")
	c.OnFetchSettled("A", tok, detail("A", "v1"), nil)

	_, tok2, _ := c.Request("A")
	c.OnFetchSettled("A", tok2, nil, errors.New("boom"))

	e, ok := c.Peek("A")
	if !ok || e.Status != StatusFailed {
		t.Fatalf("entry = %+v ok=%v, want Failed", e, ok)
	}
	if e.Value == nil || e.Value.DisplayName != "v1" {
		t.Errorf("value after failure = %v, want v1 retained", e.Value)
	}

	// A Failed entry retries on the next Request.
	_, _, start := c.Request("A")
	if !start {
		t.Error("Request on Failed entry should start a fetch")
	}
}

func TestDetailCachePeekNeverFetches(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	if _, ok := c.Peek("missing"); ok {
		t.Error("Peek on missing id reported an entry")
	}
	if _, ok := c.Peek("missing"); ok {
		t.Error("Peek must not create entries")
	}
}

func TestDetailCacheRetainEvictsDepartedIDs(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	for _, id := range []string{"A", "B", "C"} {
		_, tok, _ := c.Request(id)
		c.OnFetchSettled(id, tok, detail(id, id), nil)
	}

	c.Retain([]string{"A", "C"})

	if _, ok := c.Peek("B"); ok {
		t.Error("B should have been evicted")
	}
	for _, id := range []string{"A", "C"} {
		if _, ok := c.Peek(id); !ok {
			t.Errorf("%s should have been retained", id)
		}
	}
}

func TestDetailCacheInvalidateAndClear(t *testing.T) {
	c := NewDetailCache(testLogger(), nil)

	_, tok, _ := c.Request("A")
	c.OnFetchSettled("A", tok, detail("A", "v1"), nil)

	c.Invalidate("A")
	if _, ok := c.Peek("A"); ok {
		t.Error("entry should be gone after Invalidate")
	}
	if _, _, start := c.Request("A"); !start {
		t.Error("Request after Invalidate should re-fetch")
	}

	c.Clear()
	if _, ok := c.Peek("A"); ok {
		t.Error("entry should be gone after Clear")
	}
}

func TestSessionResetForList(t *testing.T) {
	s := New(testLogger())

	s.Selection.Toggle("A", true)
	s.Overlay.RequestDetail("A")

	_, tok, _ := s.Details.Request("A")
	s.Details.OnFetchSettled("A", tok, detail("A", "v1"), nil)
	_, tok, _ = s.Details.Request("B")
	s.Details.OnFetchSettled("B", tok, detail("B", "v1"), nil)

	s.ResetForList([]string{"B"})

	if got := s.Selection.Len(); got != 0 {
		t.Errorf("selection after reset = %d, want 0", got)
	}
	if got := s.Overlay.Current().Kind; got != OverlayNone {
		t.Errorf("overlay after reset = %v, want OverlayNone", got)
	}
	if _, ok := s.Details.Peek("A"); ok {
		t.Error("detail A should be evicted, it left the list")
	}
	if _, ok := s.Details.Peek("B"); !ok {
		t.Error("detail B should survive the reset")
	}
}
