package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfergus/tiller/internal/domain"
)

// EntryStatus is the lifecycle state of one cached detail.
type EntryStatus int

const (
	StatusPending EntryStatus = iota
	StatusReady
	StatusFailed
)

// Entry is one keyed detail-cache slot. Value survives both
// revalidation and failure so the drawer never flashes to empty.
type Entry struct {
	ID     string
	Status EntryStatus
	Value  *domain.RecordDetail

	// token identifies the in-flight fetch; a settlement carrying a
	// different token is superseded and ignored.
	token string
}

// DetailCache is the keyed, on-demand cache of full records. At most
// one fetch is in flight per id (single-flight); superseded fetches are
// neutralized at settlement time by token comparison rather than hard
// cancellation.
type DetailCache struct {
	entries  map[string]*Entry
	logger   *slog.Logger
	onChange func()
}

// NewDetailCache creates an empty cache. onChange may be nil.
func NewDetailCache(logger *slog.Logger, onChange func()) *DetailCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailCache{
		entries:  make(map[string]*Entry),
		logger:   logger,
		onChange: onChange,
	}
}

// Request asks for id's full record. It returns the value currently
// safe to display (possibly stale, nil if none), the token the caller
// must bind its fetch to, and whether a fetch must actually start: a
// Pending entry returns its existing token with start=false so rapid
// repeated requests share one underlying fetch.
func (c *DetailCache) Request(id string) (stale *domain.RecordDetail, token string, start bool) {
	e, ok := c.entries[id]
	if ok && e.Status == StatusPending {
		return e.Value, e.token, false
	}

	token = uuid.NewString()
	if !ok {
		e = &Entry{ID: id}
		c.entries[id] = e
	}
	// Ready entries revalidate; Failed entries retry. Either way the
	// previous value stays visible until the new fetch settles.
	e.Status = StatusPending
	e.token = token
	c.notify()
	return e.Value, token, true
}

// OnFetchSettled applies a fetch outcome. A token that no longer
// matches the entry's current in-flight token means the request was
// superseded; its result is dropped. Failures keep the prior value for
// display continuity and are reported to the logger only.
func (c *DetailCache) OnFetchSettled(id, token string, value *domain.RecordDetail, err error) {
	e, ok := c.entries[id]
	if !ok || e.token != token {
		c.logger.Debug("detail fetch superseded", "id", id)
		return
	}
	e.token = ""
	if err != nil {
		e.Status = StatusFailed
		c.logger.Error("detail fetch failed", "id", id, "error", err)
		c.notify()
		return
	}
	e.Status = StatusReady
	e.Value = value
	c.notify()
}

// Peek returns the current entry without triggering a fetch. The
// rendering layer calls this on every re-render.
func (c *DetailCache) Peek(id string) (Entry, bool) {
	e, ok := c.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Invalidate drops one entry; the next Request re-fetches.
func (c *DetailCache) Invalidate(id string) {
	if _, ok := c.entries[id]; !ok {
		return
	}
	delete(c.entries, id)
	c.notify()
}

// Clear drops every entry.
func (c *DetailCache) Clear() {
	if len(c.entries) == 0 {
		return
	}
	c.entries = make(map[string]*Entry)
	c.notify()
}

// Retain evicts every entry whose id is not in ids. Called when the
// listed collection changes so the cache only holds rows that are still
// rendered.
func (c *DetailCache) Retain(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	changed := false
	for id := range c.entries {
		if _, ok := keep[id]; !ok {
			delete(c.entries, id)
			changed = true
		}
	}
	if changed {
		c.notify()
	}
}

func (c *DetailCache) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
