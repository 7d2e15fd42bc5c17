// Package assets stages user-supplied files before upload: it validates
// them, synthesizes previews, and owns the preview resources for the
// lifetime of each draft.
package assets

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfergus/tiller/internal/domain"
)

// Incoming is one raw file offered to the queue.
type Incoming struct {
	Name string
	Size int64
	Data []byte
}

// EnqueueResult reports the per-call accept/reject partition.
type EnqueueResult struct {
	Accepted int
	Rejected int
}

// Queue is the ordered draft-asset sequence. Order is append order and
// duplicate identical files are both kept; this is a sequence, not a
// set. Every listed draft owns a live preview resource.
type Queue struct {
	drafts   []domain.AssetDraft
	previews domain.PreviewStore
	notifier domain.Notifier
	tr       domain.Translator
	logger   *slog.Logger
	onChange func()
}

// NewQueue creates an empty queue. onChange may be nil.
func NewQueue(previews domain.PreviewStore, notifier domain.Notifier, tr domain.Translator, logger *slog.Logger, onChange func()) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		previews: previews,
		notifier: notifier,
		tr:       tr,
		logger:   logger,
		onChange: onChange,
	}
}

// Enqueue validates each file and appends the accepted ones, preview
// attached, in offer order. Oversized files and unrecognized types are
// rejected and never retried. One aggregate toast per outcome class is
// emitted, never one per file.
func (q *Queue) Enqueue(files []Incoming) EnqueueResult {
	var res EnqueueResult
	var oversized, unsupported, failed bool

	for _, f := range files {
		mime, ok := domain.AssetMIMEType(f.Name)
		if !ok {
			q.logger.Warn("asset rejected", "name", f.Name, "reason", "unsupported type")
			res.Rejected++
			unsupported = true
			continue
		}
		if f.Size > domain.MaxAssetBytes {
			q.logger.Warn("asset rejected", "name", f.Name, "size", f.Size)
			res.Rejected++
			oversized = true
			continue
		}

		ref := uuid.NewString()
		previewPath, err := q.previews.Create(ref, f.Name, f.Data)
		if err != nil {
			q.logger.Error("preview creation failed", "name", f.Name, "error", err)
			res.Rejected++
			failed = true
			continue
		}

		q.drafts = append(q.drafts, domain.AssetDraft{
			Ref:         ref,
			Name:        f.Name,
			SizeBytes:   f.Size,
			MIMEType:    mime,
			PreviewPath: previewPath,
			Data:        f.Data,
		})
		res.Accepted++
	}

	if res.Accepted > 0 {
		q.notifier.NotifySuccess(q.tr.T("AssetsAdded"))
	}
	if oversized {
		q.notifier.NotifyError(q.tr.T("AssetsRejected"))
	}
	if unsupported {
		q.notifier.NotifyError(q.tr.T("AssetsUnsupported"))
	}
	if failed {
		q.notifier.NotifyError(q.tr.T("AssetsFailed"))
	}
	if res.Accepted > 0 {
		q.notify()
	}
	return res
}

// Remove releases one draft's preview and drops it from the sequence.
// Unknown refs are ignored.
func (q *Queue) Remove(ref string) {
	for i, d := range q.drafts {
		if d.Ref != ref {
			continue
		}
		if err := q.previews.Release(d.PreviewPath); err != nil {
			q.logger.Error("preview release failed", "ref", ref, "error", err)
		}
		q.drafts = append(q.drafts[:i], q.drafts[i+1:]...)
		q.notifier.NotifySuccess(q.tr.T("AssetRemoved"))
		q.notify()
		return
	}
}

// Clear releases every remaining preview and empties the sequence.
// Called after a successful submission and on session teardown.
func (q *Queue) Clear() {
	if len(q.drafts) == 0 {
		return
	}
	for _, d := range q.drafts {
		if err := q.previews.Release(d.PreviewPath); err != nil {
			q.logger.Error("preview release failed", "ref", d.Ref, "error", err)
		}
	}
	q.drafts = nil
	q.notify()
}

// Snapshot returns the current drafts in order. The slice is a copy;
// the drafts themselves are shared with the queue until cleared.
func (q *Queue) Snapshot() []domain.AssetDraft {
	out := make([]domain.AssetDraft, len(q.drafts))
	copy(out, q.drafts)
	return out
}

// Len returns the number of staged drafts.
func (q *Queue) Len() int {
	return len(q.drafts)
}

func (q *Queue) notify() {
	if q.onChange != nil {
		q.onChange()
	}
}
