package domain

import "context"

// StaffForm carries the scalar fields of the onboarding form.
type StaffForm struct {
	Name          string
	Email         string
	PhoneNumber   string
	JoiningDate   string // YYYY-MM-DD
	Role          string
	TermsAccepted bool
}

// CatalogClient is the remote record service consumed by the core.
type CatalogClient interface {
	// ListRecords fetches the current collection, optionally filtered
	// server-side.
	ListRecords(ctx context.Context, filter string) ([]RecordSummary, error)

	// GetRecord fetches one full record by identifier. Returns
	// ErrRecordNotFound for unknown ids.
	GetRecord(ctx context.Context, id string) (*RecordDetail, error)

	// CreateStaff issues the single multipart write combining the form
	// fields with every staged asset.
	CreateStaff(ctx context.Context, form StaffForm, assets []AssetDraft) error

	// DeleteRecord removes one record by identifier.
	DeleteRecord(ctx context.Context, id string) error
}

// Notifier is the toast presenter. Fire-and-forget; no return value is
// consumed by callers.
type Notifier interface {
	NotifySuccess(text string)
	NotifyError(text string)
}

// Translator resolves user-facing label keys. Pure lookup, never used
// for control flow.
type Translator interface {
	T(key string) string
}

// SnapshotStore persists the last fetched record list per filter so the
// table can render immediately on the next start while a refresh runs.
type SnapshotStore interface {
	GetSummaries(filter string) ([]RecordSummary, bool)
	SaveSummaries(filter string, records []RecordSummary) error
	Invalidate(filter string)
	InvalidateAll()
	Close() error
}

// PreviewStore synthesizes and releases preview resources for asset
// drafts. Create returns a handle that remains live until Release.
type PreviewStore interface {
	Create(ref, name string, data []byte) (string, error)
	Release(path string) error
	Close() error
}
