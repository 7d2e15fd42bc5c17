package tui

import (
	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/notify"
	"github.com/mfergus/tiller/internal/submit"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// RecordsLoadedMsg signals that the catalog list has been loaded
type RecordsLoadedMsg struct {
	Records   []domain.RecordSummary
	Filter    string
	FromCache bool // True when served from the local snapshot
}

// DetailFetchedMsg signals that a detail fetch settled. Token ties the
// response back to the request that started it.
type DetailFetchedMsg struct {
	ID     string
	Token  string
	Detail *domain.RecordDetail
	Err    error
}

// RecordDeletedMsg signals that a delete settled
type RecordDeletedMsg struct {
	ID  string
	Err error
}

// SubmitSettledMsg signals that a staff submission settled
type SubmitSettledMsg struct {
	Result      submit.Result
	FieldErrors submit.FieldErrors
	Err         error
}

// ToastMsg delivers one notification from the toast hub
type ToastMsg struct {
	Toast notify.Toast
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// AssetPickedMsg carries a file chosen in the picker, already read
type AssetPickedMsg struct {
	Name string
	Size int64
	Data []byte
	Err  error
}
