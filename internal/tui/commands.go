package tui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfergus/tiller/internal/domain"
	"github.com/mfergus/tiller/internal/notify"
	"github.com/mfergus/tiller/internal/submit"
)

// Command factories for async operations

// LoadRecordsCmd fetches the catalog list from the service
func LoadRecordsCmd(client domain.CatalogClient, store domain.SnapshotStore, filter string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		records, err := client.ListRecords(ctx, filter)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading records"}
		}
		if store != nil {
			store.SaveSummaries(filter, records)
		}
		return RecordsLoadedMsg{Records: records, Filter: filter}
	}
}

// LoadSnapshotCmd serves the last persisted list immediately so the
// table is not empty while the network refresh runs. Returns nil when
// no snapshot exists.
func LoadSnapshotCmd(store domain.SnapshotStore, filter string) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		records, ok := store.GetSummaries(filter)
		if !ok {
			return nil
		}
		return RecordsLoadedMsg{Records: records, Filter: filter, FromCache: true}
	}
}

// FetchDetailCmd fetches one full record. The token is echoed back so
// the update loop can discard responses from superseded requests.
func FetchDetailCmd(client domain.CatalogClient, id, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := client.GetRecord(ctx, id)
		return DetailFetchedMsg{ID: id, Token: token, Detail: detail, Err: err}
	}
}

// DeleteRecordCmd deletes one record
func DeleteRecordCmd(client domain.CatalogClient, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := client.DeleteRecord(ctx, id)
		return RecordDeletedMsg{ID: id, Err: err}
	}
}

// SubmitCmd runs the staff submission off the update loop
func SubmitCmd(ctrl *submit.Controller, form domain.StaffForm, drafts []domain.AssetDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		result, fieldErrs, err := ctrl.Submit(ctx, form, drafts)
		return SubmitSettledMsg{Result: result, FieldErrors: fieldErrs, Err: err}
	}
}

// ReadAssetCmd reads a picked file into memory for staging
func ReadAssetCmd(path, name string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return AssetPickedMsg{Name: name, Err: err}
		}
		return AssetPickedMsg{Name: name, Size: int64(len(data)), Data: data}
	}
}

// WaitToastCmd blocks on the toast hub and delivers the next toast
func WaitToastCmd(hub *notify.Hub) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Toast: <-hub.Toasts()}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
