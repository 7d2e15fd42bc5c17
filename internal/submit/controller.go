// Package submit turns a validated onboarding form plus the staged
// asset drafts into a single outbound write and reports the outcome.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/mfergus/tiller/internal/catalog"
	"github.com/mfergus/tiller/internal/domain"
)

// Result tells the caller what to do after a submission settled.
type Result struct {
	// Reset is true after a successful write: the caller resets the
	// form and clears the draft queue.
	Reset bool
}

// Controller orchestrates validation and the outbound write. Stateless
// apart from the loading flag, which guards against resubmission while
// a write is in flight. The flag is atomic because the write runs off
// the update loop.
type Controller struct {
	client   domain.CatalogClient
	notifier domain.Notifier
	tr       domain.Translator
	logger   *slog.Logger

	loading atomic.Bool
}

// NewController creates a submission controller.
func NewController(client domain.CatalogClient, notifier domain.Notifier, tr domain.Translator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:   client,
		notifier: notifier,
		tr:       tr,
		logger:   logger,
	}
}

// Loading reports whether a submission is in flight; the rendering
// layer disables the submit action while true.
func (c *Controller) Loading() bool {
	return c.loading.Load()
}

// Submit validates the form and, when valid, issues exactly one
// multipart write carrying the scalar fields and every draft in the
// snapshot.
//
// Invalid forms return FieldErrors and never touch the network. A
// failed write leaves form and queue state for the caller to retry and
// emits one error toast carrying the server message when present. A
// successful write emits one success toast and instructs the caller to
// reset via Result.Reset.
func (c *Controller) Submit(ctx context.Context, form domain.StaffForm, drafts []domain.AssetDraft) (Result, FieldErrors, error) {
	if errs := Validate(form, len(drafts)); errs != nil {
		return Result{}, errs, nil
	}

	if !c.loading.CompareAndSwap(false, true) {
		return Result{}, nil, domain.ErrSubmitInFlight
	}
	defer c.loading.Store(false)

	if err := c.client.CreateStaff(ctx, form, drafts); err != nil {
		c.logger.Error("submission failed", "error", err)

		var se *catalog.SubmitError
		if errors.As(err, &se) && se.Message != "" {
			c.notifier.NotifyError(c.tr.T("SubmitFailedPrefix") + se.Message)
		} else {
			c.notifier.NotifyError(c.tr.T("SubmitFailed"))
		}
		return Result{}, nil, err
	}

	c.logger.Info("staff account created", "email", form.Email, "assets", len(drafts))
	c.notifier.NotifySuccess(c.tr.T("StaffCreated"))
	return Result{Reset: true}, nil, nil
}
