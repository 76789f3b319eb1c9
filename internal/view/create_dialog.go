package view

import (
	"context"
	"sync"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// SubmitFunc posts a draft.
type SubmitFunc[D any] func(ctx context.Context, draft D) error

// CreateDialog is a modal form holding a draft of an entity without identifier.
type CreateDialog[D any] struct {
	submit SubmitFunc[D]
	hooks  Hooks
	labels Labels

	mu         sync.Mutex
	open       bool
	draft      D
	submitting bool
}

// NewCreateDialog constructs a closed dialog with an empty draft.
func NewCreateDialog[D any](submit SubmitFunc[D], labels Labels, hooks Hooks) *CreateDialog[D] {
	return &CreateDialog[D]{submit: submit, labels: labels, hooks: hooks}
}

func (d *CreateDialog[D]) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

// Close hides the dialog; the draft is kept for the next Open.
func (d *CreateDialog[D]) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *CreateDialog[D]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *CreateDialog[D]) SetDraft(draft D) {
	d.mu.Lock()
	d.draft = draft
	d.mu.Unlock()
}

func (d *CreateDialog[D]) Draft() D {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// Submit posts the current draft. On success the draft is cleared, the dialog closes and the
// parent gets one refresh signal. On failure the dialog stays open with the draft untouched.
// A second Submit while one is in flight returns ErrBusy without posting.
func (d *CreateDialog[D]) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.submitting {
		d.mu.Unlock()
		return appErrors.ErrBusy
	}
	d.submitting = true
	draft := d.draft
	d.mu.Unlock()

	err := d.submit(ctx, draft)

	d.mu.Lock()
	d.submitting = false
	if err != nil {
		d.mu.Unlock()
		d.hooks.notify(models.Failure(d.labels.CreateFailed, describe(err)))
		return err
	}
	var zero D
	d.draft = zero
	d.open = false
	d.mu.Unlock()

	d.hooks.refresh()
	d.hooks.notify(models.Success(d.labels.Created, ""))
	return nil
}

// describe turns an error into toast text.
func describe(err error) string {
	if err == nil {
		return ""
	}
	return appErrors.FromError(err).Message
}
