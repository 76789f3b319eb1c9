package view

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// DetailActions are the remote operations behind a detail dialog.
type DetailActions[T any] struct {
	Fetch  FetchFunc[T]
	Save   func(ctx context.Context, item T) error
	Delete func(ctx context.Context, id string) error
}

// DetailView is what the template renders for a detail dialog.
type DetailView[T any] struct {
	Open    bool
	ID      string
	State   State
	Item    T
	Message string
}

// Ready reports whether the edit form can be shown.
func (v DetailView[T]) Ready() bool { return v.State == StateLoaded }

// DetailDialog shows one item keyed by identifier with save and delete actions.
type DetailDialog[T any] struct {
	actions  DetailActions[T]
	hooks    Hooks
	labels   Labels
	resource *Resource[T]

	mu   sync.Mutex
	open bool
	id   string
	busy bool
}

// NewDetailDialog constructs a closed dialog.
func NewDetailDialog[T any](actions DetailActions[T], labels Labels, hooks Hooks) *DetailDialog[T] {
	return &DetailDialog[T]{
		actions:  actions,
		labels:   labels,
		hooks:    hooks,
		resource: NewResource(actions.Fetch),
	}
}

// Open shows the dialog for id. An empty id shows nothing and fetches nothing; any other id is
// fetched exactly once, replacing whatever item was shown before.
func (d *DetailDialog[T]) Open(ctx context.Context, id string) DetailView[T] {
	d.mu.Lock()
	d.id = id
	d.open = id != ""
	d.mu.Unlock()

	if id == "" {
		d.resource.Reset()
		return d.View()
	}
	d.resource.Load(ctx, id)
	return d.View()
}

// Edit shows id with item as its current, user-edited value without fetching.
func (d *DetailDialog[T]) Edit(id string, item T) {
	d.mu.Lock()
	d.id = id
	d.open = id != ""
	d.mu.Unlock()
	d.resource.Set(item)
}

// Save sends the edited item.
func (d *DetailDialog[T]) Save(ctx context.Context) error {
	snapshot := d.resource.Snapshot()
	if snapshot.State != StateLoaded {
		return appErrors.Clone(appErrors.ErrValidation, "nothing loaded to save")
	}
	return d.mutate(ctx, func(ctx context.Context, _ string) error {
		return d.actions.Save(ctx, snapshot.Data)
	}, d.labels.Saved, d.labels.SaveFailed)
}

// Delete removes the shown item.
func (d *DetailDialog[T]) Delete(ctx context.Context) error {
	return d.mutate(ctx, d.actions.Delete, d.labels.Deleted, d.labels.DeleteFailed)
}

func (d *DetailDialog[T]) mutate(ctx context.Context, call func(context.Context, string) error, okTitle, failTitle string) error {
	d.mu.Lock()
	if !d.open || d.id == "" {
		d.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "dialog is not open")
	}
	if d.busy {
		d.mu.Unlock()
		return appErrors.ErrBusy
	}
	d.busy = true
	id := d.id
	d.mu.Unlock()

	err := call(ctx, id)

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			// the item is gone; nothing is left to edit
			d.resource.Fail(err)
		}
		d.hooks.notify(models.Failure(failTitle, describe(err)))
		return err
	}
	d.Close()
	d.hooks.refresh()
	d.hooks.notify(models.Success(okTitle, ""))
	return nil
}

// Close hides the dialog and drops any late fetch result.
func (d *DetailDialog[T]) Close() {
	d.mu.Lock()
	d.open = false
	d.id = ""
	d.mu.Unlock()
	d.resource.Reset()
}

// View returns the render model.
func (d *DetailDialog[T]) View() DetailView[T] {
	d.mu.Lock()
	open, id := d.open, d.id
	d.mu.Unlock()

	snapshot := d.resource.Snapshot()
	view := DetailView[T]{Open: open, ID: id, State: snapshot.State}
	switch snapshot.State {
	case StateLoaded:
		view.Item = snapshot.Data
	case StateError:
		view.Message = LoadFailedMessage
	}
	return view
}
