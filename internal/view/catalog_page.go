package view

import (
	"context"

	"github.com/noah-isme/booking-admin/internal/models"
)

// Catalog is a remote collection with the full create/read/update/delete lifecycle.
type Catalog[T any, D any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft D) (*T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
}

// CatalogPage is the list-and-create page shared by teachers and subjects. After any successful
// mutation the parent refresh signal reloads the whole list.
type CatalogPage[T any, D any] struct {
	List   *Resource[[]T]
	Create *CreateDialog[D]
	Detail *DetailDialog[T]
}

// NewCatalogPage wires the list resource and both dialogs to catalog.
func NewCatalogPage[T any, D any](catalog Catalog[T, D], labels Labels, hooks Hooks) *CatalogPage[T, D] {
	page := &CatalogPage[T, D]{
		List: NewResource(func(ctx context.Context, _ string) ([]T, error) {
			return catalog.List(ctx)
		}),
	}
	page.Create = NewCreateDialog(func(ctx context.Context, draft D) error {
		_, err := catalog.Create(ctx, draft)
		return err
	}, labels, hooks)
	page.Detail = NewDetailDialog(DetailActions[T]{
		Fetch:  catalog.Get,
		Save:   catalog.Update,
		Delete: catalog.Delete,
	}, labels, hooks)
	return page
}

// Mount fetches the list.
func (p *CatalogPage[T, D]) Mount(ctx context.Context) Snapshot[[]T] {
	return p.List.Load(ctx, "")
}

// Close drops everything in flight when the page goes away.
func (p *CatalogPage[T, D]) Close() {
	p.List.Close()
	p.Detail.Close()
}

// SubjectLabels are the disciplina toasts.
var SubjectLabels = Labels{
	Created:      "Disciplina criada com sucesso",
	CreateFailed: "Erro ao criar disciplina",
	Saved:        "Disciplina atualizada com sucesso",
	SaveFailed:   "Erro ao atualizar disciplina",
	Deleted:      "Disciplina excluída com sucesso",
	DeleteFailed: "Erro ao excluir disciplina",
}

// TeacherLabels are the professor toasts.
var TeacherLabels = Labels{
	Created:      "Professor criado com sucesso",
	CreateFailed: "Erro ao criar professor",
	Saved:        "Professor atualizado com sucesso",
	SaveFailed:   "Erro ao atualizar professor",
	Deleted:      "Professor excluído com sucesso",
	DeleteFailed: "Erro ao excluir professor",
}

type (
	SubjectPage = CatalogPage[models.Subject, models.SubjectDraft]
	TeacherPage = CatalogPage[models.Teacher, models.TeacherDraft]
)
