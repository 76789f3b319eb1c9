package view

import "github.com/noah-isme/booking-admin/internal/models"

// Hooks connects a dialog to its parent page.
type Hooks struct {
	// Refresh is the parent refresh signal, sent once per successful mutation.
	Refresh func()
	// Notify receives the toast for every settled mutation.
	Notify func(*models.Notification)
}

func (h Hooks) refresh() {
	if h.Refresh != nil {
		h.Refresh()
	}
}

func (h Hooks) notify(n *models.Notification) {
	if h.Notify != nil && n != nil {
		h.Notify(n)
	}
}

// Labels are the toast titles a dialog uses.
type Labels struct {
	Created      string
	CreateFailed string
	Saved        string
	SaveFailed   string
	Deleted      string
	DeleteFailed string
}

// LoadFailedMessage replaces a detail form whose item could not be loaded.
const LoadFailedMessage = "Erro ao carregar"
