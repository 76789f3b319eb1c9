package models

// NotificationKind selects the toast style.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a dismissible, timed toast shown after an operation settles.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
}

// Success builds a success toast.
func Success(title, description string) *Notification {
	return &Notification{Kind: NotificationSuccess, Title: title, Description: description}
}

// Failure builds an error toast.
func Failure(title, description string) *Notification {
	return &Notification{Kind: NotificationError, Title: title, Description: description}
}
