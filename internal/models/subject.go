package models

// Subject is an academic discipline.
type Subject struct {
	ID   ID     `json:"id" form:"id"`
	Name string `json:"name" form:"name"`
}

// SubjectDraft is the create form for subjects.
type SubjectDraft struct {
	Name string `json:"name" form:"name"`
}
