package models

// Teacher is a teacher record as exchanged with the booking API.
type Teacher struct {
	ID         ID     `json:"id" form:"id"`
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	EmployeeID string `json:"employee_id" form:"employee_id"`
}

// TeacherDraft is the create form: a teacher without identifier.
type TeacherDraft struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	EmployeeID string `json:"employee_id" form:"employee_id"`
}
