package models

// ScheduleParty is the embedded teacher or subject reference of a schedule.
type ScheduleParty struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Schedule is a booked interval linking one teacher and one subject. Times are kept exactly as the
// API sent them; FormatDateTime renders them for display.
type Schedule struct {
	ID        ID            `json:"id"`
	Teacher   ScheduleParty `json:"teacher"`
	Subject   ScheduleParty `json:"subject"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
}

// ScheduleDraft is the composite create form. All four fields are required; nothing else
// (ordering of start/end, overlaps) is checked client side.
type ScheduleDraft struct {
	TeacherID string `json:"teacher_id" form:"teacher_id" validate:"required"`
	SubjectID string `json:"subject_id" form:"subject_id" validate:"required"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
	EndTime   string `json:"end_time" form:"end_time" validate:"required"`
}

// ScheduleBoard is the schedule page's local view state: the three collections fetched on mount.
type ScheduleBoard struct {
	Teachers  []Teacher  `json:"teachers"`
	Subjects  []Subject  `json:"subjects"`
	Schedules []Schedule `json:"schedules"`
}
