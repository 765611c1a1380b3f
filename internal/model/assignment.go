package model

// Assignment links a member to a task with a due date. At most one
// assignment exists per (member, task) pair at any time.
type Assignment struct {
	ID             string  `json:"id"`
	MemberID       string  `json:"member_id"`
	TaskID         string  `json:"task_id"`
	AssignedDate   string  `json:"assigned_date"`
	DueDate        string  `json:"due_date"`
	Completed      bool    `json:"completed"`
	CompletionDate *string `json:"completion_date"`
}

// EnrichedAssignment is an assignment joined with its member and task for
// API responses and notification composition. The enrichment fields are
// empty when the referenced entity no longer exists.
type EnrichedAssignment struct {
	Assignment
	MemberName      string    `json:"member_name,omitempty"`
	MemberPhone     string    `json:"member_phone,omitempty"`
	TaskName        string    `json:"task_name,omitempty"`
	TaskDescription string    `json:"task_description,omitempty"`
	TaskFrequency   Frequency `json:"task_frequency,omitempty"`
}
