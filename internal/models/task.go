// internal/models/task.go
package models

import "time"

// TaskStatus is the lifecycle state of a task. The server owns the set of
// values; the client never invents new ones.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// AllTaskStatuses lists the three kanban lanes in display order.
var AllTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// Valid reports whether s is one of the known lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work assigned to an employee, tied to one application.
// The free-text Work field doubles as an informal work-type tag; the board
// classifier matches substrings against it.
type Task struct {
	TaskID          int                 `json:"task_id"`
	ApplicationID   int                 `json:"application_id"`
	Work            string              `json:"work"`
	Status          TaskStatus          `json:"status"`
	ApplicantName   string              `json:"applicant_name"`
	MobileNumber    string              `json:"mobile_number"`
	SolarSystemType string              `json:"solar_system_type,omitempty"`
	PlantSizeKW     float64             `json:"plant_size_kw,omitempty"`
	District        string              `json:"district,omitempty"`
	TaskCreatedAt   time.Time           `json:"task_created_at"`
	Applications    *ApplicationSummary `json:"applications,omitempty"`
}
