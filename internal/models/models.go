package models

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ValidTaskStatuses enumerates the statuses a task may be saved with.
var ValidTaskStatuses = map[Status]struct{}{
	StatusTodo:       {},
	StatusInProgress: {},
	StatusDone:       {},
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := ValidTaskStatuses[s]
	return ok
}

// Field limits mirrored by the schema and the validation rules.
const (
	MaxUsernameLength     = 150
	MaxProjectNameLength  = 100
	MaxTaskTitleLength    = 120
	MinPriority           = 1
	MaxPriority           = 5
	MaxUpcomingTasks      = 5
	NoUpcomingTasksMarker = "No upcoming tasks!"
)

// User is an authenticated identity. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Project groups tasks and belongs to exactly one owner.
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     int64     `json:"-" db:"owner_id"`
	Owner       string    `json:"owner" db:"owner"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Task is a unit of work inside a project, optionally delegated to an assignee.
type Task struct {
	ID          int64     `json:"id" db:"id"`
	ProjectID   int64     `json:"project_id" db:"project_id"`
	ProjectName string    `json:"project_name" db:"project_name"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Priority    int       `json:"priority" db:"priority"`
	DueDate     *Date     `json:"due_date" db:"due_date"`
	AssigneeID  *int64    `json:"-" db:"assignee_id"`
	Assignee    *string   `json:"assignee" db:"assignee"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectFilter narrows a project listing. Zero values disable a filter.
type ProjectFilter struct {
	Search string
}

// TaskFilter narrows a task listing. Values are compared as supplied.
type TaskFilter struct {
	Status    string
	ProjectID string
	DueBefore string
}
