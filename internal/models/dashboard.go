package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dashboard summarizes a principal's work.
type Dashboard struct {
	TotalProjects int            `json:"total_projects"`
	TotalTasks    int            `json:"total_tasks"`
	TasksByStatus map[Status]int `json:"tasks_by_status"`
	UpcomingTasks UpcomingTasks  `json:"upcoming_tasks"`
}

// UpcomingTask is the short form of a task shown on the dashboard.
type UpcomingTask struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	DueDate  Date   `json:"due_date" db:"due_date"`
	Priority int    `json:"priority" db:"priority"`
	Status   Status `json:"status" db:"status"`
}

// UpcomingTasks is either empty or a list of items. On the wire the empty
// case is the NoUpcomingTasksMarker string instead of [].
type UpcomingTasks struct {
	Items []UpcomingTask
}

// Empty reports whether there is nothing upcoming.
func (u UpcomingTasks) Empty() bool {
	return len(u.Items) == 0
}

func (u UpcomingTasks) MarshalJSON() ([]byte, error) {
	if u.Empty() {
		return json.Marshal(NoUpcomingTasksMarker)
	}
	return json.Marshal(u.Items)
}

func (u *UpcomingTasks) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var marker string
		if err := json.Unmarshal(data, &marker); err != nil {
			return err
		}
		if marker != NoUpcomingTasksMarker {
			return fmt.Errorf("unexpected upcoming tasks marker %q", marker)
		}
		u.Items = nil
		return nil
	}
	return json.Unmarshal(data, &u.Items)
}
