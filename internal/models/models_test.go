package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAccess_OwnerAndAssignee(t *testing.T) {
	owner := User{ID: 1, Username: "owner"}
	assignee := User{ID: 2, Username: "assignee"}
	stranger := User{ID: 3, Username: "stranger"}
	project := Project{ID: 10, OwnerID: owner.ID}
	task := Task{ID: 100, ProjectID: project.ID, AssigneeID: &assignee.ID}

	if !CanCreateTaskUnder(owner, project) || CanCreateTaskUnder(assignee, project) || CanCreateTaskUnder(stranger, project) {
		t.Fatalf("only the owner may create tasks")
	}
	if !CanModifyTask(owner, project) || CanModifyTask(assignee, project) {
		t.Fatalf("only the owner may modify tasks")
	}
	if !CanViewTask(owner, task, project) || !CanViewTask(assignee, task, project) || CanViewTask(stranger, task, project) {
		t.Fatalf("owner and assignee may view, stranger may not")
	}
	if CanManageProject(User{}, Project{}) {
		t.Fatalf("anonymous principal must never match")
	}
}

func TestDate_JSONAndScan(t *testing.T) {
	d := MustDate("2024-02-29")

	data, err := json.Marshal(struct {
		Due  *Date `json:"due"`
		None *Date `json:"none"`
	}{Due: &d})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"due":"2024-02-29","none":null}` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2024-02-29"`), &back); err != nil || back.String() != "2024-02-29" {
		t.Fatalf("Unmarshal: %v %v", back, err)
	}
	if err := json.Unmarshal([]byte(`"29/02/2024"`), &back); err == nil {
		t.Fatalf("expected bad layout to fail")
	}

	var scanned Date
	if err := scanned.Scan(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)); err != nil || scanned.String() != "2024-03-01" {
		t.Fatalf("Scan time: %v %v", scanned, err)
	}
	if err := scanned.Scan([]byte("2024-04-02")); err != nil || scanned.String() != "2024-04-02" {
		t.Fatalf("Scan bytes: %v %v", scanned, err)
	}
	if err := scanned.Scan(42); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestUpcomingTasks_WireShapes(t *testing.T) {
	empty, err := json.Marshal(Dashboard{TasksByStatus: map[Status]int{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(empty), `"upcoming_tasks":"No upcoming tasks!"`) {
		t.Fatalf("expected sentinel string, got %s", empty)
	}

	full := Dashboard{
		TotalProjects: 1,
		TotalTasks:    1,
		TasksByStatus: map[Status]int{StatusTodo: 1},
		UpcomingTasks: UpcomingTasks{Items: []UpcomingTask{{ID: 7, Title: "t", DueDate: MustDate("2024-02-01"), Priority: 2, Status: StatusTodo}}},
	}
	data, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `"upcoming_tasks":[{"id":7,"title":"t","due_date":"2024-02-01","priority":2,"status":"todo"}]`
	if !strings.Contains(string(data), want) {
		t.Fatalf("expected %s in %s", want, data)
	}

	var decoded Dashboard
	if err := json.Unmarshal(empty, &decoded); err != nil || !decoded.UpcomingTasks.Empty() {
		t.Fatalf("decode sentinel: %v %+v", err, decoded)
	}
	if err := json.Unmarshal(data, &decoded); err != nil || len(decoded.UpcomingTasks.Items) != 1 {
		t.Fatalf("decode list: %v %+v", err, decoded)
	}
	var u UpcomingTasks
	if err := json.Unmarshal([]byte(`"something else"`), &u); err == nil {
		t.Fatalf("expected unknown marker to fail")
	}
}
