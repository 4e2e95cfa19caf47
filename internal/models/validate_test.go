package models

import (
	"errors"
	"strings"
	"testing"
)

var today = MustDate("2024-05-10")

func validTask() Task {
	return Task{ProjectID: 1, Title: "Ship it", Status: StatusTodo, Priority: 3}
}

func TestValidateTask_PriorityRange(t *testing.T) {
	for p := -1; p <= 7; p++ {
		task := validTask()
		task.Priority = p

		err := ValidateTask(task, today)
		wantReject := p < MinPriority || p > MaxPriority
		if (err != nil) != wantReject {
			t.Fatalf("priority %d: reject=%v, err=%v", p, wantReject, err)
		}
		if wantReject {
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Message("priority") != MsgPriorityRange {
				t.Fatalf("priority %d: unexpected error %v", p, err)
			}
		}
	}
}

func TestValidateTask_DoneWithFutureDueDate(t *testing.T) {
	cases := []struct {
		name    string
		status  Status
		due     *Date
		wantErr bool
	}{
		{"done tomorrow", StatusDone, today.AddDays(1).Ptr(), true},
		{"done today", StatusDone, today.Ptr(), false},
		{"done yesterday", StatusDone, today.AddDays(-1).Ptr(), false},
		{"done without due date", StatusDone, nil, false},
		{"todo far future", StatusTodo, today.AddDays(365).Ptr(), false},
		{"in progress future", StatusInProgress, today.AddDays(1).Ptr(), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask()
			task.Status = tc.status
			task.DueDate = tc.due

			err := ValidateTask(task, today)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message("due_date") != MsgDoneFutureDue {
					t.Fatalf("expected due_date violation, got %v", err)
				}
			}
		})
	}
}

func TestValidateTask_ReportsAllViolations(t *testing.T) {
	task := validTask()
	task.Priority = 0
	task.Status = StatusDone
	task.DueDate = today.AddDays(3).Ptr()

	err := ValidateTask(task, today)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 2 || !verr.Has("priority") || !verr.Has("due_date") {
		t.Fatalf("expected priority and due_date, got %+v", verr.Fields)
	}
	if verr.First() != MsgPriorityRange {
		t.Fatalf("expected priority reported first, got %q", verr.First())
	}
	if got := verr.Map(); got["due_date"] != MsgDoneFutureDue {
		t.Fatalf("unexpected map %v", got)
	}
}

func TestValidateTask_TitleAndStatus(t *testing.T) {
	task := validTask()
	task.Title = "  "
	task.Status = "blocked"

	err := ValidateTask(task, today)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Message("title") != MsgBlank {
		t.Fatalf("unexpected title message %q", verr.Message("title"))
	}
	if verr.Message("status") != "Value 'blocked' is not a valid choice." {
		t.Fatalf("unexpected status message %q", verr.Message("status"))
	}

	task = validTask()
	task.Title = strings.Repeat("é", MaxTaskTitleLength)
	if err := ValidateTask(task, today); err != nil {
		t.Fatalf("title at limit should pass: %v", err)
	}
	task.Title += "x"
	err = ValidateTask(task, today)
	if !errors.As(err, &verr) || verr.Message("title") != "Ensure this value has at most 120 characters (it has 121)." {
		t.Fatalf("expected title length violation, got %v", err)
	}
}

func TestValidateTask_ValidReturnsNilInterface(t *testing.T) {
	if err := ValidateTask(validTask(), today); err != nil {
		t.Fatalf("expected nil, got %#v", err)
	}
}

func TestValidateProject(t *testing.T) {
	if err := ValidateProject(Project{Name: "P1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateProject(Project{Name: strings.Repeat("n", MaxProjectNameLength+1)})
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("name") {
		t.Fatalf("expected name violation, got %v", err)
	}

	if err := ValidateProject(Project{}); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
