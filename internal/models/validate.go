package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Messages returned for violated rules.
const (
	MsgBlank          = "This field cannot be blank."
	MsgPriorityRange  = "Priority must be between 1 (highest) and 5 (lowest)."
	MsgDoneFutureDue  = "Tasks marked as done cannot have a future due date."
	msgTooLongFmt     = "Ensure this value has at most %d characters (it has %d)."
	msgInvalidChoiceF = "Value '%s' is not a valid choice."
)

// ValidateTask checks every task rule against today and reports all violations
// at once. It returns nil or a *ValidationError.
func ValidateTask(t Task, today Date) error {
	verr := &ValidationError{}

	checkText(verr, "title", t.Title, MaxTaskTitleLength)

	if !t.Status.Valid() {
		verr.Add("status", fmt.Sprintf(msgInvalidChoiceF, t.Status))
	}

	if t.Priority < MinPriority || t.Priority > MaxPriority {
		verr.Add("priority", MsgPriorityRange)
	}

	if t.Status == StatusDone && t.DueDate != nil && t.DueDate.After(today) {
		verr.Add("due_date", MsgDoneFutureDue)
	}

	return verr.orNil()
}

// ValidateProject checks the project name. Uniqueness is the store's job.
func ValidateProject(p Project) error {
	verr := &ValidationError{}
	checkText(verr, "name", p.Name, MaxProjectNameLength)
	return verr.orNil()
}

func checkText(verr *ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, MsgBlank)
		return
	}
	if n := utf8.RuneCountInString(value); n > max {
		verr.Add(field, fmt.Sprintf(msgTooLongFmt, max, n))
	}
}
