package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker/internal/models"
)

const (
	msgPriorityRequired = "Priority is required."
	msgPriorityInteger  = "Priority must be an integer between 1 and 5."
	msgDueDateFormat    = "due_date must be in YYYY-MM-DD format."
	msgInvalidAssignee  = "Invalid assignee_id."
)

type createTaskRequest struct {
	Title       string          `json:"title" binding:"required" msg:"Title is required."`
	Description string          `json:"description"`
	Priority    json.RawMessage `json:"priority"`
	Status      string          `json:"status"`
	DueDate     string          `json:"due_date"`
	AssigneeID  json.RawMessage `json:"assignee_id"`
}

// updateTaskRequest changes only the fields present in the body. A null
// due_date or assignee_id clears it.
type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    json.RawMessage `json:"priority"`
	Status      *string         `json:"status"`
	DueDate     json.RawMessage `json:"due_date"`
	AssigneeID  json.RawMessage `json:"assignee_id"`
}

// handleListTasks returns tasks the principal owns or is assigned to.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context(), principal(c).ID, models.TaskFilter{
		Status:    c.Query("status"),
		ProjectID: c.Query("project_id"),
		DueBefore: c.Query("due_before"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateTask adds a task to a project the principal owns.
func (s *Server) handleCreateTask(c *gin.Context) {
	projectID, err := parseID(c, "project_id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	project, err := s.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !models.CanCreateTaskUnder(principal(c), project) {
		s.respondError(c, forbidden("Only project owner can create tasks"))
		return
	}

	var req createTaskRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	task := models.Task{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.Status(req.Status),
	}

	if isAbsent(req.Priority) {
		s.respondError(c, inputError(msgPriorityRequired))
		return
	}
	priority, ok := coerceInt(req.Priority)
	if !ok {
		s.respondError(c, inputError(msgPriorityInteger))
		return
	}
	task.Priority = int(priority)

	if req.DueDate != "" {
		due, err := models.ParseDate(req.DueDate)
		if err != nil {
			s.respondError(c, inputError(msgDueDateFormat))
			return
		}
		task.DueDate = &due
	}

	if task.AssigneeID, err = s.resolveAssignee(c, req.AssigneeID); err != nil {
		s.respondError(c, err)
		return
	}

	created, err := s.store.CreateTask(c.Request.Context(), task)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, created)
}

// handleUpdateTask applies a partial update to a task under an owned project.
func (s *Server) handleUpdateTask(c *gin.Context) {
	task, err := s.modifiableTask(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req updateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.Status(*req.Status)
	}
	if req.Priority != nil {
		priority, ok := coerceInt(req.Priority)
		if !ok {
			s.respondError(c, inputError(msgPriorityInteger))
			return
		}
		task.Priority = int(priority)
	}
	if req.DueDate != nil {
		if task.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
			s.respondError(c, err)
			return
		}
	}
	if req.AssigneeID != nil {
		if task.AssigneeID, err = s.resolveAssignee(c, req.AssigneeID); err != nil {
			s.respondError(c, err)
			return
		}
	}

	updated, err := s.store.UpdateTask(c.Request.Context(), task)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, updated)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	task, err := s.modifiableTask(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.DeleteTask(c.Request.Context(), task.ID); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// modifiableTask loads :task_id for a write. Tasks outside the principal's
// scope look absent; visible but not owned tasks are forbidden.
func (s *Server) modifiableTask(c *gin.Context) (models.Task, error) {
	id, err := parseID(c, "task_id")
	if err != nil {
		return models.Task{}, err
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		return models.Task{}, err
	}
	project, err := s.store.GetProject(c.Request.Context(), task.ProjectID)
	if err != nil {
		return models.Task{}, err
	}

	who := principal(c)
	if !models.CanViewTask(who, task, project) {
		return models.Task{}, notFound("Not found.")
	}
	if !models.CanModifyTask(who, project) {
		return models.Task{}, forbidden("Only project owner can modify tasks")
	}
	return task, nil
}

// resolveAssignee turns an optional assignee_id into a user id that exists.
func (s *Server) resolveAssignee(c *gin.Context, raw json.RawMessage) (*int64, error) {
	if isFalsy(raw) {
		return nil, nil
	}
	id, ok := coerceInt(raw)
	if !ok {
		return nil, inputError(msgInvalidAssignee)
	}
	user, err := s.store.GetUser(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, inputError(msgInvalidAssignee)
	}
	if err != nil {
		return nil, err
	}
	return &user.ID, nil
}

func parseOptionalDate(raw json.RawMessage) (*models.Date, error) {
	if isFalsy(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, inputError(msgDueDateFormat)
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, inputError(msgDueDateFormat)
	}
	return &d, nil
}
