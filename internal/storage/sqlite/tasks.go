package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tracker/internal/models"
)

const taskSelect = `SELECT t.id, t.project_id, p.name AS project_name, t.title, t.description, t.status,
            t.priority, t.due_date, t.assignee_id, a.username AS assignee, t.created_at, t.updated_at
        FROM tasks t
        JOIN projects p ON p.id = t.project_id
        LEFT JOIN users a ON a.id = t.assignee_id`

// CreateTask validates t and inserts it under t.ProjectID. Nothing is written
// when validation fails.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	normalizeTask(&t)
	if err := models.ValidateTask(t, s.today()); err != nil {
		return models.Task{}, err
	}

	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(project_id, title, description, status, priority, due_date, assignee_id, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.AssigneeID, now, now)
	if err != nil {
		return models.Task{}, taskWriteError("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, taskSelect+` WHERE t.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask re-validates t and saves every mutable field. The project a task
// belongs to never changes.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	normalizeTask(&t)
	if err := models.ValidateTask(t, s.today()); err != nil {
		return models.Task{}, err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, assignee_id = ?, updated_at = ?
        WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.AssigneeID, s.timestamp(), t.ID)
	if err != nil {
		return models.Task{}, taskWriteError("update task", err)
	}
	rows, err := res.RowsAffected()
	if err := affectedOrNotFound(rows, err, "task", t.ID); err != nil {
		return models.Task{}, err
	}
	return s.GetTask(ctx, t.ID)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	rows, err := res.RowsAffected()
	return affectedOrNotFound(rows, err, "task", id)
}

func normalizeTask(t *models.Task) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
}

func taskWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: project or assignee: %w", op, models.ErrForeignKey)
	}
	return fmt.Errorf("%s: %w", op, err)
}
