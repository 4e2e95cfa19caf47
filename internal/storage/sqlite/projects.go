package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tracker/internal/models"
)

const projectSelect = `SELECT p.id, p.name, p.description, p.owner_id, u.username AS owner, p.created_at, p.updated_at
        FROM projects p JOIN users u ON u.id = p.owner_id`

// CreateProject persists a new project for p.OwnerID. The name is stored as
// given; surrounding whitespace is significant for uniqueness.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if err := models.ValidateProject(p); err != nil {
		return models.Project{}, err
	}

	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, `INSERT INTO projects(name, description, owner_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.OwnerID, now, now)
	if err != nil {
		return models.Project{}, projectWriteError("insert project", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project
	err := s.db.GetContext(ctx, &p, projectSelect+` WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// UpdateProject saves name and description and refreshes updated_at. The
// owner never changes.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if err := models.ValidateProject(p); err != nil {
		return models.Project{}, err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, s.timestamp(), p.ID)
	if err != nil {
		return models.Project{}, projectWriteError("update project", err)
	}
	rows, err := res.RowsAffected()
	if err := affectedOrNotFound(rows, err, "project", p.ID); err != nil {
		return models.Project{}, err
	}
	return s.GetProject(ctx, p.ID)
}

// DeleteProject removes a project along with its tasks.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, err := res.RowsAffected()
	return affectedOrNotFound(rows, err, "project", id)
}

func projectWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, models.ErrDuplicateProject)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: owner: %w", op, models.ErrForeignKey)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
