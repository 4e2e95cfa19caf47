package sqlite

import (
	"context"
	"fmt"

	"tracker/internal/models"
)

// Dashboard aggregates principalID's work. Totals and the status breakdown
// cover owned projects only; upcoming tasks use the wider visibility scope.
func (s *Store) Dashboard(ctx context.Context, principalID int64) (models.Dashboard, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("begin dashboard: %w", err)
	}
	defer tx.Rollback()

	d := models.Dashboard{TasksByStatus: map[models.Status]int{}}

	if err := tx.GetContext(ctx, &d.TotalProjects, `SELECT COUNT(*) FROM projects WHERE owner_id = ?`, principalID); err != nil {
		return models.Dashboard{}, fmt.Errorf("count projects: %w", err)
	}

	if err := tx.GetContext(ctx, &d.TotalTasks, `SELECT COUNT(*) FROM tasks t
        JOIN projects p ON p.id = t.project_id
        WHERE p.owner_id = ?`, principalID); err != nil {
		return models.Dashboard{}, fmt.Errorf("count tasks: %w", err)
	}

	var counts []struct {
		Status models.Status `db:"status"`
		Count  int           `db:"count"`
	}
	if err := tx.SelectContext(ctx, &counts, `SELECT t.status AS status, COUNT(t.id) AS count FROM tasks t
        JOIN projects p ON p.id = t.project_id
        WHERE p.owner_id = ?
        GROUP BY t.status`, principalID); err != nil {
		return models.Dashboard{}, fmt.Errorf("count tasks by status: %w", err)
	}
	for _, c := range counts {
		d.TasksByStatus[c.Status] = c.Count
	}

	if err := tx.SelectContext(ctx, &d.UpcomingTasks.Items, `SELECT t.id, t.title, t.due_date, t.priority, t.status FROM tasks t
        JOIN projects p ON p.id = t.project_id
        WHERE `+visibleTo+` AND t.due_date IS NOT NULL AND t.status != ?
        ORDER BY t.due_date, t.id
        LIMIT ?`, principalID, principalID, models.StatusDone, models.MaxUpcomingTasks); err != nil {
		return models.Dashboard{}, fmt.Errorf("upcoming tasks: %w", err)
	}

	return d, nil
}
