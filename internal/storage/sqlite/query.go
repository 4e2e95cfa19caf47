package sqlite

import (
	"context"
	"fmt"
	"strings"

	"tracker/internal/models"
)

// visibleTo is the task scope of a principal: tasks of owned projects plus
// tasks assigned to the principal in anyone's project.
const visibleTo = `(p.owner_id = ? OR t.assignee_id = ?)`

// ListProjects returns projects owned by ownerID, optionally filtered by a
// case-insensitive name substring.
func (s *Store) ListProjects(ctx context.Context, ownerID int64, filter models.ProjectFilter) ([]models.Project, error) {
	conditions := []string{`p.owner_id = ?`}
	args := []any{ownerID}

	if filter.Search != "" {
		conditions = append(conditions, `p.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
	}

	query := projectSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY p.id`

	projects := []models.Project{}
	if err := s.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// ListTasks returns the tasks principalID may see, narrowed by filter. Filter
// values are bound as given, so a malformed value matches nothing instead of
// failing.
func (s *Store) ListTasks(ctx context.Context, principalID int64, filter models.TaskFilter) ([]models.Task, error) {
	conditions := []string{visibleTo}
	args := []any{principalID, principalID}

	if filter.Status != "" {
		conditions = append(conditions, `t.status = ?`)
		args = append(args, filter.Status)
	}
	if filter.ProjectID != "" {
		conditions = append(conditions, `t.project_id = ?`)
		args = append(args, filter.ProjectID)
	}
	if filter.DueBefore != "" {
		conditions = append(conditions, `t.due_date < ?`)
		args = append(args, filter.DueBefore)
	}

	query := taskSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY t.id`

	tasks := []models.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
