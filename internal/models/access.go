package models

// CanManageProject reports whether principal may read or change project.
// Projects are never shared, so only the owner qualifies.
func CanManageProject(principal User, project Project) bool {
	return principal.ID != 0 && principal.ID == project.OwnerID
}

// CanCreateTaskUnder reports whether principal may add tasks to project.
func CanCreateTaskUnder(principal User, project Project) bool {
	return CanManageProject(principal, project)
}

// CanModifyTask reports whether principal may update or delete tasks of project.
// Assignees only get read access.
func CanModifyTask(principal User, project Project) bool {
	return CanManageProject(principal, project)
}

// CanViewTask reports whether task is inside principal's scope: tasks of owned
// projects plus tasks assigned to principal anywhere.
func CanViewTask(principal User, task Task, project Project) bool {
	if CanManageProject(principal, project) {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == principal.ID && principal.ID != 0
}
