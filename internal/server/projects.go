package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker/internal/models"
)

type createProjectRequest struct {
	Name        string `json:"name" binding:"required" msg:"Project name is required."`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// handleListProjects returns the principal's projects, optionally filtered by ?search=.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context(), principal(c).ID, models.ProjectFilter{
		Search: c.Query("search"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleCreateProject creates a project owned by the principal.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     principal(c).ID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, project)
}

// handleUpdateProject renames or re-describes a project the principal owns.
func (s *Server) handleUpdateProject(c *gin.Context) {
	project, err := s.ownedProject(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req updateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	project, err = s.store.UpdateProject(c.Request.Context(), project)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, project)
}

// handleDeleteProject removes a project and all related tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	project, err := s.ownedProject(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.DeleteProject(c.Request.Context(), project.ID); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// ownedProject loads :project_id and requires the principal to own it.
func (s *Server) ownedProject(c *gin.Context) (models.Project, error) {
	id, err := parseID(c, "project_id")
	if err != nil {
		return models.Project{}, err
	}
	project, err := s.store.GetProject(c.Request.Context(), id)
	if err != nil {
		return models.Project{}, err
	}
	if !models.CanManageProject(principal(c), project) {
		return models.Project{}, forbidden("Only the project owner can change this project.")
	}
	return project, nil
}
