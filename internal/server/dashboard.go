package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleDashboard returns the principal's project and task summary.
func (s *Server) handleDashboard(c *gin.Context) {
	dashboard, err := s.store.Dashboard(c.Request.Context(), principal(c).ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dashboard)
}
