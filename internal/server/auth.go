package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"tracker/internal/models"
)

const (
	sessionUserKey = "user_id"
	principalKey   = "principal"
)

type loginRequest struct {
	Username string `json:"username" binding:"required" msg:"Username and password are required."`
	Password string `json:"password" binding:"required" msg:"Username and password are required."`
}

func newCookieStore(opts Options) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.SessionMaxAge,
		HttpOnly: true,
		Secure:   opts.SessionSecure,
		SameSite: opts.SessionSameSite,
	}
	return store
}

// requireSession resolves the session cookie to a user and stores it as the
// request principal. Requests without a valid session stop here with 401.
func (s *Server) requireSession(c *gin.Context) {
	session, err := s.sessions.Get(c.Request, s.opts.SessionName)
	if err != nil {
		s.logger.Debug("discarding unreadable session", slog.String("error", err.Error()))
	}
	id, ok := session.Values[sessionUserKey].(int64)
	if !ok {
		s.respondError(c, errUnauthenticated)
		return
	}

	user, err := s.store.GetUser(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		s.respondError(c, errUnauthenticated)
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Set(principalKey, user)
	c.Next()
}

// principal returns the authenticated user set by requireSession.
func principal(c *gin.Context) models.User {
	user, _ := c.MustGet(principalKey).(models.User)
	return user
}

// handleLogin checks credentials and starts a session.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		s.respondError(c, err)
		return
	}

	user, err := s.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.respondError(c, err)
		return
	}
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		recordLoginAttempt(false)
		s.respondError(c, models.ErrInvalidCredentials)
		return
	}

	session, _ := s.sessions.Get(c.Request, s.opts.SessionName)
	session.Values[sessionUserKey] = user.ID
	if err := session.Save(c.Request, c.Writer); err != nil {
		s.respondError(c, err)
		return
	}

	recordLoginAttempt(true)
	s.logger.Info("user logged in", slog.String("username", user.Username))
	respondSuccess(c, http.StatusOK, gin.H{"message": "Logged in successfully", "username": user.Username})
}

// handleLogout ends the current session.
func (s *Server) handleLogout(c *gin.Context) {
	session, _ := s.sessions.Get(c.Request, s.opts.SessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Logged out"})
}
