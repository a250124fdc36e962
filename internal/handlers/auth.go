package handlers

import (
	"net/http"

	"github.com/alfagnish/supplychain-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SessionHandler reports who holds the session cookie issued by the
// credential check.
type SessionHandler struct {
	jwtSecret string
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(jwtSecret string) *SessionHandler {
	return &SessionHandler{jwtSecret: jwtSecret}
}

// Routes registers session routes on the given chi router.
func (h *SessionHandler) Routes(r chi.Router) {
	r.With(middleware.RequireAuth(h.jwtSecret)).Get("/me", h.Me)
}

// Me returns the current session's username and role.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"username": middleware.UsernameFromContext(r.Context()),
		"role":     middleware.RoleFromContext(r.Context()),
	})
}
