package handlers

import (
	"log"
	"net/http"

	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/middleware"
	"github.com/alfagnish/supplychain-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// AccountsHandler serves the account list, the credential check and account
// creation.
type AccountsHandler struct {
	store     *store.Store
	hub       *events.Hub
	metrics   *metrics.Metrics
	jwtSecret string
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(s *store.Store, hub *events.Hub, m *metrics.Metrics, jwtSecret string) *AccountsHandler {
	return &AccountsHandler{store: s, hub: hub, metrics: m, jwtSecret: jwtSecret}
}

// Routes registers account routes on the given chi router.
func (h *AccountsHandler) Routes(r chi.Router) {
	r.Get("/authAll", h.List)
	r.Post("/auth/{username}/{password}", h.Check)
	r.Post("/addaccount", h.Add)
}

// List returns every account.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Credentials", "true")
	writeJSON(w, http.StatusOK, h.store.Accounts.All())
}

// Check looks up the account matching the username and password path
// parameters. A match also receives a session cookie usable with /me.
func (h *AccountsHandler) Check(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.store.Authenticate(chi.URLParam(r, "username"), chi.URLParam(r, "password"))
	if ok {
		token, err := middleware.GenerateToken(h.jwtSecret, acct.Username, acct.Role)
		if err != nil {
			log.Printf("auth check: token generation failed: %v", err)
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     middleware.CookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(middleware.TokenExpiry.Seconds()),
			})
		}
	}
	writeJSON(w, http.StatusOK, store.OneOrNone(acct, ok))
}

// Add appends a new account built from the JSON body.
func (h *AccountsHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fields, err := decodeFields(body)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	acct := h.store.Accounts.Insert(fields.Account())
	h.metrics.RecordInserted("accounts")
	h.hub.Publish(events.AccountCreated, "accounts", map[string]interface{}{
		"id":       acct.ID,
		"username": acct.Username,
		"role":     acct.Role,
	})

	log.Printf("account %d added", acct.ID)
	writeText(w, http.StatusOK, "Data inserted")
}
