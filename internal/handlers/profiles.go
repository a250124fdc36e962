package handlers

import (
	"log"
	"net/http"

	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// ProfilesHandler serves profile listing, lookup and creation.
type ProfilesHandler struct {
	store   *store.Store
	hub     *events.Hub
	metrics *metrics.Metrics
}

// NewProfilesHandler creates a new ProfilesHandler.
func NewProfilesHandler(s *store.Store, hub *events.Hub, m *metrics.Metrics) *ProfilesHandler {
	return &ProfilesHandler{store: s, hub: hub, metrics: m}
}

// Routes registers profile routes on the given chi router.
func (h *ProfilesHandler) Routes(r chi.Router) {
	r.Get("/profileAll", h.List)
	r.Get("/profile/{username}", h.Get)
	r.Post("/addprofile", h.Add)
}

// List returns every profile.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Profiles.All())
}

// Get returns the profile for a username as a zero- or one-element array.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	p, ok := h.store.ProfileByUsername(username)
	writeJSON(w, http.StatusOK, store.OneOrNone(p, ok))
}

// Add appends a new profile built from the JSON body.
func (h *ProfilesHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	p := h.store.Profiles.Insert(fields.Profile())
	h.metrics.RecordInserted("profiles")
	h.hub.Publish(events.ProfileCreated, "profiles", p)

	log.Printf("profile %d added", p.ID)
	writeText(w, http.StatusOK, "Profile inserted")
}
