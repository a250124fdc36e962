package handlers

import (
	"errors"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/alfagnish/supplychain-api/internal/storage"
	"github.com/go-chi/chi/v5"
)

// ImageHandler serves previously uploaded files under /uploads/.
type ImageHandler struct {
	storage storage.Provider
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(sp storage.Provider) *ImageHandler {
	return &ImageHandler{storage: sp}
}

// Routes registers the static upload route.
func (h *ImageHandler) Routes(r chi.Router) {
	r.Get("/uploads/*", h.ServeImage)
	r.Head("/uploads/*", h.ServeImage)
}

// ServeImage streams the object named by the path below /uploads/.
// Range and conditional requests are handled by http.ServeContent.
func (h *ImageHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if !validKey(rel) {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	key := strings.TrimPrefix(path.Clean("/"+rel), "/")

	obj, err := h.storage.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		log.Printf("serve %s: %v", key, err)
		writeError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	http.ServeContent(w, r, path.Base(key), obj.ModTime, obj.Body)
}

// validKey reports whether rel names a file below the uploads root. Only a
// whole ".." segment is refused; names such as "my..bag.png" are fine.
func validKey(rel string) bool {
	if rel == "" {
		return false
	}
	for _, seg := range strings.Split(strings.ReplaceAll(rel, `\`, "/"), "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
