package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Upload groups. Each maps to a directory under the uploads root and a
// /uploads/<group>/ public path prefix.
const (
	GroupProfile = "profile"
	GroupProduct = "product"
)

// UploadHandler receives a single image for one upload group and stores it
// under a timestamped name.
type UploadHandler struct {
	group    string
	storage  storage.Provider
	hub      *events.Hub
	metrics  *metrics.Metrics
	maxBytes int64
	now      func() time.Time
}

// NewUploadHandler creates an UploadHandler for group. maxUploadSizeMB of 0
// disables the size cap.
func NewUploadHandler(group string, sp storage.Provider, hub *events.Hub, m *metrics.Metrics, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		group:    group,
		storage:  sp,
		hub:      hub,
		metrics:  m,
		maxBytes: maxUploadSizeMB << 20,
		now:      time.Now,
	}
}

// Routes registers the upload route for this handler's group.
func (h *UploadHandler) Routes(r chi.Router) {
	r.Post("/upload/"+h.group, h.Upload)
}

// uploadResponse is returned for a stored file.
type uploadResponse struct {
	Success   bool   `json:"success"`
	ImagePath string `json:"imagePath"`
	Filename  string `json:"filename"`
}

// Upload reads the "image" form file and saves it as
// <unix-millis>-<original name>.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		if r.ContentLength > h.maxBytes {
			writeError(w, http.StatusRequestEntityTooLarge, h.tooLarge())
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	file, fh, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, h.tooLarge())
			return
		}
		writeText(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("%d-%s", h.now().UnixMilli(), sanitizeFilename(fh.Filename))
	key := h.group + "/" + filename

	if err := h.storage.Save(r.Context(), key, file, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		log.Printf("upload %s: %v", key, err)
		writeError(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}

	resp := uploadResponse{
		Success:   true,
		ImagePath: "/uploads/" + key,
		Filename:  filename,
	}
	h.metrics.FileUploaded(h.group)
	h.hub.Publish(events.UploadCreated, h.group, resp)

	log.Printf("%s image uploaded: %s (%d bytes)", h.group, filename, fh.Size)
	writeJSON(w, http.StatusOK, resp)
}

func (h *UploadHandler) tooLarge() string {
	return fmt.Sprintf("upload exceeds maximum size of %d MB", h.maxBytes>>20)
}

// sanitizeFilename keeps only the final path element of a client-supplied
// name so the stored file cannot leave its group directory.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	switch base {
	case "", ".", "..", "/":
		return "upload"
	}
	return base
}
