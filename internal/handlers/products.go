package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/models"
	"github.com/alfagnish/supplychain-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// ProductsHandler serves product listing, lookup and creation.
type ProductsHandler struct {
	store   *store.Store
	hub     *events.Hub
	metrics *metrics.Metrics
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s *store.Store, hub *events.Hub, m *metrics.Metrics) *ProductsHandler {
	return &ProductsHandler{store: s, hub: hub, metrics: m}
}

// Routes registers product routes on the given chi router.
func (h *ProductsHandler) Routes(r chi.Router) {
	r.Get("/productAll", h.List)
	r.Get("/product/{serialNumber}", h.Get)
	r.Post("/addproduct", h.Add)
}

// List returns every product.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Products.All())
}

// Get returns the product for a serial number as a zero- or one-element array.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.ProductBySerial(chi.URLParam(r, "serialNumber"))
	writeJSON(w, http.StatusOK, store.OneOrNone(p, ok))
}

// decodeProduct accepts what decodeFields accepts, or a JSON string holding
// such a payload. An embedded string that does not parse yields empty fields.
func decodeProduct(body []byte) (models.Fields, error) {
	if len(body) == 0 || body[0] != '"' {
		return decodeFields(body)
	}

	var inner string
	if err := json.Unmarshal(body, &inner); err != nil {
		return nil, err
	}
	fields, err := decodeFields(bytes.TrimSpace([]byte(inner)))
	if err != nil {
		return models.Fields{}, nil
	}
	return fields, nil
}

// Add appends a new product built from the body.
func (h *ProductsHandler) Add(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fields, err := decodeProduct(body)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p := h.store.Products.Insert(fields.Product())
	h.metrics.RecordInserted("products")
	h.hub.Publish(events.ProductCreated, "products", p)

	log.Printf("product %d (%s) added", p.ID, p.SerialNumber)
	writeText(w, http.StatusOK, "Data inserted")
}
