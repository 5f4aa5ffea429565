package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"plant-catalog/logger"
	"plant-catalog/metrics"
	"plant-catalog/service"

	"github.com/gorilla/mux"
)

const defaultMaxBodyBytes = 1 << 20

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc          service.ServiceInterface
	log          logger.Logger
	maxBodyBytes int64
}

// NewHandler returns a Handler instance. A non-positive maxBodyBytes falls
// back to 1 MiB.
func NewHandler(s service.ServiceInterface, log logger.Logger, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{svc: s, log: log.Named("http"), maxBodyBytes: maxBodyBytes}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(requestIDMiddleware, h.accessLogMiddleware, metricsMiddleware)

	// Plants
	r.HandleFunc("/plants", h.ListPlants).Methods(http.MethodGet)
	r.HandleFunc("/plants", h.CreatePlant).Methods(http.MethodPost)
	r.HandleFunc("/plants/{id:[0-9]+}", h.GetPlant).Methods(http.MethodGet)

	// Ops
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, "not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
}

// internalError logs err and answers with a generic 500.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(r.Context(), msg,
		logger.String("request_id", requestIDFrom(r.Context())),
		logger.String("path", r.URL.Path),
		logger.Error(err),
	)
	writeErr(w, http.StatusInternalServerError, "internal server error")
}

// --- Handler ---

// ListPlants handles GET /plants
func (h *Handler) ListPlants(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.ListPlants(r.Context())
	if err != nil {
		h.internalError(w, r, "list plants failed", err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// CreatePlant handles POST /plants
// body: { "name": "...", "image": "...", "price": 12.5 }
func (h *Handler) CreatePlant(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	req, err := decodeCreatePlant(r.Body)
	if err != nil {
		var fe *fieldError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &fe):
			metrics.RecordValidationFailure(fe.Field)
			writeJSON(w, http.StatusBadRequest, map[string]map[string]string{"message": {fe.Field: fe.Help}})
		case errors.As(err, &tooLarge):
			writeErr(w, http.StatusRequestEntityTooLarge, "request body too large")
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		}
		return
	}

	p, err := h.svc.CreatePlant(r.Context(), req.Name, req.Image, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlant) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		h.internalError(w, r, "create plant failed", err)
		return
	}
	metrics.RecordPlantCreated()
	writeJSON(w, http.StatusCreated, p)
}

// GetPlant handles GET /plants/{id}
func (h *Handler) GetPlant(w http.ResponseWriter, r *http.Request) {
	// the route only matches digits; ParseInt can still overflow
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErr(w, http.StatusNotFound, "Plant not found")
		return
	}

	p, err := h.svc.GetPlant(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlantNotFound) {
			writeErr(w, http.StatusNotFound, "Plant not found")
			return
		}
		h.internalError(w, r, "get plant failed", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
