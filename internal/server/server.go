// Package server exposes the quoting engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dmarins/parcelamento/internal/cache"
	"github.com/dmarins/parcelamento/internal/catalog"
	"github.com/dmarins/parcelamento/internal/config"
	"github.com/dmarins/parcelamento/pkg/bulk"
	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/validation"
)

type handler struct {
	logger      *zap.Logger
	catalog     catalog.Catalog
	cache       cache.Cache
	bulkEngine  *bulk.Engine
	maxBodySize int64
}

// NewRouter constructs the HTTP router serving the quote API.
func NewRouter(logger *zap.Logger, cat catalog.Catalog, quoteCache cache.Cache, cfg config.ServerConfig) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quoteCache == nil {
		quoteCache = cache.NewMemory()
	}
	maxBodySize := cfg.MaxBodySizeBytes
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	h := &handler{
		logger:      logger,
		catalog:     cat,
		cache:       quoteCache,
		bulkEngine:  bulk.NewEngine(logger),
		maxBodySize: maxBodySize,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/quotes", h.handleQuote).Methods(http.MethodPost)
	r.HandleFunc("/api/trade-ins/validate", h.handleTradeInValidate).Methods(http.MethodPost)
	r.HandleFunc("/api/bulk/apply", h.handleBulkApply).Methods(http.MethodPost)
	r.HandleFunc("/api/health", h.handleHealth).Methods(http.MethodGet)
	return r
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return false
	}
	return true
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}

// respondEngineError maps engine errors onto HTTP statuses: bad numeric
// input is the caller's fault, catalog misses are 404, malformed
// configuration is ours.
func (h *handler) respondEngineError(w http.ResponseWriter, err error) {
	var numErr *validation.InvalidNumericInputError
	var confErr *validation.ConfigurationError
	switch {
	case errors.As(err, &numErr):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNoRateTable),
		errors.Is(err, catalog.ErrNoTradeInRange),
		errors.Is(err, catalog.ErrNoProduct):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &confErr):
		h.logger.Error("configuration error surfaced by request",
			zap.String("op", "server.respondEngineError"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func newQuoteID() string {
	return uuid.NewString()
}
