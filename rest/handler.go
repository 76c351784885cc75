package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/errs"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse represents the success response structure
type SuccessResponse[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

type EmptyResponse struct{}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success: true,
		Data:    data,
	}
}

type Params struct {
	fx.In
	Service     domain.Service
	TokenConfig config.TokenConfig
	Gatherer    prometheus.Gatherer `optional:"true"`
}

func NewHandler(params Params) (*Handler, error) {
	gatherer := params.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		Service:     params.Service,
		tokenConfig: params.TokenConfig,
		gatherer:    gatherer,
	}, nil
}

type Handler struct {
	Service     domain.Service
	tokenConfig config.TokenConfig
	gatherer    prometheus.Gatherer
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	if err != nil {
		return err
	}
	return nil
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Debug().Err(err).Int("status", status).Msg(errMsg)
	}
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError maps service errors to HTTP statuses.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if httpErr, ok := errs.IsHTTPStatusError(err); ok {
		h.ErrorResponse(ctx, w, httpErr.StatusCode, httpErr.Message, httpErr.OriginalErr)
		return
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.ErrorResponse(ctx, w, http.StatusUnprocessableEntity, verr.Message, err)
		return
	}
	h.ErrorResponse(ctx, w, statusOf(err), err.Error(), err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionBusy),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrWorkloadRunning),
		errors.Is(err, domain.ErrWorkloadIdle):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrChannelNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownParameter),
		errors.Is(err, domain.ErrNotTunable),
		errors.Is(err, domain.ErrCoreOutOfRange),
		errors.Is(err, domain.ErrBootCore),
		errors.Is(err, domain.ErrFrequencyUnavailable),
		errors.Is(err, domain.ErrInvalidFrequencyRange),
		errors.Is(err, domain.ErrGovernorUnavailable),
		errors.Is(err, domain.ErrInvalidDigits):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTokenUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":   "CPU Power Management API Server",
		"version":   "1.0.0",
		"endpoints": "/api/v1/usage (GET), /api/v1/device (GET), /api/v1/governor/session (GET, POST, DELETE), /api/v1/workload/pi (GET, POST, DELETE), /metrics (GET), /health (GET)",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "CPU Power Management API Server",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
