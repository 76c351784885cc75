package rest

import (
	"net/http"
	"strconv"

	"github.com/Gthulhu/cpupower/domain"
)

type UsageHistoryResponse struct {
	Channel int       `json:"channel"`
	Samples []float64 `json:"samples"`
}

// GetUsage returns the latest per-channel usage and the aggregate percentage.
func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report := h.Service.CurrentUsage(ctx)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.UsageReport](&report))
}

// GetUsageHistory returns up to 60 samples of one channel, oldest first.
func (h *Handler) GetUsageHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channel, err := strconv.Atoi(h.GetPathParam(r, "channel"))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid channel", err)
		return
	}
	samples, err := h.Service.UsageHistory(ctx, channel)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := UsageHistoryResponse{Channel: channel, Samples: samples}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[UsageHistoryResponse](&resp))
}
