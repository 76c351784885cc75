package rest

import (
	"net/http"
	"strconv"

	"github.com/Gthulhu/cpupower/domain"
)

type SetCoreRequest struct {
	Enabled bool `json:"enabled"`
}

type SetFrequencyRequest struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type SetGovernorRequest struct {
	Governor string `json:"governor"`
}

func (h *Handler) GetDeviceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := h.Service.GetDeviceStatus(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.DeviceStatus](status))
}

func (h *Handler) SetCoreEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	core, err := strconv.Atoi(h.GetPathParam(r, "core"))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid core", err)
		return
	}
	var req SetCoreRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Service.SetCoreEnabled(ctx, core, req.Enabled); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](&EmptyResponse{}))
}

func (h *Handler) SetScalingFrequency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetFrequencyRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Service.SetScalingFrequency(ctx, req.Min, req.Max); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](&EmptyResponse{}))
}

func (h *Handler) SetGovernor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetGovernorRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Service.SetGovernor(ctx, domain.ParseGovernorKind(req.Governor)); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](&EmptyResponse{}))
}
