package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Gthulhu/cpupower/domain"
)

type StartPiRequest struct {
	Digits int64 `json:"digits"`
}

func (h *Handler) GetPiWorkload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot := h.Service.GetPiWorkload(ctx)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.WorkloadSnapshot](&snapshot))
}

func (h *Handler) StartPiWorkload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req StartPiRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Service.StartPiWorkload(ctx, req.Digits); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	snapshot := h.Service.GetPiWorkload(ctx)
	h.JSONResponse(ctx, w, http.StatusAccepted, NewSuccessResponse[domain.WorkloadSnapshot](&snapshot))
}

func (h *Handler) CancelPiWorkload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Service.CancelPiWorkload(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	snapshot := h.Service.GetPiWorkload(ctx)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.WorkloadSnapshot](&snapshot))
}

// StreamPiWorkloadEvents relays workload events as server-sent events. The stream ends
// after the status event of the run or when the client goes away.
func (h *Handler) StreamPiWorkloadEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.ErrorResponse(ctx, w, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := h.Service.PiWorkloadEvents(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data)
			flusher.Flush()
			if event.Kind == domain.WorkloadEventStatus {
				return
			}
		}
	}
}
