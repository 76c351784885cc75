package rest

import (
	"net/http"

	"github.com/Gthulhu/cpupower/domain"
)

type GovernorSpecsResponse struct {
	Governor   domain.GovernorKind    `json:"governor"`
	Parameters []domain.ParameterView `json:"parameters"`
}

type OpenSessionRequest struct {
	Governor string `json:"governor"`
}

type SetSessionFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *Handler) GetGovernorSpecs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := domain.ParseGovernorKind(h.GetPathParam(r, "governor"))
	params, err := h.Service.GovernorSpecs(ctx, kind)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := GovernorSpecsResponse{Governor: kind, Parameters: params}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[GovernorSpecsResponse](&resp))
}

// OpenGovernorSession opens the edit session; 409 while another one is open.
func (h *Handler) OpenGovernorSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req OpenSessionRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	view, err := h.Service.OpenGovernorSession(ctx, domain.ParseGovernorKind(req.Governor))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusCreated, NewSuccessResponse[domain.SessionView](view))
}

func (h *Handler) GetGovernorSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.Service.GetGovernorSession(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.SessionView](view))
}

// SetGovernorSessionField edits one field. An invalid value is not an error: the
// returned session carries the validation message.
func (h *Handler) SetGovernorSessionField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetSessionFieldRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	view, err := h.Service.SetGovernorSessionField(ctx, req.Name, req.Value)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.SessionView](view))
}

// CommitGovernorSession writes the session; 422 with the validation message when invalid.
func (h *Handler) CommitGovernorSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.Service.CommitGovernorSession(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[domain.CommitReport](report))
}

func (h *Handler) CancelGovernorSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Service.CancelGovernorSession(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](&EmptyResponse{}))
}
