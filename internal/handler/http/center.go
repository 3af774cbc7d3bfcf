package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CenterHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpsertPolicy(w http.ResponseWriter, r *http.Request)
	GetEmployeePolicy(w http.ResponseWriter, r *http.Request)
}

type centerHandlerImpl struct {
	centerService center.CenterService
}

func NewCenterHandler(centerService center.CenterService) CenterHandler {
	return &centerHandlerImpl{
		centerService: centerService,
	}
}

// Create implements CenterHandler.
func (h *centerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req center.CreateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.centerService.CreateCenter(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Center created", result)
}

// Get implements CenterHandler.
func (h *centerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.centerService.GetCenter(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements CenterHandler.
func (h *centerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	result, err := h.centerService.ListCenters(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements CenterHandler.
func (h *centerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req center.UpdateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.centerService.UpdateCenter(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Center updated", result)
}

// UpsertPolicy implements CenterHandler.
func (h *centerHandlerImpl) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req center.UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.centerService.UpsertPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Policy saved", result)
}

// GetEmployeePolicy implements CenterHandler.
func (h *centerHandlerImpl) GetEmployeePolicy(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.centerService.GetPolicyForEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
