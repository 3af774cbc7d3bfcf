package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/handler/http/response"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type MovementHandler interface {
	RecordSample(w http.ResponseWriter, r *http.Request)
	ListByAttendance(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type movementHandlerImpl struct {
	movementService movement.MovementService
	hub             *sse.Hub
}

func NewMovementHandler(movementService movement.MovementService, hub *sse.Hub) MovementHandler {
	return &movementHandlerImpl{
		movementService: movementService,
		hub:             hub,
	}
}

// RecordSample implements MovementHandler.
func (h *movementHandlerImpl) RecordSample(w http.ResponseWriter, r *http.Request) {
	var req movement.RecordSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.movementService.RecordSample(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// ListByAttendance implements MovementHandler.
func (h *movementHandlerImpl) ListByAttendance(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "id")

	events, err := h.movementService.ListByAttendance(r.Context(), attendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// ListByEmployee implements MovementHandler.
func (h *movementHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	now := time.Now().UTC()
	to := now
	from := now.AddDate(0, 0, -7)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "from must be formatted as YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "to must be formatted as YYYY-MM-DD", nil)
			return
		}
		// Inclusive end date
		to = parsed.AddDate(0, 0, 1)
	}

	events, err := h.movementService.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// Stream handles the SSE connection for real-time movement events.
func (h *movementHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "employeeID is required", nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
