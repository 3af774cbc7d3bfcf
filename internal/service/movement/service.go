package movement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/sse"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/utils"
)

type MovementServiceImpl struct {
	movement.EventRepository
	sessionRepo attendance.SessionRepository
	classifier  *Classifier
	hub         *sse.Hub
	locks       *lock.KeyedMutex
}

// NewMovementService creates the movement service. locks is the process-wide
// keyed mutex shared with the attendance and leave services, so a sample
// cannot classify against a session that a concurrent checkout is closing.
func NewMovementService(
	eventRepo movement.EventRepository,
	sessionRepo attendance.SessionRepository,
	hub *sse.Hub,
	locks *lock.KeyedMutex,
) movement.MovementService {
	return &MovementServiceImpl{
		EventRepository: eventRepo,
		sessionRepo:     sessionRepo,
		classifier:      NewClassifier(),
		hub:             hub,
		locks:           locks,
	}
}

// RecordSample implements movement.MovementService.
func (m *MovementServiceImpl) RecordSample(ctx context.Context, req movement.RecordSampleRequest) ([]movement.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	capturedAt, err := time.Parse(time.RFC3339, req.CapturedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse captured_at: %w", err)
	}

	// Classification is order dependent, so samples for one employee are
	// processed strictly serially.
	unlock := m.locks.Lock(req.EmployeeID)
	defer unlock()

	session, err := m.sessionRepo.GetOpenSession(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			// Tracking is purely observational: no session means nothing to
			// classify, not an error.
			return []movement.EventResponse{}, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	if !m.classifier.Tracking(session.ID) {
		m.classifier.StartSession(session.ID, session.EmployeeID, geo.Coordinate{
			Latitude:   session.CheckInLatitude,
			Longitude:  session.CheckInLongitude,
			CapturedAt: session.CheckInTime,
		})
	}

	events := m.classifier.Observe(session.ID, geo.Coordinate{
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		CapturedAt:     capturedAt.UTC(),
	})

	return m.persistAndPublish(ctx, events)
}

// FlushSession implements movement.MovementService.
func (m *MovementServiceImpl) FlushSession(ctx context.Context, attendanceID string) ([]movement.EventResponse, error) {
	events := m.classifier.Flush(attendanceID)
	return m.persistAndPublish(ctx, events)
}

// ListByAttendance implements movement.MovementService.
func (m *MovementServiceImpl) ListByAttendance(ctx context.Context, attendanceID string) ([]movement.EventResponse, error) {
	events, err := m.EventRepository.ListByAttendance(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement events: %w", err)
	}

	return mapEventsToResponses(events), nil
}

// ListByEmployee implements movement.MovementService.
func (m *MovementServiceImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]movement.EventResponse, error) {
	events, err := m.EventRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement events: %w", err)
	}

	return mapEventsToResponses(events), nil
}

func (m *MovementServiceImpl) persistAndPublish(ctx context.Context, events []movement.Event) ([]movement.EventResponse, error) {
	responses := make([]movement.EventResponse, 0, len(events))
	for _, e := range events {
		created, err := m.EventRepository.Create(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("failed to create movement event: %w", err)
		}

		resp := mapEventToResponse(created)
		responses = append(responses, resp)

		if m.hub != nil {
			m.hub.Publish(created.EmployeeID, sse.Event{
				EmployeeID: created.EmployeeID,
				Event:      string(created.Type),
				Data:       resp,
			})
		}
	}
	return responses, nil
}

func mapEventsToResponses(events []movement.Event) []movement.EventResponse {
	responses := make([]movement.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, mapEventToResponse(e))
	}
	return responses
}

func mapEventToResponse(e movement.Event) movement.EventResponse {
	var endTime *string
	if e.EndTime != nil {
		formatted := e.EndTime.Format(time.RFC3339)
		endTime = &formatted
	}

	return movement.EventResponse{
		ID:              e.ID,
		EmployeeID:      e.EmployeeID,
		AttendanceID:    e.AttendanceID,
		Type:            string(e.Type),
		FromLatitude:    e.FromLatitude,
		FromLongitude:   e.FromLongitude,
		ToLatitude:      e.ToLatitude,
		ToLongitude:     e.ToLongitude,
		DistanceKm:      e.DistanceKm,
		DistanceDisplay: utils.FormatDistanceKm(e.DistanceKm),
		StartTime:       e.StartTime.Format(time.RFC3339),
		EndTime:         endTime,
		DurationSeconds: e.DurationSeconds,
	}
}
