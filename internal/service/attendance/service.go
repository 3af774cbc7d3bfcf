package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendance.SessionRepository
	center.CenterRepository
	center.PolicyRepository
	movementService movement.MovementService
	policy          *LocationPolicy
	locks           *lock.KeyedMutex
	now             func() time.Time
}

// NewAttendanceService creates the attendance service. locks is the
// process-wide keyed mutex shared with the movement and leave services, so
// every state transition for one employee serializes on the same lock.
func NewAttendanceService(
	sessionRepo attendance.SessionRepository,
	centerRepo center.CenterRepository,
	policyRepo center.PolicyRepository,
	movementService movement.MovementService,
	locks *lock.KeyedMutex,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		SessionRepository: sessionRepo,
		CenterRepository:  centerRepo,
		PolicyRepository:  policyRepo,
		movementService:   movementService,
		policy:            NewLocationPolicy(),
		locks:             locks,
		now:               time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	unlock := a.locks.Lock(req.EmployeeID)
	defer unlock()

	restriction, err := a.PolicyRepository.GetForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to get restriction policy: %w", err)
	}

	nowUTC := a.now().UTC()
	coord := geo.Coordinate{
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		CapturedAt:     nowUTC,
	}

	if !a.policy.IsCheckInAllowed(req.EmployeeID, coord, restriction) {
		return attendance.SessionResponse{}, attendance.ErrLocationNotAllowed
	}

	_, err = a.SessionRepository.GetOpenSession(ctx, req.EmployeeID)
	if err == nil {
		return attendance.SessionResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrNoOpenSession) {
		return attendance.SessionResponse{}, fmt.Errorf("failed to check for open session: %w", err)
	}

	session := attendance.Session{
		EmployeeID:       req.EmployeeID,
		CheckInTime:      nowUTC,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInPlaceName: req.PlaceName,
		Status:           attendance.StatusCheckedIn,
	}

	created, err := a.SessionRepository.Create(ctx, session)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return mapSessionToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	unlock := a.locks.Lock(req.EmployeeID)
	defer unlock()

	session, err := a.SessionRepository.GetOpenSession(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			// A retried checkout lands here after the first attempt already
			// closed the session. Replay the closed session instead of
			// erroring when the idempotency key matches.
			if replayed, ok := a.replayClosedSession(ctx, req); ok {
				return replayed, nil
			}
			return attendance.SessionResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	checkoutCenter, err := a.CenterRepository.GetByID(ctx, req.CenterID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to get attendance center: %w", err)
	}

	nowUTC := a.now().UTC()
	coord := geo.Coordinate{
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
		CapturedAt:     nowUTC,
	}

	if !a.policy.IsCheckOutAllowed(req.EmployeeID, coord, checkoutCenter) {
		return attendance.SessionResponse{}, attendance.ErrLocationNotAllowed
	}

	duration := math.Max(0, nowUTC.Sub(session.CheckInTime).Seconds())

	session.CheckOutTime = &nowUTC
	session.CheckOutLatitude = &req.Latitude
	session.CheckOutLongitude = &req.Longitude
	session.CheckOutPlaceName = req.PlaceName
	session.CheckOutKey = req.IdempotencyKey
	session.TotalDurationSeconds = &duration
	session.Status = attendance.StatusCheckedOut

	if err := a.SessionRepository.Close(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to close attendance session: %w", err)
	}

	// Finalize any stationary stay still accumulating for this session. The
	// checkout itself succeeded, so a flush failure is only logged.
	if a.movementService != nil {
		if _, err := a.movementService.FlushSession(ctx, session.ID); err != nil {
			slog.Error("failed to flush movement events on checkout", "attendance_id", session.ID, "error", err)
		}
	}

	return mapSessionToResponse(session), nil
}

// replayClosedSession returns the latest closed session when the retry's
// idempotency key matches the one that closed it.
func (a *AttendanceServiceImpl) replayClosedSession(ctx context.Context, req attendance.CheckOutRequest) (attendance.SessionResponse, bool) {
	if req.IdempotencyKey == nil {
		return attendance.SessionResponse{}, false
	}

	last, err := a.SessionRepository.GetLatestClosedSession(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SessionResponse{}, false
	}

	if last.CheckOutKey == nil || *last.CheckOutKey != *req.IdempotencyKey {
		return attendance.SessionResponse{}, false
	}

	return mapSessionToResponse(last), true
}

// GetSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionResponse, error) {
	session, err := a.SessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.SessionResponse{}, attendance.ErrSessionNotFound
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get attendance session: %w", err)
	}

	return mapSessionToResponse(session), nil
}

// ListSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	sessions, total, err := a.SessionRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list attendance sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, mapSessionToResponse(s))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}, nil
}

// mapSessionToResponse converts a Session entity to SessionResponse
func mapSessionToResponse(s attendance.Session) attendance.SessionResponse {
	var durationDisplay *string
	if s.TotalDurationSeconds != nil {
		display := utils.FormatDuration(*s.TotalDurationSeconds)
		durationDisplay = &display
	}

	return attendance.SessionResponse{
		ID:                s.ID,
		EmployeeID:        s.EmployeeID,
		CheckInTime:       s.CheckInTime.Format("2006-01-02 15:04:05"),
		CheckInLatitude:   s.CheckInLatitude,
		CheckInLongitude:  s.CheckInLongitude,
		CheckInPlaceName:  s.CheckInPlaceName,
		CheckOutTime:      timePtrToString(s.CheckOutTime),
		CheckOutLatitude:  s.CheckOutLatitude,
		CheckOutLongitude: s.CheckOutLongitude,
		CheckOutPlaceName: s.CheckOutPlaceName,
		Status:            string(s.Status),
		DurationSeconds:   s.TotalDurationSeconds,
		DurationDisplay:   durationDisplay,
	}
}
