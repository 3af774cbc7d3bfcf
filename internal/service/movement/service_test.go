package movement

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory movement.EventRepository.
type fakeEventRepo struct {
	events []movement.Event
	nextID int
}

func (f *fakeEventRepo) Create(ctx context.Context, e movement.Event) (movement.Event, error) {
	f.nextID++
	e.ID = "event-" + strconv.Itoa(f.nextID)
	e.CreatedAt = time.Now().UTC()
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]movement.Event, error) {
	var results []movement.Event
	for _, e := range f.events {
		if e.AttendanceID == attendanceID {
			results = append(results, e)
		}
	}
	return results, nil
}

func (f *fakeEventRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]movement.Event, error) {
	var results []movement.Event
	for _, e := range f.events {
		if e.EmployeeID == employeeID {
			results = append(results, e)
		}
	}
	return results, nil
}

func (f *fakeEventRepo) ListForRange(ctx context.Context, from, to time.Time) ([]movement.Event, error) {
	return f.events, nil
}

// stubSessionRepo serves one open session.
type stubSessionRepo struct {
	open *attendance.Session
}

func (s *stubSessionRepo) Create(ctx context.Context, sess attendance.Session) (attendance.Session, error) {
	return sess, nil
}

func (s *stubSessionRepo) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (s *stubSessionRepo) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	if s.open != nil && s.open.EmployeeID == employeeID {
		return *s.open, nil
	}
	return attendance.Session{}, attendance.ErrNoOpenSession
}

func (s *stubSessionRepo) GetLatestClosedSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (s *stubSessionRepo) Close(ctx context.Context, sess attendance.Session) error { return nil }

func (s *stubSessionRepo) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	return nil, 0, nil
}

func (s *stubSessionRepo) ListForRange(ctx context.Context, from, to time.Time) ([]attendance.Session, error) {
	return nil, nil
}

func (s *stubSessionRepo) MarkOnLeave(ctx context.Context, employeeID string, startDate, endDate time.Time) error {
	return nil
}

func (s *stubSessionRepo) MarkAbsent(ctx context.Context, employeeID string, date time.Time) error {
	return nil
}

func (s *stubSessionRepo) ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	return nil, nil
}

func openTestSession() *attendance.Session {
	return &attendance.Session{
		ID:               "att-1",
		EmployeeID:       "emp-1",
		CheckInTime:      checkInTime,
		CheckInLatitude:  anchorLat,
		CheckInLongitude: anchorLon,
		Status:           attendance.StatusCheckedIn,
	}
}

func TestMovementService_RecordSample_NoOpenSession(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewMovementService(repo, &stubSessionRepo{}, nil, lock.NewKeyedMutex())

	events, err := svc.RecordSample(context.Background(), movement.RecordSampleRequest{
		EmployeeID: "emp-1",
		Latitude:   anchorLat,
		Longitude:  anchorLon,
		CapturedAt: checkInTime.Add(5 * time.Minute).Format(time.RFC3339),
	})

	// No session means nothing to classify, not an error.
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, repo.events)
}

func TestMovementService_RecordSample_PersistsAndPublishes(t *testing.T) {
	repo := &fakeEventRepo{}
	hub := sse.NewHub()
	svc := NewMovementService(repo, &stubSessionRepo{open: openTestSession()}, hub, lock.NewKeyedMutex())

	stream, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// 1.1km from the check-in point: significant move plus area exit.
	events, err := svc.RecordSample(context.Background(), movement.RecordSampleRequest{
		EmployeeID: "emp-1",
		Latitude:   anchorLat + 0.01,
		Longitude:  anchorLon,
		CapturedAt: checkInTime.Add(5 * time.Minute).Format(time.RFC3339),
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(movement.EventSignificantMove), events[0].Type)
	assert.NotEmpty(t, events[0].ID)
	assert.Len(t, repo.events, 2)

	published := <-stream
	assert.Equal(t, "emp-1", published.EmployeeID)
	assert.Equal(t, string(movement.EventSignificantMove), published.Event)
}

func TestMovementService_RecordSample_InvalidTimestamp(t *testing.T) {
	svc := NewMovementService(&fakeEventRepo{}, &stubSessionRepo{open: openTestSession()}, nil, lock.NewKeyedMutex())

	_, err := svc.RecordSample(context.Background(), movement.RecordSampleRequest{
		EmployeeID: "emp-1",
		Latitude:   anchorLat,
		Longitude:  anchorLon,
		CapturedAt: "yesterday",
	})

	assert.Error(t, err)
}

func TestMovementService_FlushSession_PersistsPendingStay(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewMovementService(repo, &stubSessionRepo{open: openTestSession()}, nil, lock.NewKeyedMutex())
	ctx := context.Background()

	// Dwell near the check-in point past the stationary threshold.
	for i := 1; i <= 4; i++ {
		_, err := svc.RecordSample(ctx, movement.RecordSampleRequest{
			EmployeeID: "emp-1",
			Latitude:   anchorLat + 0.0004,
			Longitude:  anchorLon,
			CapturedAt: checkInTime.Add(time.Duration(i*5) * time.Minute).Format(time.RFC3339),
		})
		require.NoError(t, err)
	}
	assert.Empty(t, repo.events)

	flushed, err := svc.FlushSession(ctx, "att-1")
	require.NoError(t, err)
	require.Len(t, flushed, 1)
	assert.Equal(t, string(movement.EventStationaryStay), flushed[0].Type)
	assert.Len(t, repo.events, 1)
}
