package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRepo(t *testing.T) (attendance.SessionRepository, *TestDatabaseSetup) {
	setup, err := NewTestDatabase()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}

	require.NoError(t, setup.TruncateAllTables(context.Background()))
	return postgresql.NewSessionRepository(setup.DB), setup
}

func TestSessionRepository_CreateAndGetOpen(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	place := "Main Office"
	created, err := repo.Create(ctx, attendance.Session{
		EmployeeID:       "emp-1",
		CheckInTime:      time.Now().UTC(),
		CheckInLatitude:  24.7136,
		CheckInLongitude: 46.6753,
		CheckInPlaceName: &place,
		Status:           attendance.StatusCheckedIn,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	open, err := repo.GetOpenSession(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, open.ID)
	assert.True(t, open.IsOpen())
}

func TestSessionRepository_GetOpenSession_NoneOpen(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	_, err := repo.GetOpenSession(context.Background(), "emp-none")
	assert.True(t, errors.Is(err, attendance.ErrNoOpenSession))
}

func TestSessionRepository_Close(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	created, err := repo.Create(ctx, attendance.Session{
		EmployeeID:       "emp-2",
		CheckInTime:      checkIn,
		CheckInLatitude:  24.7136,
		CheckInLongitude: 46.6753,
		Status:           attendance.StatusCheckedIn,
	})
	require.NoError(t, err)

	checkOut := time.Now().UTC()
	lat, lon := 24.7140, 46.6760
	key := "idem-1"
	duration := checkOut.Sub(checkIn).Seconds()

	created.CheckOutTime = &checkOut
	created.CheckOutLatitude = &lat
	created.CheckOutLongitude = &lon
	created.CheckOutKey = &key
	created.Status = attendance.StatusCheckedOut
	created.TotalDurationSeconds = &duration

	require.NoError(t, repo.Close(ctx, created))

	// Closing again must fail: the session is no longer open.
	err = repo.Close(ctx, created)
	assert.True(t, errors.Is(err, attendance.ErrNoOpenSession))

	closed, err := repo.GetLatestClosedSession(ctx, "emp-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, closed.ID)
	require.NotNil(t, closed.CheckOutKey)
	assert.Equal(t, key, *closed.CheckOutKey)
}

func TestSessionRepository_MarkAbsent_SkipsExistingDay(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	day := time.Now().UTC().Truncate(24 * time.Hour)

	_, err := repo.Create(ctx, attendance.Session{
		EmployeeID:       "emp-3",
		CheckInTime:      day.Add(9 * time.Hour),
		CheckInLatitude:  24.7136,
		CheckInLongitude: 46.6753,
		Status:           attendance.StatusCheckedIn,
	})
	require.NoError(t, err)

	require.NoError(t, repo.MarkAbsent(ctx, "emp-3", day))

	sessions, total, err := repo.List(ctx, attendance.SessionFilter{EmployeeID: "emp-3"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, attendance.StatusCheckedIn, sessions[0].Status)
}
