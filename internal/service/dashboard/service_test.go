package dashboard

import (
	"testing"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }
func strPtr(s string) *string       { return &s }

func testSessions() []attendance.Session {
	day1 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	return []attendance.Session{
		{EmployeeID: "emp-1", CheckInTime: day1, CheckInPlaceName: strPtr("Main Office"), Status: attendance.StatusCheckedOut, TotalDurationSeconds: float64Ptr(8 * 3600)},
		{EmployeeID: "emp-2", CheckInTime: day1.Add(time.Hour), CheckInPlaceName: strPtr("Main Office"), Status: attendance.StatusCheckedOut, TotalDurationSeconds: float64Ptr(6 * 3600)},
		{EmployeeID: "emp-3", CheckInTime: day1, Status: attendance.StatusOnLeave},
		{EmployeeID: "emp-4", CheckInTime: day1, Status: attendance.StatusAbsent},
		{EmployeeID: "emp-1", CheckInTime: day2, CheckInPlaceName: strPtr("Warehouse"), Status: attendance.StatusCheckedIn},
	}
}

func TestFoldAttendanceStats(t *testing.T) {
	stats := foldAttendanceStats(testSessions())

	assert.EqualValues(t, 5, stats.TotalSessions)
	assert.EqualValues(t, 3, stats.Present)
	assert.EqualValues(t, 1, stats.OnLeave)
	assert.EqualValues(t, 1, stats.Absent)
	assert.InDelta(t, 60.0, stats.AttendanceRate, 0.001)
	assert.InDelta(t, 14.0, stats.TotalHours, 0.001)
	assert.InDelta(t, 7.0, stats.AverageHours, 0.001)
}

func TestFoldAttendanceStats_Empty(t *testing.T) {
	stats := foldAttendanceStats(nil)

	assert.EqualValues(t, 0, stats.TotalSessions)
	assert.Equal(t, 0.0, stats.AttendanceRate)
	assert.Equal(t, 0.0, stats.AverageHours)
}

func TestFoldHourlyTrend(t *testing.T) {
	buckets := foldHourlyTrend(testSessions())

	require.Len(t, buckets, 24)
	assert.EqualValues(t, 1, buckets[8].CheckIns)
	assert.EqualValues(t, 2, buckets[9].CheckIns)
	assert.EqualValues(t, 0, buckets[12].CheckIns)
}

func TestFoldDailyTrend(t *testing.T) {
	buckets := foldDailyTrend(testSessions())

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03-02", buckets[0].Date)
	assert.EqualValues(t, 2, buckets[0].Present)
	assert.EqualValues(t, 1, buckets[0].OnLeave)
	assert.EqualValues(t, 1, buckets[0].Absent)
	assert.InDelta(t, 7.0, buckets[0].AvgHours, 0.001)

	assert.Equal(t, "2026-03-03", buckets[1].Date)
	assert.EqualValues(t, 1, buckets[1].Present)
}

func TestFoldLocationCounts_OrderedByCount(t *testing.T) {
	counts := foldLocationCounts(testSessions())

	require.Len(t, counts, 2)
	assert.Equal(t, "Main Office", counts[0].PlaceName)
	assert.EqualValues(t, 2, counts[0].CheckIns)
	assert.Equal(t, "Warehouse", counts[1].PlaceName)
}

func TestFoldMovementSummary(t *testing.T) {
	summary := foldMovementSummary([]movement.Event{
		{Type: movement.EventSignificantMove},
		{Type: movement.EventSignificantMove},
		{Type: movement.EventStationaryStay},
		{Type: movement.EventLeftCheckInArea},
		{Type: movement.EventReturnedToCheckIn},
	})

	assert.EqualValues(t, 2, summary.SignificantMoves)
	assert.EqualValues(t, 1, summary.StationaryStays)
	assert.EqualValues(t, 1, summary.AreaExits)
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, parseDate("", fallback))
	assert.Equal(t, fallback, parseDate("not-a-date", fallback))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), parseDate("2026-03-02", fallback))
}
