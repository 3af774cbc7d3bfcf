package movement

import (
	"testing"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	anchorLat = 24.7136
	anchorLon = 46.6753
)

var checkInTime = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func startTracked(c *Classifier) {
	c.StartSession("att-1", "emp-1", geo.Coordinate{
		Latitude:   anchorLat,
		Longitude:  anchorLon,
		CapturedAt: checkInTime,
	})
}

func sample(lat, lon float64, minutesAfterCheckIn int) geo.Coordinate {
	return geo.Coordinate{
		Latitude:   lat,
		Longitude:  lon,
		CapturedAt: checkInTime.Add(time.Duration(minutesAfterCheckIn) * time.Minute),
	}
}

func TestClassifier_SignificantMove(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	// ~1.1km north of the anchor. One sample crosses both the reference and
	// anchor thresholds: a significant move plus leaving the check-in area.
	events := c.Observe("att-1", sample(anchorLat+0.01, anchorLon, 5))

	require.Len(t, events, 2)
	assert.Equal(t, movement.EventSignificantMove, events[0].Type)
	assert.InDelta(t, 1.11, events[0].DistanceKm, 0.02)
	assert.Equal(t, movement.EventLeftCheckInArea, events[1].Type)
	assert.Equal(t, anchorLat, events[1].FromLatitude)
}

func TestClassifier_SmallDriftProducesNothing(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	// ~55m away: below both thresholds.
	events := c.Observe("att-1", sample(anchorLat+0.0005, anchorLon, 5))

	assert.Empty(t, events)
}

func TestClassifier_StationaryStayEmittedOnFlush(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	// Samples every 5 minutes for 20 minutes, all within ~50m of the anchor.
	for i := 1; i <= 4; i++ {
		events := c.Observe("att-1", sample(anchorLat+0.0004, anchorLon, i*5))
		assert.Empty(t, events)
	}

	events := c.Flush("att-1")

	require.Len(t, events, 1)
	stay := events[0]
	assert.Equal(t, movement.EventStationaryStay, stay.Type)
	assert.Equal(t, checkInTime, stay.StartTime)
	require.NotNil(t, stay.EndTime)
	assert.Equal(t, checkInTime.Add(20*time.Minute), *stay.EndTime)
	require.NotNil(t, stay.DurationSeconds)
	assert.Equal(t, (20 * time.Minute).Seconds(), *stay.DurationSeconds)

	// The session is no longer tracked after the flush.
	assert.False(t, c.Tracking("att-1"))
}

func TestClassifier_StationaryStayEmittedWhenMovementResumes(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	// Dwell for 30 minutes, then move 1.2km away.
	c.Observe("att-1", sample(anchorLat, anchorLon, 30))
	events := c.Observe("att-1", sample(anchorLat+0.011, anchorLon, 35))

	require.Len(t, events, 3)
	assert.Equal(t, movement.EventStationaryStay, events[0].Type)
	require.NotNil(t, events[0].DurationSeconds)
	assert.Equal(t, (30 * time.Minute).Seconds(), *events[0].DurationSeconds)
	assert.Equal(t, movement.EventSignificantMove, events[1].Type)
	assert.Equal(t, movement.EventLeftCheckInArea, events[2].Type)
}

func TestClassifier_ShortDwellIsNotAStay(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	c.Observe("att-1", sample(anchorLat, anchorLon, 10))

	// 10 minutes of dwell is below the threshold.
	assert.Empty(t, c.Flush("att-1"))
}

func TestClassifier_ReturnedToCheckIn(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	c.Observe("att-1", sample(anchorLat+0.02, anchorLon, 10))
	events := c.Observe("att-1", sample(anchorLat+0.02, anchorLon, 11))
	assert.Empty(t, events)

	events = c.Observe("att-1", sample(anchorLat, anchorLon, 20))

	var types []movement.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, movement.EventReturnedToCheckIn)
}

func TestClassifier_OutOfOrderSamplesDropped(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	c.Observe("att-1", sample(anchorLat+0.0004, anchorLon, 10))

	// Earlier timestamp than the last processed sample.
	events := c.Observe("att-1", sample(anchorLat+0.02, anchorLon, 5))
	assert.Empty(t, events)

	// Equal timestamp is dropped too.
	events = c.Observe("att-1", sample(anchorLat+0.02, anchorLon, 10))
	assert.Empty(t, events)
}

func TestClassifier_UnknownSessionIgnored(t *testing.T) {
	c := NewClassifier()

	events := c.Observe("att-unknown", sample(anchorLat, anchorLon, 5))
	assert.Nil(t, events)
	assert.Nil(t, c.Flush("att-unknown"))
}

func TestClassifier_StayNotDoubleCountedAfterEmit(t *testing.T) {
	c := NewClassifier()
	startTracked(c)

	// First stay: 20 minutes at the anchor, ended by a significant move.
	c.Observe("att-1", sample(anchorLat, anchorLon, 20))
	events := c.Observe("att-1", sample(anchorLat+0.011, anchorLon, 25))
	require.NotEmpty(t, events)
	assert.Equal(t, movement.EventStationaryStay, events[0].Type)

	// Only 10 minutes at the new reference point: no second stay on flush.
	c.Observe("att-1", sample(anchorLat+0.011, anchorLon, 35))
	assert.Empty(t, c.Flush("att-1"))
}
