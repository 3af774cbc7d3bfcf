package movement

import (
	"sync"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
)

// tracker holds the classification state for one open session.
type tracker struct {
	attendanceID string
	employeeID   string

	anchor geo.Coordinate

	// ref is the last recorded reference point; refSince is when the first
	// sample arrived there. Dwell time at ref drives stationary stays.
	ref      geo.Coordinate
	refSince time.Time

	lastSampleAt time.Time
	withinAnchor bool
}

// Classifier turns a time-ordered stream of location samples into movement
// events. State is per session; samples with timestamps at or before the
// last processed one are dropped.
type Classifier struct {
	mu       sync.Mutex
	trackers map[string]*tracker
}

func NewClassifier() *Classifier {
	return &Classifier{
		trackers: make(map[string]*tracker),
	}
}

// StartSession begins tracking a session anchored at the check-in coordinate.
// Starting an already-tracked session is a no-op.
func (c *Classifier) StartSession(attendanceID, employeeID string, anchor geo.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.trackers[attendanceID]; ok {
		return
	}

	c.trackers[attendanceID] = &tracker{
		attendanceID: attendanceID,
		employeeID:   employeeID,
		anchor:       anchor,
		ref:          anchor,
		refSince:     anchor.CapturedAt,
		lastSampleAt: anchor.CapturedAt,
		withinAnchor: true,
	}
}

// Tracking reports whether a session is currently being tracked.
func (c *Classifier) Tracking(attendanceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.trackers[attendanceID]
	return ok
}

// Observe classifies one sample and returns the events it produced. Unknown
// sessions and out-of-order samples produce no events.
func (c *Classifier) Observe(attendanceID string, sample geo.Coordinate) []movement.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	tr, ok := c.trackers[attendanceID]
	if !ok {
		return nil
	}

	if !sample.CapturedAt.After(tr.lastSampleAt) {
		return nil
	}

	var events []movement.Event

	distRefKm := geo.DistanceKm(tr.ref, sample)
	distAnchorKm := geo.DistanceKm(tr.anchor, sample)

	if distRefKm >= movement.SignificantMoveKm {
		// Movement resumed: close out any dwell at the old reference point
		// before recording the move.
		if stay, ok := tr.finalizeStay(); ok {
			events = append(events, stay)
		}
		events = append(events, movement.Event{
			EmployeeID:       tr.employeeID,
			AttendanceID:     tr.attendanceID,
			Type:             movement.EventSignificantMove,
			FromLatitude:     tr.ref.Latitude,
			FromLongitude:    tr.ref.Longitude,
			ToLatitude:       sample.Latitude,
			ToLongitude:      sample.Longitude,
			DistanceKm:       distRefKm,
			StartTime:        sample.CapturedAt,
			CheckInLatitude:  tr.anchor.Latitude,
			CheckInLongitude: tr.anchor.Longitude,
		})
		tr.ref = sample
		tr.refSince = sample.CapturedAt
	} else if geo.DistanceMeters(tr.ref, sample) > movement.StationaryToleranceMeters {
		// Drifted off the reference point without a significant move. Any
		// accumulated dwell ends here and the reference moves with the
		// employee.
		if stay, ok := tr.finalizeStay(); ok {
			events = append(events, stay)
		}
		tr.ref = sample
		tr.refSince = sample.CapturedAt
	}

	if tr.withinAnchor && distAnchorKm >= movement.SignificantMoveKm {
		events = append(events, movement.Event{
			EmployeeID:       tr.employeeID,
			AttendanceID:     tr.attendanceID,
			Type:             movement.EventLeftCheckInArea,
			FromLatitude:     tr.anchor.Latitude,
			FromLongitude:    tr.anchor.Longitude,
			ToLatitude:       sample.Latitude,
			ToLongitude:      sample.Longitude,
			DistanceKm:       distAnchorKm,
			StartTime:        sample.CapturedAt,
			CheckInLatitude:  tr.anchor.Latitude,
			CheckInLongitude: tr.anchor.Longitude,
		})
		tr.withinAnchor = false
	} else if !tr.withinAnchor && distAnchorKm < movement.SignificantMoveKm {
		events = append(events, movement.Event{
			EmployeeID:       tr.employeeID,
			AttendanceID:     tr.attendanceID,
			Type:             movement.EventReturnedToCheckIn,
			FromLatitude:     tr.ref.Latitude,
			FromLongitude:    tr.ref.Longitude,
			ToLatitude:       sample.Latitude,
			ToLongitude:      sample.Longitude,
			DistanceKm:       distAnchorKm,
			StartTime:        sample.CapturedAt,
			CheckInLatitude:  tr.anchor.Latitude,
			CheckInLongitude: tr.anchor.Longitude,
		})
		tr.withinAnchor = true
	}

	tr.lastSampleAt = sample.CapturedAt

	return events
}

// Flush finalizes a session's pending stationary stay and stops tracking it.
func (c *Classifier) Flush(attendanceID string) []movement.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	tr, ok := c.trackers[attendanceID]
	if !ok {
		return nil
	}
	delete(c.trackers, attendanceID)

	if stay, ok := tr.finalizeStay(); ok {
		return []movement.Event{stay}
	}
	return nil
}

// finalizeStay emits the dwell at the current reference point when it meets
// the stationary threshold. The stay spans the first sample at the reference
// point through the last processed sample.
func (t *tracker) finalizeStay() (movement.Event, bool) {
	dwell := t.lastSampleAt.Sub(t.refSince)
	if dwell < movement.StationaryDwellMinutes*time.Minute {
		return movement.Event{}, false
	}

	end := t.lastSampleAt
	duration := dwell.Seconds()
	stay := movement.Event{
		EmployeeID:       t.employeeID,
		AttendanceID:     t.attendanceID,
		Type:             movement.EventStationaryStay,
		FromLatitude:     t.ref.Latitude,
		FromLongitude:    t.ref.Longitude,
		ToLatitude:       t.ref.Latitude,
		ToLongitude:      t.ref.Longitude,
		DistanceKm:       0,
		StartTime:        t.refSince,
		EndTime:          &end,
		DurationSeconds:  &duration,
		CheckInLatitude:  t.anchor.Latitude,
		CheckInLongitude: t.anchor.Longitude,
	}

	// The dwell ended; restart the clock at the same reference point so a
	// continued stay is not double counted.
	t.refSince = t.lastSampleAt

	return stay, true
}
