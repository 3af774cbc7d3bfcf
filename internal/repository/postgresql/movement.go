package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type movementEventRepository struct {
	db *database.DB
}

func NewMovementEventRepository(db *database.DB) movement.EventRepository {
	return &movementEventRepository{db: db}
}

const movementEventColumns = `
	id, employee_id, attendance_id, type,
	from_latitude, from_longitude, to_latitude, to_longitude, distance_km,
	start_time, end_time, duration_seconds,
	check_in_latitude, check_in_longitude, created_at
`

func scanMovementEvent(row pgx.Row) (movement.Event, error) {
	var e movement.Event
	var eventType string

	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.AttendanceID, &eventType,
		&e.FromLatitude, &e.FromLongitude, &e.ToLatitude, &e.ToLongitude, &e.DistanceKm,
		&e.StartTime, &e.EndTime, &e.DurationSeconds,
		&e.CheckInLatitude, &e.CheckInLongitude, &e.CreatedAt,
	)
	if err != nil {
		return movement.Event{}, err
	}

	e.Type = movement.ParseEventType(eventType)
	return e, nil
}

// Create implements movement.EventRepository.
func (r *movementEventRepository) Create(ctx context.Context, e movement.Event) (movement.Event, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO movement_events (
			id, employee_id, attendance_id, type,
			from_latitude, from_longitude, to_latitude, to_longitude, distance_km,
			start_time, end_time, duration_seconds,
			check_in_latitude, check_in_longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		e.ID,
		e.EmployeeID,
		e.AttendanceID,
		string(e.Type),
		e.FromLatitude,
		e.FromLongitude,
		e.ToLatitude,
		e.ToLongitude,
		e.DistanceKm,
		e.StartTime,
		e.EndTime,
		e.DurationSeconds,
		e.CheckInLatitude,
		e.CheckInLongitude,
	).Scan(&e.CreatedAt)

	if err != nil {
		return movement.Event{}, fmt.Errorf("failed to create movement event: %w", err)
	}

	return e, nil
}

// ListByAttendance implements movement.EventRepository.
func (r *movementEventRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]movement.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + movementEventColumns + `
		FROM movement_events
		WHERE attendance_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement events: %w", err)
	}
	defer rows.Close()

	return collectMovementEvents(rows)
}

// ListByEmployee implements movement.EventRepository.
func (r *movementEventRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]movement.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + movementEventColumns + `
		FROM movement_events
		WHERE employee_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement events: %w", err)
	}
	defer rows.Close()

	return collectMovementEvents(rows)
}

// ListForRange implements movement.EventRepository.
func (r *movementEventRepository) ListForRange(ctx context.Context, from, to time.Time) ([]movement.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + movementEventColumns + `
		FROM movement_events
		WHERE start_time >= $1
		  AND start_time < $2
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement events: %w", err)
	}
	defer rows.Close()

	return collectMovementEvents(rows)
}

func collectMovementEvents(rows pgx.Rows) ([]movement.Event, error) {
	var events []movement.Event
	for rows.Next() {
		e, err := scanMovementEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movement events: %w", err)
	}

	return events, nil
}
