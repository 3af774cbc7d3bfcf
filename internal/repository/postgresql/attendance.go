package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `
	id, employee_id,
	check_in_time, check_in_latitude, check_in_longitude, check_in_place_name,
	check_out_time, check_out_latitude, check_out_longitude, check_out_place_name,
	check_out_key, status, total_duration_seconds,
	created_at, updated_at
`

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	var status string

	err := row.Scan(
		&s.ID, &s.EmployeeID,
		&s.CheckInTime, &s.CheckInLatitude, &s.CheckInLongitude, &s.CheckInPlaceName,
		&s.CheckOutTime, &s.CheckOutLatitude, &s.CheckOutLongitude, &s.CheckOutPlaceName,
		&s.CheckOutKey, &status, &s.TotalDurationSeconds,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return attendance.Session{}, err
	}

	s.Status = attendance.ParseStatus(status)
	return s, nil
}

// Create implements attendance.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id,
			check_in_time, check_in_latitude, check_in_longitude, check_in_place_name,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.CheckInTime,
		s.CheckInLatitude,
		s.CheckInLongitude,
		s.CheckInPlaceName,
		string(s.Status),
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return s, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session by ID: %w", err)
	}

	return s, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND status = 'checked_in'
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrNoOpenSession
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return s, nil
}

// GetLatestClosedSession implements attendance.SessionRepository.
func (r *sessionRepository) GetLatestClosedSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND status = 'checked_out'
		  AND check_out_time IS NOT NULL
		ORDER BY check_out_time DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get latest closed session: %w", err)
	}

	return s, nil
}

// Close implements attendance.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, s attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_time = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			check_out_place_name = $5,
			check_out_key = $6,
			status = $7,
			total_duration_seconds = $8,
			updated_at = NOW()
		WHERE id = $1
		  AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query,
		s.ID,
		s.CheckOutTime,
		s.CheckOutLatitude,
		s.CheckOutLongitude,
		s.CheckOutPlaceName,
		s.CheckOutKey,
		string(s.Status),
		s.TotalDurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenSession
	}

	return nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepository) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}

	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND check_in_time >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND check_in_time < ($%d)::date + 1", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_sessions WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	// Pagination
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_sessions
		WHERE %s
		ORDER BY check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, sessionColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, total, nil
}

// ListForRange implements attendance.SessionRepository.
func (r *sessionRepository) ListForRange(ctx context.Context, from, to time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE check_in_time >= $1
		  AND check_in_time < $2
		ORDER BY check_in_time ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for range: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, nil
}

// MarkOnLeave implements attendance.SessionRepository. One marker row per day
// in the inclusive date range; days that already carry any record are skipped.
func (r *sessionRepository) MarkOnLeave(ctx context.Context, employeeID string, startDate, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (id, employee_id, check_in_time, check_in_latitude, check_in_longitude, status)
		SELECT $1, $2, $3, 0, 0, 'on_leave'
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE employee_id = $2
			  AND check_in_time >= $3
			  AND check_in_time < ($3)::timestamptz + interval '1 day'
		)
	`

	for day := startDate.Truncate(24 * time.Hour); !day.After(endDate); day = day.AddDate(0, 0, 1) {
		id := uuid.Must(uuid.NewV7()).String()
		if _, err := q.Exec(ctx, query, id, employeeID, day); err != nil {
			return fmt.Errorf("failed to mark on-leave day %s: %w", day.Format("2006-01-02"), err)
		}
	}

	return nil
}

// MarkAbsent implements attendance.SessionRepository.
func (r *sessionRepository) MarkAbsent(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (id, employee_id, check_in_time, check_in_latitude, check_in_longitude, status)
		SELECT $1, $2, $3, 0, 0, 'absent'
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE employee_id = $2
			  AND check_in_time >= $3
			  AND check_in_time < ($3)::timestamptz + interval '1 day'
		)
	`

	id := uuid.Must(uuid.NewV7()).String()
	if _, err := q.Exec(ctx, query, id, employeeID, date.Truncate(24*time.Hour)); err != nil {
		return fmt.Errorf("failed to mark absent: %w", err)
	}

	return nil
}

// ListEmployeeIDsWithoutRecord implements attendance.SessionRepository. The
// roster is every employee assigned to an active center.
func (r *sessionRepository) ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT unnest(assigned_employee_ids) AS employee_id
		FROM attendance_centers
		WHERE is_active = true
		EXCEPT
		SELECT employee_id
		FROM attendance_sessions
		WHERE check_in_time >= $1
		  AND check_in_time < ($1)::timestamptz + interval '1 day'
	`

	rows, err := q.Query(ctx, query, date.Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees without records: %w", err)
	}
	defer rows.Close()

	var employeeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		employeeIDs = append(employeeIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee ids: %w", err)
	}

	return employeeIDs, nil
}
