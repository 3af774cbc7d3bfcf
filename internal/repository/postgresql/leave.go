package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldhr/attendance-backend-go/internal/domain/leave"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, type, start_date, end_date, reason,
	status, submitted_at, reviewed_by, reviewed_at,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var r leave.Request
	var leaveType, status string

	err := row.Scan(
		&r.ID, &r.EmployeeID, &leaveType, &r.StartDate, &r.EndDate, &r.Reason,
		&status, &r.SubmittedAt, &r.ReviewedBy, &r.ReviewedAt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}

	r.Type = leave.ParseType(leaveType)
	r.Status = leave.ParseStatus(status)
	return r, nil
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	if r.ID == "" {
		r.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, type, start_date, end_date, reason, status, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		r.ID,
		r.EmployeeID,
		string(r.Type),
		r.StartDate,
		r.EndDate,
		r.Reason,
		string(r.Status),
		r.SubmittedAt,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	r, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return r, nil
}

// UpdateStatus implements leave.RequestRepository.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, r leave.Request) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			reviewed_by = $3,
			reviewed_at = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, r.ID, string(r.Status), r.ReviewedBy, r.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// List implements leave.RequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests
		WHERE %s
		ORDER BY submitted_at DESC
	`, leaveRequestColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		r, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return requests, nil
}

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const leaveBalanceColumns = `
	id, employee_id, year, type, total_days, used_days, created_at, updated_at
`

func scanLeaveBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	var leaveType string

	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.Year, &leaveType, &b.TotalDays, &b.UsedDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, err
	}

	b.Type = leave.ParseType(leaveType)
	return b, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (l *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1
		  AND type = $2
		  AND year = $3
	`

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, string(leaveType), year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (l *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1
		  AND year = $2
		ORDER BY type ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave balances: %w", err)
	}

	return balances, nil
}

// AddUsedDays implements leave.BalanceRepository.
func (l *leaveBalanceRepository) AddUsedDays(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days int) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $4,
			updated_at = NOW()
		WHERE employee_id = $1
		  AND type = $2
		  AND year = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, string(leaveType), year, days)
	if err != nil {
		return fmt.Errorf("failed to add used days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
