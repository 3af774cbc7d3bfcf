package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type centerRepository struct {
	db *database.DB
}

func NewCenterRepository(db *database.DB) center.CenterRepository {
	return &centerRepository{db: db}
}

const centerColumns = `
	id, name, name_ar, latitude, longitude, radius_meters,
	assigned_employee_ids, allow_remote_checkout, remote_checkout_employee_ids,
	is_active, created_at, updated_at
`

func scanCenter(row pgx.Row) (center.AttendanceCenter, error) {
	var c center.AttendanceCenter

	err := row.Scan(
		&c.ID, &c.Name, &c.NameAr, &c.Latitude, &c.Longitude, &c.RadiusMeters,
		&c.AssignedEmployeeIDs, &c.AllowRemoteCheckout, &c.RemoteCheckoutEmployeeIDs,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return center.AttendanceCenter{}, err
	}

	return c, nil
}

// Create implements center.CenterRepository.
func (r *centerRepository) Create(ctx context.Context, c center.AttendanceCenter) (center.AttendanceCenter, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_centers (
			id, name, name_ar, latitude, longitude, radius_meters,
			assigned_employee_ids, allow_remote_checkout, remote_checkout_employee_ids,
			is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID,
		c.Name,
		c.NameAr,
		c.Latitude,
		c.Longitude,
		c.RadiusMeters,
		c.AssignedEmployeeIDs,
		c.AllowRemoteCheckout,
		c.RemoteCheckoutEmployeeIDs,
		c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return center.AttendanceCenter{}, fmt.Errorf("failed to create center: %w", err)
	}

	return c, nil
}

// GetByID implements center.CenterRepository.
func (r *centerRepository) GetByID(ctx context.Context, id string) (center.AttendanceCenter, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + centerColumns + ` FROM attendance_centers WHERE id = $1`

	c, err := scanCenter(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return center.AttendanceCenter{}, center.ErrCenterNotFound
		}
		return center.AttendanceCenter{}, fmt.Errorf("failed to get center by ID: %w", err)
	}

	return c, nil
}

// List implements center.CenterRepository.
func (r *centerRepository) List(ctx context.Context, activeOnly bool) ([]center.AttendanceCenter, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + centerColumns + ` FROM attendance_centers`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}
	defer rows.Close()

	var centers []center.AttendanceCenter
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan center: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read centers: %w", err)
	}

	return centers, nil
}

// Update implements center.CenterRepository.
func (r *centerRepository) Update(ctx context.Context, c center.AttendanceCenter) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_centers
		SET name = $2,
			name_ar = $3,
			radius_meters = $4,
			assigned_employee_ids = $5,
			allow_remote_checkout = $6,
			remote_checkout_employee_ids = $7,
			is_active = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		c.ID,
		c.Name,
		c.NameAr,
		c.RadiusMeters,
		c.AssignedEmployeeIDs,
		c.AllowRemoteCheckout,
		c.RemoteCheckoutEmployeeIDs,
		c.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return center.ErrCenterNotFound
	}

	return nil
}

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) center.PolicyRepository {
	return &policyRepository{db: db}
}

// GetForEmployee implements center.PolicyRepository. Employees with no
// assignment get an unrestricted policy.
func (r *policyRepository) GetForEmployee(ctx context.Context, employeeID string) (center.LocationRestrictionPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.type, p.locations, p.created_at, p.updated_at
		FROM location_policies p
		JOIN employee_location_policies ep ON ep.policy_id = p.id
		WHERE ep.employee_id = $1
		LIMIT 1
	`

	var p center.LocationRestrictionPolicy
	var policyType string
	var locations []byte

	err := q.QueryRow(ctx, query, employeeID).Scan(&p.ID, &policyType, &locations, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return center.LocationRestrictionPolicy{Type: center.RestrictionAnywhere}, nil
		}
		return center.LocationRestrictionPolicy{}, fmt.Errorf("failed to get policy for employee: %w", err)
	}

	p.Type = center.ParseRestrictionType(policyType)
	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &p.Locations); err != nil {
			return center.LocationRestrictionPolicy{}, fmt.Errorf("failed to decode policy locations: %w", err)
		}
	}

	return p, nil
}

// Upsert implements center.PolicyRepository.
func (r *policyRepository) Upsert(ctx context.Context, p center.LocationRestrictionPolicy) (center.LocationRestrictionPolicy, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV7()).String()
	}

	locations, err := json.Marshal(p.Locations)
	if err != nil {
		return center.LocationRestrictionPolicy{}, fmt.Errorf("failed to encode policy locations: %w", err)
	}

	query := `
		INSERT INTO location_policies (id, type, locations)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET type = EXCLUDED.type,
			locations = EXCLUDED.locations,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query, p.ID, string(p.Type), locations).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return center.LocationRestrictionPolicy{}, fmt.Errorf("failed to upsert policy: %w", err)
	}

	return p, nil
}

// AssignToEmployee implements center.PolicyRepository. An employee holds at
// most one policy; reassignment replaces the previous one.
func (r *policyRepository) AssignToEmployee(ctx context.Context, policyID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_location_policies (employee_id, policy_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_id) DO UPDATE
		SET policy_id = EXCLUDED.policy_id
	`

	if _, err := q.Exec(ctx, query, employeeID, policyID); err != nil {
		return fmt.Errorf("failed to assign policy to employee: %w", err)
	}

	return nil
}
