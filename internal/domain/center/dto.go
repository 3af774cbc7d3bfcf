package center

import (
	"strconv"

	"github.com/fieldhr/attendance-backend-go/internal/pkg/validator"
)

type CreateCenterRequest struct {
	Name                      string   `json:"name"`
	NameAr                    *string  `json:"name_ar,omitempty"`
	Latitude                  float64  `json:"latitude"`
	Longitude                 float64  `json:"longitude"`
	RadiusMeters              *float64 `json:"radius_meters,omitempty"`
	AssignedEmployeeIDs       []string `json:"assigned_employee_ids,omitempty"`
	AllowRemoteCheckout       bool     `json:"allow_remote_checkout"`
	RemoteCheckoutEmployeeIDs []string `json:"remote_checkout_employee_ids,omitempty"`
}

func (r *CreateCenterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCenterRequest struct {
	ID                        string    `json:"-"`
	Name                      *string   `json:"name,omitempty"`
	NameAr                    *string   `json:"name_ar,omitempty"`
	RadiusMeters              *float64  `json:"radius_meters,omitempty"`
	AssignedEmployeeIDs       *[]string `json:"assigned_employee_ids,omitempty"`
	AllowRemoteCheckout       *bool     `json:"allow_remote_checkout,omitempty"`
	RemoteCheckoutEmployeeIDs *[]string `json:"remote_checkout_employee_ids,omitempty"`
	IsActive                  *bool     `json:"is_active,omitempty"`
}

func (r *UpdateCenterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AllowedLocationRequest struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
	EmployeeIDs  []string `json:"employee_ids,omitempty"`
}

type UpsertPolicyRequest struct {
	ID          *string                  `json:"id,omitempty"`
	Type        string                   `json:"type"`
	Locations   []AllowedLocationRequest `json:"locations,omitempty"`
	EmployeeIDs []string                 `json:"employee_ids,omitempty"`
}

func (r *UpsertPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	for i, loc := range r.Locations {
		if !validator.IsValidLatitude(loc.Latitude) || !validator.IsValidLongitude(loc.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "locations",
				Message: "location " + strconv.Itoa(i) + " has invalid coordinates",
			})
		}
		if loc.RadiusMeters != nil && *loc.RadiusMeters <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "locations",
				Message: "location " + strconv.Itoa(i) + " radius must be greater than zero",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Locations []AllowedLocation `json:"locations"`
}

type CenterResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	NameAr              *string  `json:"name_ar,omitempty"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	RadiusMeters        float64  `json:"radius_meters"`
	AssignedEmployeeIDs []string `json:"assigned_employee_ids"`
	AllowRemoteCheckout bool     `json:"allow_remote_checkout"`
	IsActive            bool     `json:"is_active"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}
