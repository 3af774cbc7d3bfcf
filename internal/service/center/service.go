package center

import (
	"context"
	"fmt"

	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
)

type CenterServiceImpl struct {
	center.CenterRepository
	center.PolicyRepository
}

func NewCenterService(
	centerRepo center.CenterRepository,
	policyRepo center.PolicyRepository,
) center.CenterService {
	return &CenterServiceImpl{
		CenterRepository: centerRepo,
		PolicyRepository: policyRepo,
	}
}

// CreateCenter implements center.CenterService.
func (s *CenterServiceImpl) CreateCenter(ctx context.Context, req center.CreateCenterRequest) (center.CenterResponse, error) {
	if err := req.Validate(); err != nil {
		return center.CenterResponse{}, err
	}

	radius := center.DefaultCenterRadiusMeters
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}

	created, err := s.CenterRepository.Create(ctx, center.AttendanceCenter{
		Name:                      req.Name,
		NameAr:                    req.NameAr,
		Latitude:                  req.Latitude,
		Longitude:                 req.Longitude,
		RadiusMeters:              radius,
		AssignedEmployeeIDs:       req.AssignedEmployeeIDs,
		AllowRemoteCheckout:       req.AllowRemoteCheckout,
		RemoteCheckoutEmployeeIDs: req.RemoteCheckoutEmployeeIDs,
		IsActive:                  true,
	})
	if err != nil {
		return center.CenterResponse{}, fmt.Errorf("failed to create center: %w", err)
	}

	return mapCenterToResponse(created), nil
}

// GetCenter implements center.CenterService.
func (s *CenterServiceImpl) GetCenter(ctx context.Context, id string) (center.CenterResponse, error) {
	c, err := s.CenterRepository.GetByID(ctx, id)
	if err != nil {
		return center.CenterResponse{}, err
	}

	return mapCenterToResponse(c), nil
}

// ListCenters implements center.CenterService.
func (s *CenterServiceImpl) ListCenters(ctx context.Context, activeOnly bool) ([]center.CenterResponse, error) {
	centers, err := s.CenterRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}

	responses := make([]center.CenterResponse, 0, len(centers))
	for _, c := range centers {
		responses = append(responses, mapCenterToResponse(c))
	}
	return responses, nil
}

// UpdateCenter implements center.CenterService.
func (s *CenterServiceImpl) UpdateCenter(ctx context.Context, req center.UpdateCenterRequest) (center.CenterResponse, error) {
	if err := req.Validate(); err != nil {
		return center.CenterResponse{}, err
	}

	c, err := s.CenterRepository.GetByID(ctx, req.ID)
	if err != nil {
		return center.CenterResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.NameAr != nil {
		c.NameAr = req.NameAr
	}
	if req.RadiusMeters != nil {
		c.RadiusMeters = *req.RadiusMeters
	}
	if req.AssignedEmployeeIDs != nil {
		c.AssignedEmployeeIDs = *req.AssignedEmployeeIDs
	}
	if req.AllowRemoteCheckout != nil {
		c.AllowRemoteCheckout = *req.AllowRemoteCheckout
	}
	if req.RemoteCheckoutEmployeeIDs != nil {
		c.RemoteCheckoutEmployeeIDs = *req.RemoteCheckoutEmployeeIDs
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.CenterRepository.Update(ctx, c); err != nil {
		return center.CenterResponse{}, err
	}

	return mapCenterToResponse(c), nil
}

// UpsertPolicy implements center.CenterService.
func (s *CenterServiceImpl) UpsertPolicy(ctx context.Context, req center.UpsertPolicyRequest) (center.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return center.PolicyResponse{}, err
	}

	locations := make([]center.AllowedLocation, 0, len(req.Locations))
	for _, loc := range req.Locations {
		radius := center.DefaultLocationRadiusMeters
		if loc.RadiusMeters != nil {
			radius = *loc.RadiusMeters
		}
		locations = append(locations, center.AllowedLocation{
			Latitude:     loc.Latitude,
			Longitude:    loc.Longitude,
			RadiusMeters: radius,
			EmployeeIDs:  loc.EmployeeIDs,
		})
	}

	policy := center.LocationRestrictionPolicy{
		Type:      center.ParseRestrictionType(req.Type),
		Locations: locations,
	}
	if req.ID != nil {
		policy.ID = *req.ID
	}

	upserted, err := s.PolicyRepository.Upsert(ctx, policy)
	if err != nil {
		return center.PolicyResponse{}, fmt.Errorf("failed to upsert policy: %w", err)
	}

	for _, employeeID := range req.EmployeeIDs {
		if err := s.PolicyRepository.AssignToEmployee(ctx, upserted.ID, employeeID); err != nil {
			return center.PolicyResponse{}, fmt.Errorf("failed to assign policy: %w", err)
		}
	}

	return mapPolicyToResponse(upserted), nil
}

// GetPolicyForEmployee implements center.CenterService.
func (s *CenterServiceImpl) GetPolicyForEmployee(ctx context.Context, employeeID string) (center.PolicyResponse, error) {
	policy, err := s.PolicyRepository.GetForEmployee(ctx, employeeID)
	if err != nil {
		return center.PolicyResponse{}, fmt.Errorf("failed to get policy: %w", err)
	}

	return mapPolicyToResponse(policy), nil
}

func mapCenterToResponse(c center.AttendanceCenter) center.CenterResponse {
	return center.CenterResponse{
		ID:                  c.ID,
		Name:                c.Name,
		NameAr:              c.NameAr,
		Latitude:            c.Latitude,
		Longitude:           c.Longitude,
		RadiusMeters:        c.RadiusMeters,
		AssignedEmployeeIDs: c.AssignedEmployeeIDs,
		AllowRemoteCheckout: c.AllowRemoteCheckout,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapPolicyToResponse(p center.LocationRestrictionPolicy) center.PolicyResponse {
	locations := p.Locations
	if locations == nil {
		locations = []center.AllowedLocation{}
	}
	return center.PolicyResponse{
		ID:        p.ID,
		Type:      string(p.Type),
		Locations: locations,
	}
}
