package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/leave"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/fieldhr/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	leave.RequestRepository
	leave.BalanceRepository
	sessionRepo attendance.SessionRepository
	db          *database.DB
	locks       *lock.KeyedMutex
	now         func() time.Time
}

// NewLeaveService creates the leave service. locks is the process-wide keyed
// mutex shared with the attendance and movement services, so every state
// transition for one employee serializes on the same lock.
func NewLeaveService(
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	sessionRepo attendance.SessionRepository,
	db *database.DB,
	locks *lock.KeyedMutex,
) leave.LeaveService {
	return &LeaveServiceImpl{
		RequestRepository: requestRepo,
		BalanceRepository: balanceRepo,
		sessionRepo:       sessionRepo,
		db:                db,
		locks:             locks,
		now:               time.Now,
	}
}

// inTx runs fn inside a database transaction, threading the transaction to
// the repositories through the context. A service wired without a pool runs
// fn directly.
func (l *LeaveServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if l.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		Type:        leave.ParseType(req.Type),
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
		SubmittedAt: l.now().UTC(),
	}

	created, err := l.RequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapRequestToResponse(created), nil
}

// canApprove reports whether the balance covers the request. Unlimited types
// always pass.
func canApprove(balance leave.Balance, request leave.Request) bool {
	if request.Type.IsUnlimited() {
		return true
	}
	remaining, limited := balance.Remaining()
	if !limited {
		return true
	}
	return request.NumberOfDays() <= remaining
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := l.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	unlock := l.locks.Lock(request.EmployeeID)
	defer unlock()

	// Re-read under the lock so concurrent reviews cannot both pass the
	// pending check.
	request, err = l.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrRequestNotPending
	}

	year := request.StartDate.Year()

	reviewedAt := l.now().UTC()
	request.Status = leave.StatusApproved
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &reviewedAt

	// The status transition, the on-leave attendance records and the balance
	// draw-down commit or roll back together.
	err = l.inTx(ctx, func(ctx context.Context) error {
		if !request.Type.IsUnlimited() {
			balance, err := l.BalanceRepository.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.Type, year)
			if err != nil {
				if errors.Is(err, leave.ErrBalanceNotFound) {
					return leave.ErrInsufficientBalance
				}
				return fmt.Errorf("failed to get leave balance: %w", err)
			}

			if !canApprove(balance, request) {
				return leave.ErrInsufficientBalance
			}
		}

		if err := l.RequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		// Approved leave days surface as on-leave attendance records so the
		// dashboard and absence job see them.
		if l.sessionRepo != nil {
			if err := l.sessionRepo.MarkOnLeave(ctx, request.EmployeeID, request.StartDate, request.EndDate); err != nil {
				return fmt.Errorf("failed to mark on-leave attendance: %w", err)
			}
		}

		if !request.Type.IsUnlimited() {
			if err := l.BalanceRepository.AddUsedDays(ctx, request.EmployeeID, request.Type, year, request.NumberOfDays()); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(request), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewRequestRequest) (leave.RequestResponse, error) {
	return l.finishReview(ctx, req, leave.StatusRejected)
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, req leave.ReviewRequestRequest) (leave.RequestResponse, error) {
	return l.finishReview(ctx, req, leave.StatusCancelled)
}

// finishReview moves a pending request to a terminal state that does not
// touch the balance.
func (l *LeaveServiceImpl) finishReview(ctx context.Context, req leave.ReviewRequestRequest, status leave.RequestStatus) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := l.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	unlock := l.locks.Lock(request.EmployeeID)
	defer unlock()

	request, err = l.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrRequestNotPending
	}

	reviewedAt := l.now().UTC()
	request.Status = status
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &reviewedAt

	if err := l.RequestRepository.UpdateStatus(ctx, request); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return mapRequestToResponse(request), nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.RequestResponse, error) {
	requests, err := l.RequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}
	return responses, nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context, employeeID string, year int) (leave.BalancesResponse, error) {
	balances, err := l.BalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return leave.BalancesResponse{}, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp := leave.BalanceResponse{
			Type:      string(b.Type),
			TotalDays: b.TotalDays,
			UsedDays:  b.UsedDays,
			Unlimited: b.Type.IsUnlimited(),
		}
		if remaining, limited := b.Remaining(); limited {
			resp.RemainingDays = &remaining
		}
		responses = append(responses, resp)
	}

	return leave.BalancesResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   responses,
	}, nil
}

func mapRequestToResponse(r leave.Request) leave.RequestResponse {
	var reviewedAt *string
	if r.ReviewedAt != nil {
		formatted := r.ReviewedAt.Format("2006-01-02 15:04:05")
		reviewedAt = &formatted
	}

	return leave.RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Type:         string(r.Type),
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		NumberOfDays: r.NumberOfDays(),
		Reason:       r.Reason,
		Status:       string(r.Status),
		SubmittedAt:  r.SubmittedAt.Format("2006-01-02 15:04:05"),
		ReviewedBy:   r.ReviewedBy,
		ReviewedAt:   reviewedAt,
	}
}
