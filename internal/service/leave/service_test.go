package leave

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/leave"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestRepo is an in-memory leave.RequestRepository.
type fakeRequestRepo struct {
	requests map[string]*leave.Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	f.nextID++
	r.ID = "request-" + strconv.Itoa(f.nextID)
	stored := r
	f.requests[r.ID] = &stored
	return r, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	if r, ok := f.requests[id]; ok {
		return *r, nil
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, r leave.Request) error {
	stored, ok := f.requests[r.ID]
	if !ok {
		return leave.ErrRequestNotFound
	}
	*stored = r
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	var results []leave.Request
	for _, r := range f.requests {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		results = append(results, *r)
	}
	return results, nil
}

// fakeBalanceRepo is an in-memory leave.BalanceRepository keyed by type.
type fakeBalanceRepo struct {
	balances map[leave.LeaveType]*leave.Balance
}

func newFakeBalanceRepo(balances ...leave.Balance) *fakeBalanceRepo {
	repo := &fakeBalanceRepo{balances: make(map[leave.LeaveType]*leave.Balance)}
	for _, b := range balances {
		stored := b
		repo.balances[b.Type] = &stored
	}
	return repo
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.Balance, error) {
	if b, ok := f.balances[leaveType]; ok {
		return *b, nil
	}
	return leave.Balance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	var results []leave.Balance
	for _, b := range f.balances {
		results = append(results, *b)
	}
	return results, nil
}

func (f *fakeBalanceRepo) AddUsedDays(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days int) error {
	b, ok := f.balances[leaveType]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.UsedDays += days
	return nil
}

func newTestLeaveService(requests leave.RequestRepository, balances *fakeBalanceRepo) *LeaveServiceImpl {
	svc := NewLeaveService(requests, balances, nil, nil, lock.NewKeyedMutex())
	return svc.(*LeaveServiceImpl)
}

func submitTestRequest(t *testing.T, svc *LeaveServiceImpl, leaveType, startDate, endDate string) leave.RequestResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     "family matters",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_Submit_CreatesPending(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-04")

	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, 3, resp.NumberOfDays)
}

func TestLeaveService_Submit_SingleDayCountsAsOne(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())

	resp := submitTestRequest(t, svc, "sick", "2026-03-02", "2026-03-02")

	assert.Equal(t, 1, resp.NumberOfDays)
}

func TestLeaveService_Submit_EndBeforeStartRejected(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())

	_, err := svc.Submit(context.Background(), leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       "vacation",
		StartDate:  "2026-03-04",
		EndDate:    "2026-03-02",
		Reason:     "trip",
	})

	assert.Error(t, err)
}

func TestLeaveService_Approve_DrawsDownBalance(t *testing.T) {
	balances := newFakeBalanceRepo(leave.Balance{
		EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 10, UsedDays: 8,
	})
	svc := newTestLeaveService(newFakeRequestRepo(), balances)
	ctx := context.Background()

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-03")

	approved, err := svc.Approve(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "mgr-1", *approved.ReviewedBy)
	assert.Equal(t, 10, balances.balances[leave.TypeVacation].UsedDays)
}

func TestLeaveService_Approve_InsufficientBalance(t *testing.T) {
	balances := newFakeBalanceRepo(leave.Balance{
		EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 10, UsedDays: 8,
	})
	svc := newTestLeaveService(newFakeRequestRepo(), balances)

	// Three days requested against two remaining.
	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-04")

	_, err := svc.Approve(context.Background(), leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	assert.True(t, errors.Is(err, leave.ErrInsufficientBalance))

	// The balance is untouched by the failed approval.
	assert.Equal(t, 8, balances.balances[leave.TypeVacation].UsedDays)
}

func TestLeaveService_Approve_MissingBalanceRow(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-02")

	_, err := svc.Approve(context.Background(), leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	assert.True(t, errors.Is(err, leave.ErrInsufficientBalance))
}

func TestLeaveService_Approve_UnlimitedTypeSkipsBalance(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())

	// No balance rows exist, but emergency leave is unlimited.
	resp := submitTestRequest(t, svc, "emergency", "2026-03-02", "2026-03-06")

	approved, err := svc.Approve(context.Background(), leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
}

func TestLeaveService_Approve_AlreadyProcessed(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())
	ctx := context.Background()

	resp := submitTestRequest(t, svc, "unpaid", "2026-03-02", "2026-03-02")

	_, err := svc.Approve(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-2"})
	assert.True(t, errors.Is(err, leave.ErrRequestNotPending))
}

func TestLeaveService_Reject_DoesNotTouchBalance(t *testing.T) {
	balances := newFakeBalanceRepo(leave.Balance{
		EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 10, UsedDays: 2,
	})
	svc := newTestLeaveService(newFakeRequestRepo(), balances)

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-04")

	rejected, err := svc.Reject(context.Background(), leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
	assert.Equal(t, 2, balances.balances[leave.TypeVacation].UsedDays)
}

func TestLeaveService_Cancel_TerminalState(t *testing.T) {
	svc := newTestLeaveService(newFakeRequestRepo(), newFakeBalanceRepo())
	ctx := context.Background()

	resp := submitTestRequest(t, svc, "personal", "2026-03-02", "2026-03-02")

	cancelled, err := svc.Cancel(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	// Terminal states cannot be re-reviewed.
	_, err = svc.Approve(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	assert.True(t, errors.Is(err, leave.ErrRequestNotPending))
}

func TestLeaveService_Balances_MarksUnlimitedTypes(t *testing.T) {
	balances := newFakeBalanceRepo(
		leave.Balance{EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 15, UsedDays: 5},
		leave.Balance{EmployeeID: "emp-1", Year: 2026, Type: leave.TypeUnpaid},
	)
	svc := newTestLeaveService(newFakeRequestRepo(), balances)

	resp, err := svc.Balances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)
	require.Len(t, resp.Balances, 2)

	byType := make(map[string]leave.BalanceResponse)
	for _, b := range resp.Balances {
		byType[b.Type] = b
	}

	vacation := byType[string(leave.TypeVacation)]
	require.NotNil(t, vacation.RemainingDays)
	assert.Equal(t, 10, *vacation.RemainingDays)
	assert.False(t, vacation.Unlimited)

	unpaid := byType[string(leave.TypeUnpaid)]
	assert.Nil(t, unpaid.RemainingDays)
	assert.True(t, unpaid.Unlimited)
}

func TestLeaveService_NumberOfDays_Floor(t *testing.T) {
	r := leave.Request{
		StartDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, r.NumberOfDays())
}

// failingUpdateRequestRepo fails every status update.
type failingUpdateRequestRepo struct {
	*fakeRequestRepo
}

func (f *failingUpdateRequestRepo) UpdateStatus(ctx context.Context, r leave.Request) error {
	return errors.New("connection reset by peer")
}

// failingSessionRepo fails the on-leave attendance marking.
type failingSessionRepo struct {
	attendance.SessionRepository
}

func (failingSessionRepo) MarkOnLeave(ctx context.Context, employeeID string, startDate, endDate time.Time) error {
	return errors.New("insert failed")
}

func TestLeaveService_Approve_FailedStatusUpdateLeavesBalanceUntouched(t *testing.T) {
	requests := newFakeRequestRepo()
	balances := newFakeBalanceRepo(leave.Balance{
		EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 10,
	})
	svc := newTestLeaveService(&failingUpdateRequestRepo{requests}, balances)
	ctx := context.Background()

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-04")

	_, err := svc.Approve(ctx, leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.Error(t, err)

	// A failed approval must not draw down the balance or leave the request
	// half-transitioned.
	assert.Equal(t, 0, balances.balances[leave.TypeVacation].UsedDays)
	stored, err := requests.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
}

func TestLeaveService_Approve_FailedOnLeaveMarkingLeavesBalanceUntouched(t *testing.T) {
	requests := newFakeRequestRepo()
	balances := newFakeBalanceRepo(leave.Balance{
		EmployeeID: "emp-1", Year: 2026, Type: leave.TypeVacation, TotalDays: 10,
	})
	svc := NewLeaveService(requests, balances, failingSessionRepo{}, nil, lock.NewKeyedMutex()).(*LeaveServiceImpl)

	resp := submitTestRequest(t, svc, "vacation", "2026-03-02", "2026-03-04")

	_, err := svc.Approve(context.Background(), leave.ReviewRequestRequest{RequestID: resp.ID, ReviewerID: "mgr-1"})
	require.Error(t, err)
	assert.Equal(t, 0, balances.balances[leave.TypeVacation].UsedDays)
}
