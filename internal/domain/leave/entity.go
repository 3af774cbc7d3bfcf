package leave

import (
	"time"
)

// LeaveType is the closed set of leave categories.
type LeaveType string

const (
	TypeVacation  LeaveType = "vacation"
	TypeSick      LeaveType = "sick"
	TypePersonal  LeaveType = "personal"
	TypeEmergency LeaveType = "emergency"
	TypeUnpaid    LeaveType = "unpaid"
)

// ParseType maps a stored string to a LeaveType. Unknown values fall back to
// TypeUnpaid: unlimited, so a damaged row can never corrupt a balance.
func ParseType(s string) LeaveType {
	switch LeaveType(s) {
	case TypeVacation:
		return TypeVacation
	case TypeSick:
		return TypeSick
	case TypePersonal:
		return TypePersonal
	case TypeEmergency:
		return TypeEmergency
	default:
		return TypeUnpaid
	}
}

// IsUnlimited reports whether the type has no balance constraint.
func (t LeaveType) IsUnlimited() bool {
	return t == TypeEmergency || t == TypeUnpaid
}

// RequestStatus is the closed set of leave-request states.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// ParseStatus maps a stored string to a RequestStatus. Unknown values fall
// back to StatusPending so a damaged row re-enters the review queue instead
// of being silently miscoded as terminal.
func ParseStatus(s string) RequestStatus {
	switch RequestStatus(s) {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// Balance is one employee's allowance for one leave type in one year.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	Type       LeaveType
	TotalDays  int
	UsedDays   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns the days left on the balance. The second return value is
// false for unlimited types, where the day count carries no meaning.
func (b Balance) Remaining() (int, bool) {
	if b.Type.IsUnlimited() {
		return 0, false
	}
	remaining := b.TotalDays - b.UsedDays
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Request is one leave application. Lifecycle: pending, then exactly one of
// approved, rejected or cancelled; terminal states are immutable.
type Request struct {
	ID         string
	EmployeeID string
	Type       LeaveType

	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status      RequestStatus
	SubmittedAt time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NumberOfDays is the inclusive day count between start and end dates,
// floored at 1. The floor also covers end dates before the start date, which
// stored data may contain.
func (r Request) NumberOfDays() int {
	days := int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
