package leave

import "errors"

// Leave domain errors
var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrRequestNotPending   = errors.New("leave request has already been processed")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrBalanceNotFound     = errors.New("leave balance not found")
)
