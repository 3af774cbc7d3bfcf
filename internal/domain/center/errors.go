package center

import "errors"

var (
	ErrCenterNotFound = errors.New("attendance center not found")
	ErrPolicyNotFound = errors.New("location restriction policy not found")
	ErrInvalidRadius  = errors.New("radius must be greater than zero")
)
