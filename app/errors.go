package app

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNilDependency  = errors.New("dependency cannot be nil")
	ErrBackendConnect = errors.New("failed to connect backend")
	ErrInvalidUserID  = errors.New("invalid user id")
)
