package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no record exists for the key.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned by a Store that still holds a record past its
	// expiry. Stores that drop records at expiry (Redis) report ErrNotFound.
	ErrExpired = errors.New("session expired")
	// ErrStoreUnavailable marks infrastructure failures: connection errors and timeouts.
	// Guards must treat it as a denial, never as "anonymous".
	ErrStoreUnavailable = errors.New("session store unavailable")
	// ErrCorruptRecord is returned by a Store when a stored record cannot be parsed.
	ErrCorruptRecord = errors.New("session record corrupt")
	// ErrInvalidUserID is returned when creating a session for a non-positive user id.
	ErrInvalidUserID = errors.New("user id must be positive")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSaveSession is returned when saving a session to the store fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
)
