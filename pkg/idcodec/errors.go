package idcodec

import "errors"

var (
	// ErrDecode is returned for any token that cannot be turned back into an id:
	// malformed text, truncation, wrong key, tampered bytes, or a non-canonical
	// plaintext. Callers must render it exactly like "resource not found".
	ErrDecode = errors.New("idcodec: invalid identifier token")

	// ErrInvalidID is returned by Encode for ids outside 1..math.MaxInt64.
	ErrInvalidID = errors.New("idcodec: id must be a positive integer")

	// ErrInvalidConfig is returned by New when the secret or salt is unusable.
	ErrInvalidConfig = errors.New("idcodec: invalid configuration")

	// ErrEncryptionFailed wraps failures of the random source or cipher setup.
	ErrEncryptionFailed = errors.New("idcodec: encryption failed")
)
