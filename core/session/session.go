package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

// tokenBytes is the raw token size: 256 bits from crypto/rand.
const tokenBytes = 32

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	// ID is a log-safe handle for the session. It is not a credential.
	ID uuid.UUID

	// Token is the credential carried by the cookie (32 bytes base64url).
	// Possession of the token is equivalent to the identity.
	Token string

	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is what a successful resolve yields to handlers.
type Identity struct {
	SessionID uuid.UUID
	UserID    int64
	ExpiresAt time.Time
}

// Status is the outcome of looking up a token.
type Status int

const (
	// StatusUnknown covers absent, malformed, and never-issued tokens.
	StatusUnknown Status = iota
	// StatusExpired means the store still held the record past its expiry:
	// MemoryStore before its next read, MongoStore before the TTL monitor
	// runs. Redis drops keys at expiry, so there it shows up as StatusUnknown.
	StatusExpired
	// StatusValid means the token maps to a live session.
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Resolution is the tagged result of Manager.Lookup.
// Identity is set only when Status is StatusValid.
type Resolution struct {
	Status   Status
	Identity Identity
}

// Valid reports whether the resolution carries an identity.
func (r Resolution) Valid() bool {
	return r.Status == StatusValid
}

// New creates a session for userID with a fresh token, valid for ttl.
func New(userID int64, ttl time.Duration) (Session, error) {
	return newAt(userID, ttl, time.Now())
}

func newAt(userID int64, ttl time.Duration, now time.Time) (Session, error) {
	if userID <= 0 {
		return Session{}, ErrInvalidUserID
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	return Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired returns true if the session has expired.
func (s Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// Identity returns the handler-facing view of the session.
func (s Session) Identity() Identity {
	return Identity{SessionID: s.ID, UserID: s.UserID, ExpiresAt: s.ExpiresAt}
}

func (s Session) record() Record {
	return Record{ID: s.ID, UserID: s.UserID, IssuedAt: s.IssuedAt, ExpiresAt: s.ExpiresAt}
}

// generateToken creates a cryptographically secure random token using 32 bytes (256 bits)
// encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// wellFormed rejects tokens that could not have been issued, before any store I/O.
func wellFormed(token string) bool {
	if len(token) != base64.RawURLEncoding.EncodedLen(tokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.Strict().DecodeString(token)
	return err == nil
}

// storageKey hashes the token so a store dump does not contain credentials.
func storageKey(prefix, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + hex.EncodeToString(sum[:])
}
