// Package session maps opaque bearer tokens to user identities.
//
// A token is 32 random bytes encoded as unpadded base64url. It is never
// persisted: stores are addressed by a key derived from the SHA-256 of the
// token, so a dump of the store does not leak credentials. Each record
// expires natively in its store (Redis PEXPIREAT, MongoDB TTL index, lazy
// eviction in MemoryStore); the manager never slides or renews expiry.
//
// # Usage
//
//	store := session.NewRedisStore(rdb)
//	mgr := session.NewManager(store,
//		session.WithTTL(12*time.Hour),
//		session.WithLogger(log),
//	)
//
//	sess, err := mgr.Create(ctx, userID)
//	// write sess.Token into the session cookie
//
//	id, ok, err := mgr.Resolve(ctx, token)
//	switch {
//	case err != nil:
//		// store unavailable: deny, never treat as anonymous success
//	case !ok:
//		// absent, expired or unknown token
//	default:
//		_ = id.UserID
//	}
//
// Lookup returns the tagged Resolution (valid, expired, unknown) for callers
// that need to tell an expired session from an unknown one.
//
// # Errors
//
// Every infrastructure failure, including a store call exceeding the
// configured StoreTimeout, is reported with an error wrapping
// ErrStoreUnavailable. Corrupt records resolve as unknown and are logged at
// warn level.
package session
