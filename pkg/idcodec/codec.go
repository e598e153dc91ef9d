package idcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/argon2"
	"golang.org/x/text/unicode/norm"
)

const (
	keyLength = 32 // AES-256
	nonceSize = 12
	tagSize   = 16
)

// encoding is strict so every id has exactly one textual form per nonce.
var encoding = base64.RawURLEncoding.Strict()

// Codec obfuscates positive int64 ids as URL-safe tokens.
// A Codec is immutable after New and safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// New derives the cipher key from cfg once and returns a ready Codec.
// Derivation is deliberately slow; construct one Codec per process.
func New(cfg Config) (*Codec, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	secret := norm.NFKC.String(cfg.Secret)
	key := argon2.IDKey([]byte(secret), []byte(cfg.Salt), cfg.KDFTime, cfg.KDFMemory, cfg.KDFThreads, keyLength)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Codec{aead: aead}, nil
}

// Encode returns a fresh token for id. Two calls with the same id return
// different tokens; both decode to id.
func (c *Codec) Encode(id int64) (string, error) {
	if id <= 0 {
		return "", ErrInvalidID
	}
	return c.seal([]byte(strconv.FormatInt(id, 10)))
}

// Decode reverses Encode. Every failure wraps ErrDecode.
func (c *Codec) Decode(token string) (int64, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return 0, ErrDecode
	}
	if len(raw) < nonceSize+tagSize+1 {
		return 0, ErrDecode
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return 0, ErrDecode
	}

	id, err := parseID(plaintext)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return id, nil
}

func (c *Codec) seal(plaintext []byte) (string, error) {
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+tagSize)
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}
	out = c.aead.Seal(out, out[:nonceSize], plaintext, nil)
	return encoding.EncodeToString(out), nil
}

// parseID accepts only the canonical decimal form of a positive int64:
// ASCII digits, no sign, no leading zero.
func parseID(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, errors.New("empty plaintext")
	}
	if b[0] == '0' {
		return 0, errors.New("non-canonical id")
	}
	for _, ch := range b {
		if ch < '0' || ch > '9' {
			return 0, errors.New("non-numeric id")
		}
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
