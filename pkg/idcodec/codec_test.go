package idcodec_test

import (
	"encoding/base64"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/pkg/idcodec"
)

// testConfig keeps Argon2 cheap so the suite stays fast.
func testConfig(secret string) idcodec.Config {
	return idcodec.Config{
		Secret:     secret,
		Salt:       "test-salt-0001",
		KDFTime:    1,
		KDFMemory:  8 * 1024,
		KDFThreads: 1,
	}
}

func newCodec(t *testing.T, secret string) *idcodec.Codec {
	t.Helper()
	c, err := idcodec.New(testConfig(secret))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  idcodec.Config
	}{
		{"empty secret", idcodec.Config{Salt: "0123456789", KDFTime: 1, KDFMemory: 8192, KDFThreads: 1}},
		{"short salt", idcodec.Config{Secret: "s", Salt: "short", KDFTime: 1, KDFMemory: 8192, KDFThreads: 1}},
		{"zero time", idcodec.Config{Secret: "s", Salt: "0123456789", KDFMemory: 8192, KDFThreads: 1}},
		{"weak memory", idcodec.Config{Secret: "s", Salt: "0123456789", KDFTime: 1, KDFMemory: 1024, KDFThreads: 1}},
		{"zero threads", idcodec.Config{Secret: "s", Salt: "0123456789", KDFTime: 1, KDFMemory: 8192}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := idcodec.New(tt.cfg)
			assert.ErrorIs(t, err, idcodec.ErrInvalidConfig)
		})
	}

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		cfg := idcodec.DefaultConfig("passphrase", "0123456789")
		assert.Equal(t, uint32(3), cfg.KDFTime)
		assert.Equal(t, uint32(64*1024), cfg.KDFMemory)
		assert.Equal(t, uint8(2), cfg.KDFThreads)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "round-trip-secret")

	ids := []int64{1, 2, 9, 10, 99, 100, 12345, math.MaxInt32, math.MaxInt32 + 1, math.MaxInt64 - 1, math.MaxInt64}
	for range 500 {
		ids = append(ids, rand.Int64N(math.MaxInt64)+1)
	}

	for _, id := range ids {
		token, err := c.Encode(id)
		require.NoError(t, err)

		got, err := c.Decode(token)
		require.NoError(t, err, "id %d", id)
		assert.Equal(t, id, got)
	}
}

func TestEncode_RejectsNonPositive(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "secret")

	for _, id := range []int64{0, -1, math.MinInt64} {
		_, err := c.Encode(id)
		assert.ErrorIs(t, err, idcodec.ErrInvalidID)
	}
}

func TestEncode_FreshNonce(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "secret")

	seen := make(map[string]struct{})
	for range 100 {
		token, err := c.Encode(42)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "token repeated")
		seen[token] = struct{}{}

		id, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	}
}

func TestEncode_URLSafe(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "secret")

	token, err := c.Encode(math.MaxInt64)
	require.NoError(t, err)
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
}

func TestDecode_TamperEveryByte(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "tamper-secret")

	token, err := c.Encode(987654321)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	for i := range raw {
		for _, mask := range []byte{0x01, 0x80, 0xff} {
			tampered := append([]byte(nil), raw...)
			tampered[i] ^= mask

			_, err := c.Decode(base64.RawURLEncoding.EncodeToString(tampered))
			assert.ErrorIs(t, err, idcodec.ErrDecode, "byte %d mask %#x", i, mask)
		}
	}
}

func TestDecode_TruncationAtEveryLength(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "truncate-secret")

	token, err := c.Encode(31337)
	require.NoError(t, err)

	for n := range len(token) {
		_, err := c.Decode(token[:n])
		assert.ErrorIs(t, err, idcodec.ErrDecode, "prefix length %d", n)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	for n := range len(raw) {
		_, err := c.Decode(base64.RawURLEncoding.EncodeToString(raw[:n]))
		assert.ErrorIs(t, err, idcodec.ErrDecode, "raw prefix length %d", n)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "secret")

	token, err := c.Encode(7)
	require.NoError(t, err)

	inputs := []string{
		"",
		"!!!!",
		"12345",
		token + "=",
		token + "A",
		"A" + token,
		base64.StdEncoding.EncodeToString([]byte("not a token at all, padded")),
	}
	for _, in := range inputs {
		_, err := c.Decode(in)
		assert.ErrorIs(t, err, idcodec.ErrDecode, "input %q", in)
	}
}

func TestDecode_WrongKey(t *testing.T) {
	t.Parallel()
	a := newCodec(t, "secret-a")
	b := newCodec(t, "secret-b")

	token, err := a.Encode(55)
	require.NoError(t, err)

	_, err = b.Decode(token)
	assert.ErrorIs(t, err, idcodec.ErrDecode)

	t.Run("different salt", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("secret-a")
		cfg.Salt = "another-salt-02"
		other, err := idcodec.New(cfg)
		require.NoError(t, err)

		_, err = other.Decode(token)
		assert.ErrorIs(t, err, idcodec.ErrDecode)
	})
}

func TestNew_NormalizesSecret(t *testing.T) {
	t.Parallel()

	// "é" precomposed vs. "e" + combining acute accent.
	composed := newCodec(t, "caf\u00e9")
	decomposed := newCodec(t, "cafe\u0301")

	token, err := composed.Encode(8)
	require.NoError(t, err)

	id, err := decomposed.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestCodec_Concurrent(t *testing.T) {
	t.Parallel()
	c := newCodec(t, "concurrent-secret")

	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 200 {
				id := int64(g*1000 + i + 1)
				token, err := c.Encode(id)
				if !assert.NoError(t, err) {
					return
				}
				got, err := c.Decode(token)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, id, got)
			}
		}(g)
	}
	wg.Wait()
}
