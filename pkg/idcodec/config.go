package idcodec

// Config holds the server-side secret material for the codec.
// Secret may be a low-entropy passphrase; Argon2id absorbs that.
// Salt is fixed configuration: changing it invalidates every issued token.
type Config struct {
	Secret string `env:"IDCODEC_SECRET,required"`
	Salt   string `env:"IDCODEC_SALT,required"`

	// Argon2id cost parameters.
	KDFTime    uint32 `env:"IDCODEC_KDF_TIME" envDefault:"3"`
	KDFMemory  uint32 `env:"IDCODEC_KDF_MEMORY_KB" envDefault:"65536"`
	KDFThreads uint8  `env:"IDCODEC_KDF_THREADS" envDefault:"2"`
}

const (
	minSaltLength  = 8
	minKDFMemoryKB = 8 * 1024
)

// DefaultConfig returns a Config with production cost parameters.
func DefaultConfig(secret, salt string) Config {
	return Config{
		Secret:     secret,
		Salt:       salt,
		KDFTime:    3,
		KDFMemory:  64 * 1024,
		KDFThreads: 2,
	}
}

func (c Config) validate() error {
	switch {
	case c.Secret == "":
		return ErrInvalidConfig
	case len(c.Salt) < minSaltLength:
		return ErrInvalidConfig
	case c.KDFTime < 1, c.KDFThreads < 1, c.KDFMemory < minKDFMemoryKB:
		return ErrInvalidConfig
	}
	return nil
}
