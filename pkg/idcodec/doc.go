// Package idcodec obfuscates internal integer identifiers for use in URLs and
// form fields.
//
// Sequential primary keys leak row counts and invite enumeration. The codec
// turns an id into an opaque token that cannot be incremented or forged by the
// client, and turns it back on the way in.
//
// # Token Format
//
// Tokens follow the format: base64url(nonce || ciphertext || tag), without padding.
//
//   - nonce: 12 random bytes, fresh for every Encode call
//   - ciphertext: AES-256-GCM encryption of the decimal id
//   - tag: 16-byte GCM authentication tag
//
// The AES key is derived once per Codec from Config.Secret and Config.Salt with
// Argon2id. The secret is NFKC-normalized first.
//
// # Usage
//
//	codec, err := idcodec.New(idcodec.DefaultConfig(secret, salt))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := codec.Encode(product.ID) // "Qm9x..."
//
//	id, err := codec.Decode(r.PathValue("product"))
//	if errors.Is(err, idcodec.ErrDecode) {
//		// Render exactly what an unknown id renders: 404.
//	}
//
// Encoding is not canonical: the same id encodes to a different token each
// time. Do not use tokens as cache keys or compare them for equality.
//
// # Error Handling
//
//   - ErrDecode: malformed, truncated, tampered, or wrong-key token
//   - ErrInvalidID: Encode called with id <= 0
//   - ErrInvalidConfig: empty secret, short salt, or too-weak KDF parameters
//   - ErrEncryptionFailed: random source or cipher construction failure
package idcodec
