package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/accesscore/pkg/idcodec"
)

// IDDecoder decodes client-visible identifiers. *idcodec.Codec implements it.
type IDDecoder interface {
	Decode(token string) (int64, error)
}

// DecodeIDParam decodes the encoded identifier in the route parameter name.
// It reads chi URL params first and falls back to net/http path values.
// Every failure wraps idcodec.ErrDecode, which response.Error renders as 404.
func DecodeIDParam(codec IDDecoder, r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		raw = r.PathValue(name)
	}
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %q parameter", idcodec.ErrDecode, name)
	}
	return codec.Decode(raw)
}
