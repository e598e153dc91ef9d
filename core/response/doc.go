// Package response renders JSON bodies and maps domain errors to generic HTTP
// errors.
//
// Error classifies err and writes an HTTPError body without the cause:
//
//	idcodec.ErrDecode           -> 404 not_found
//	session.ErrStoreUnavailable -> 503 service_unavailable
//	rbac.ErrResolverUnavailable -> 503 service_unavailable
//	rbac.ErrPermissionDenied    -> 403 forbidden
//	anything else               -> 500 internal_server_error
//
// Errors that implement StatusCode() int map to the matching predefined error.
//
//	func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
//		id, err := middleware.DecodeIDParam(h.codec, r, "id")
//		if err != nil {
//			response.Error(w, r, err)
//			return
//		}
//		_ = response.JSON(w, http.StatusOK, h.products.Get(id))
//	}
//
// NotFound is the shared fallback handler used by the request gate and router.
package response
