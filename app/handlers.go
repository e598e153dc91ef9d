package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/response"
	"github.com/dmitrymomot/accesscore/middleware"
)

type identityView struct {
	SessionID    string    `json:"session_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	Capabilities []string  `json:"capabilities,omitempty"`
}

type productView struct {
	ID string `json:"id"`
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Render(w, r, response.ErrNotFound)
		return
	}

	caps, err := a.resolver.Capabilities(r.Context(), id.UserID)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "failed to load capabilities",
			logger.Component("app"),
			logger.Error(err),
		)
		response.Error(w, r, err)
		return
	}

	_ = response.JSON(w, http.StatusOK, identityView{
		SessionID:    id.SessionID.String(),
		ExpiresAt:    id.ExpiresAt,
		Capabilities: caps.Names(),
	})
}

// productToken decodes the {id} parameter and re-encodes it so numeric keys
// never reach the client.
func (a *App) productToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	n, err := middleware.DecodeIDParam(a.codec, r, "id")
	if err != nil {
		response.Error(w, r, err)
		return "", false
	}
	token, err := a.codec.Encode(n)
	if err != nil {
		response.Error(w, r, err)
		return "", false
	}
	return token, true
}

func (a *App) handleShowProduct(w http.ResponseWriter, r *http.Request) {
	if token, ok := a.productToken(w, r); ok {
		_ = response.JSON(w, http.StatusOK, productView{ID: token})
	}
}

func (a *App) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if token, ok := a.productToken(w, r); ok {
		_ = response.JSON(w, http.StatusOK, productView{ID: token})
	}
}

func (a *App) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.productToken(w, r); ok {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *App) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := a.SessionCookie().SignOut(w, r); err != nil {
		a.logger.ErrorContext(r.Context(), "sign out failed",
			logger.Component("app"),
			logger.Error(err),
		)
		response.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDevSignIn issues a session for ?user=N without credentials.
// Registered only when Config.DevRoutes is set.
func (a *App) handleDevSignIn(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
	if err != nil || userID <= 0 {
		response.Render(w, r, response.ErrBadRequest.WithMessage(ErrInvalidUserID.Error()))
		return
	}

	sess, err := a.SessionCookie().SignIn(w, r, userID)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "sign in failed",
			logger.Component("app"),
			logger.UserID(userID),
			logger.Error(err),
		)
		response.Error(w, r, err)
		return
	}

	a.logger.InfoContext(r.Context(), "session issued",
		logger.Component("app"),
		logger.SessionID(sess.ID.String()),
		logger.UserID(userID),
	)
	_ = response.JSON(w, http.StatusCreated, identityView{
		SessionID: sess.ID.String(),
		ExpiresAt: sess.ExpiresAt,
	})
}
