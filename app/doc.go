// Package app assembles the access layer into a runnable HTTP service.
//
// New opens whatever the options did not inject: the session store selected
// by SESSION_BACKEND (redis, mongo or memory), the role graph selected by
// RBAC_BACKEND (postgres or memory), the identifier codec from IDCODEC_* and
// the cookie manager from COOKIE_*. Each opened backend contributes a
// readiness probe and a closer.
//
// The router mounts the request gate in front of everything, health probes
// and /metrics beside it, and the /admin tree behind RequireSession with
// per-route capability requirements. /dev/login exists only when
// Config.DevRoutes is set, which `accessd serve --dev` does.
package app
