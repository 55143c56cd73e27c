package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/idbadge/pkg/httpx"
	"github.com/aussiebroadwan/idbadge/pkg/identity"
)

// LivezHandler is the liveness probe. It always returns 200 while the
// process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := identity.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
