package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/leelawheel/internal/api/apierr"
	"github.com/mcoot/leelawheel/internal/middleware"
)

// Recovery turns a handler panic into an INTERNAL_ERROR JSON response. The
// X-Request-ID header set upstream stays on the response so the log line
// can be found.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
