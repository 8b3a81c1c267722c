package middleware

import (
	"log/slog"
	"net/http"

	"github.com/riddles-game/server/internal/api/apierr"
	"github.com/riddles-game/server/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become the generic JSON 500 envelope.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
