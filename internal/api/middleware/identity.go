// Package middleware contains HTTP middleware for the API layer.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
)

// UserIDHeader carries the authenticated user ID, injected by the upstream
// auth gateway. Authentication itself lives outside this service; requests
// reaching it are already authenticated.
const UserIDHeader = "X-User-ID"

// Identity extracts the user ID from the gateway header, rejects requests
// without a valid one, and attaches the ID plus a request-scoped logger to
// the context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		raw := r.Header.Get(UserIDHeader)
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			shared.RespondWithError(
				w,
				r.WithContext(ctx),
				http.StatusUnauthorized,
				"Missing or invalid user identity",
			)
			return
		}

		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)

		reqLogger := logger.FromContext(ctx).With(
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("user_id", userID.String()))
		ctx = logger.WithLogger(ctx, reqLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
