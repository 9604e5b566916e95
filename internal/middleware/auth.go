package middleware

import (
	"net/http"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/utils"

	"go.uber.org/zap"
)

// Auth resolves the access token into an auth.Session on the request
// context. Requests without a token pass through anonymously, requests with
// a bad token are rejected.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseJWT(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}

			sess, err := claims.Session()
			if err != nil {
				utils.WriteJSONError(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole guards plain HTTP routes. GraphQL resolvers authorize through
// the services instead.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := auth.SessionFrom(r.Context()).Authorize(roles...); err {
			case nil:
				next.ServeHTTP(w, r)
			case auth.ErrUnauthenticated:
				utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			default:
				utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
			}
		})
	}
}
