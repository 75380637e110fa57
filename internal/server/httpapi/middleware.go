package httpapi

import (
	"net/http"
	"strings"

	"github.com/wstore/webshop/internal/common"
)

// authenticate verifies the bearer access token on the request and attaches
// the resolved user to the request context.
//
// The middleware is terminal only for token problems: a missing header,
// a non-Bearer scheme, an empty token, or a token that fails verification.
// When the token verifies but its subject no longer exists, the request
// continues anonymously and downstream authorization rejects it; a deleted
// account must not turn every stale request into an auth failure.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer := r.Header.Get("Authorization")
		if bearer == "" {
			s.writeServiceError(r.Context(), w, common.ErrorMissingToken)
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			s.writeServiceError(r.Context(), w, common.ErrorMalformedHeader)
			return
		}

		accessToken := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
		if accessToken == "" {
			s.writeServiceError(r.Context(), w, common.ErrorMissingToken)
			return
		}

		user, err := s.sessions.ResolveAccessToken(r.Context(), accessToken)
		if err != nil {
			s.writeServiceError(r.Context(), w, err)
			return
		}

		if user != nil {
			r = r.WithContext(withPrincipal(r.Context(), user))
		}
		next(w, r)
	}
}

// requireAdmin rejects requests whose context carries no principal or a
// principal without the admin flag. Anonymous-by-deletion and
// anonymous-by-no-token are treated identically.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := PrincipalFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			s.writeServiceError(r.Context(), w, common.ErrorForbidden)
			return
		}
		next(w, r)
	}
}

// cors allows credentialed requests from the configured storefront origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
