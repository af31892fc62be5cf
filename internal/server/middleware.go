package server

import "net/http"

const adminSecretHeader = "X-Admin-Secret"

// requireAdmin gates the admin subtree on an exact shared-secret match.
// A missing or wrong secret short-circuits with 401 before any handler
// work runs. An empty configured secret disables the surface entirely.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := s.site.AdminSecret
		if secret == "" || r.Header.Get(adminSecretHeader) != secret {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
