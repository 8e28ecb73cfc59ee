package middleware

import (
	"net/http"
)

const corsMaxAge = "86400"

// CORSMiddleware sets cross-origin headers for the front-desk web client.
// Origins come from configuration; "*" as the first entry opens the list.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) > 0 && allowedOrigins[0] == "*"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowed := originAllowed(origin, allowedOrigins, wildcard); allowed {
				if origin != "" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				} else if wildcard {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Preflight answers CORS preflight requests. Method-qualified mux patterns
// like "POST /tenants/admit" never match an OPTIONS request, so each route
// path needs this registered under an explicit "OPTIONS <path>" pattern.
func Preflight(cors func(http.Handler) http.Handler) http.Handler {
	return cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func originAllowed(origin string, allowedOrigins []string, wildcard bool) bool {
	if wildcard {
		return true
	}
	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
