package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS reflects allowed origins and permits credentials so the session
// cookie reaches the admin panel. An empty list allows every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[strings.TrimSuffix(o, "/")] = struct{}{}
		}
	}

	// AllowOriginFunc instead of AllowedOrigins so the origin is echoed back;
	// a literal "*" is rejected by browsers on credentialed requests.
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
