package middleware

import (
	"net/http"
	"slices"
	"strings"

	"career-guide/http/response"

	"github.com/rs/cors"
)

// CORS applies the cross-origin policy. clientURL is "*" or a
// comma-separated list of allowed origins. Preflights pass through to the
// next handler, which answers them with Preflight.
func CORS(clientURL string) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if clientURL != "" && clientURL != "*" {
		origins = origins[:0]
		for _, o := range strings.Split(clientURL, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		ExposedHeaders:     []string{"Content-Disposition", "X-Request-ID"},
		OptionsPassthrough: true,
	})
	return c.Handler
}

// Preflight answers every OPTIONS request with 200 and an empty body.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Chain wraps h so that the first middleware is outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Methods answers 405 for any method outside methods before next runs, so
// a wrong method is reported ahead of authentication. OPTIONS always passes.
func Methods(next http.HandlerFunc, methods ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions && !slices.Contains(methods, r.Method) {
			response.MethodNotAllowed(w)
			return
		}
		next(w, r)
	}
}
