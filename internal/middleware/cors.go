package api_middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser calls from the given frontend origins only.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         3600,
	})
	return c.Handler
}
