package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

type corsMiddleware struct {
	allowAll bool
	origins  []string
}

// NewCORS allows the given origins; "*" allows any. Entries are compared
// case-insensitively against the full origin or its host.
func NewCORS(allowedOrigins []string) *corsMiddleware {
	c := &corsMiddleware{}
	for _, o := range allowedOrigins {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "*" {
			c.allowAll = true
			continue
		}
		if o != "" {
			c.origins = append(c.origins, o)
		}
	}
	return c
}

func (c *corsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && c.allowed(origin) {
			h := w.Header()
			if c.allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+ClientIDHeader+", Sec-CH-Prefers-Color-Scheme")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition")
			h.Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *corsMiddleware) allowed(origin string) bool {
	if c.allowAll {
		return true
	}
	origin = strings.ToLower(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return slices.Contains(c.origins, origin) || slices.Contains(c.origins, u.Host) || slices.Contains(c.origins, u.Hostname())
}
