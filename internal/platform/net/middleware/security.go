package middleware

import (
	"net/http"
	"strings"

	perr "devsolutions/internal/platform/errors"
	phttp "devsolutions/internal/platform/net/http"
)

var securityHeaders = [][2]string{
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Download-Options", "noopen"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// DefaultScannerAgents are user agent fragments of common vulnerability scanners
var DefaultScannerAgents = []string{
	"sqlmap", "nikto", "nmap", "masscan", "zap", "burp", "w3af", "acunetix", "nessus", "openvas",
}

// DefaultProbePaths are paths that only scanners ask for
var DefaultProbePaths = []string{
	"/admin", "/wp-admin", "/wp-content", "/wp-includes", "/.env", "/config", "/backup",
	"/.git", "/.svn", "/phpmyadmin", "/pma", "/mysql", "/sql", "/database", "/db",
	"/api/v1/admin", "/api/v1/config", "/api/v1/debug",
}

// SecurityOptions configures Security; nil slices use the defaults
type SecurityOptions struct {
	APIPrefix     string // default "/api/"
	ScannerAgents []string
	ProbePaths    []string
}

// Security sets hardening headers on every response, refuses known scanner
// agents on API paths with 403 and answers probe paths with 404
func Security(o SecurityOptions) func(http.Handler) http.Handler {
	if o.APIPrefix == "" {
		o.APIPrefix = "/api/"
	}
	if o.ScannerAgents == nil {
		o.ScannerAgents = DefaultScannerAgents
	}
	if o.ProbePaths == nil {
		o.ProbePaths = DefaultProbePaths
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			h.Del("X-Powered-By")

			path := strings.ToLower(r.URL.Path)
			if strings.HasPrefix(path, o.APIPrefix) {
				h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
				if isScanner(r.UserAgent(), o.ScannerAgents) {
					phttp.RespondError(w, r, perr.Forbiddenf("Forbidden"))
					return
				}
			}
			if isProbe(path, o.ProbePaths) {
				phttp.RespondError(w, r, perr.NotFoundf("Not Found"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isScanner(ua string, agents []string) bool {
	ua = strings.ToLower(ua)
	for _, a := range agents {
		if strings.Contains(ua, a) {
			return true
		}
	}
	return false
}

// isProbe matches a pattern only where it ends a path segment (or names a
// dotfile), so /api/v1/blog/sql-tips is not mistaken for /sql
func isProbe(path string, patterns []string) bool {
	for _, p := range patterns {
		for i := strings.Index(path, p); i >= 0; {
			rest := path[i+len(p):]
			if rest == "" || rest[0] == '/' || rest[0] == '.' || strings.HasPrefix(p, "/.") {
				return true
			}
			j := strings.Index(rest, p)
			if j < 0 {
				break
			}
			i += len(p) + j
		}
	}
	return false
}
