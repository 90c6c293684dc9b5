package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"resident/pkg/requestcontext"
)

// ClientMetadata extracts client IP, User-Agent and a "browser/os" device
// description from the request and adds them to the context for handlers,
// services and audit enrichment. Apply it early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		userAgent := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, userAgent, DescribeDevice(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DescribeDevice renders a User-Agent as "browser/os", or "" when it can't be parsed.
func DescribeDevice(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if ua.Bot() {
		browser = "bot:" + browser
	}
	osName := ua.OSInfo().Name
	switch {
	case browser == "" && osName == "":
		return ""
	case osName == "":
		return browser
	default:
		return browser + "/" + osName
	}
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first one is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port", or "[::1]:port" for IPv6.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return "unknown"
}
