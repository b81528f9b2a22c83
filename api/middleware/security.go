package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

// SecurityHeaders sets the CSP and the usual hardening headers. HSTS is only
// sent outside development.
func SecurityHeaders(isDev bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		ContentSecurityPolicy: contentSecurityPolicy,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            15552000,
		STSIncludeSubdomains:  true,
		STSPreload:            false,
		ForceSTSHeader:        true,
		IsDevelopment:         isDev,
	}).Handler
}
