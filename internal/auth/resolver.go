package auth

import "strings"

// Resolver decides which credential reaches upstream. A server-configured
// token always wins over whatever the client sent, guarding against stale
// client-side tokens; without one, the client's bearer token is used as-is.
type Resolver struct {
	serverToken string
}

func NewResolver(serverToken string) *Resolver {
	return &Resolver{serverToken: serverToken}
}

// HasServerToken reports whether a server-side credential is configured.
func (r *Resolver) HasServerToken() bool {
	return r.serverToken != ""
}

// Token resolves the bare bearer token from an inbound Authorization header
// value. Returns "" when no credential is available.
func (r *Resolver) Token(authorizationHeader string) string {
	if r.serverToken != "" {
		return r.serverToken
	}
	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthorizationHeader resolves the full outbound Authorization header value.
// With a server token configured the inbound value is replaced outright;
// otherwise it is forwarded unchanged. Returns "" when nothing should be sent.
func (r *Resolver) AuthorizationHeader(inbound string) string {
	if r.serverToken != "" {
		return "Bearer " + r.serverToken
	}
	return inbound
}
