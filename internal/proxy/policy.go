package proxy

import (
	"net/http"
	"strings"
)

// ForwardableHeaders is the closed allow-list of inbound headers relayed
// upstream. Everything else, including client-supplied Host, Connection and
// Content-Length, is dropped; Authorization is handled by the credential
// resolver, not the policy.
var ForwardableHeaders = []string{
	"accept",
	"content-type",
	"user-agent",
}

// HeaderPolicy is a set-membership test over header names.
type HeaderPolicy struct {
	allowed map[string]struct{}
}

// NewHeaderPolicy builds a policy from a list of header names,
// case-insensitively.
func NewHeaderPolicy(names []string) HeaderPolicy {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[strings.ToLower(name)] = struct{}{}
	}
	return HeaderPolicy{allowed: allowed}
}

// DefaultHeaderPolicy returns the gateway's standard allow-list.
func DefaultHeaderPolicy() HeaderPolicy {
	return NewHeaderPolicy(ForwardableHeaders)
}

// Forwardable reports whether a single header may reach upstream.
func (p HeaderPolicy) Forwardable(name string) bool {
	_, ok := p.allowed[strings.ToLower(name)]
	return ok
}

// Filter returns a copy of h containing only forwardable headers.
func (p HeaderPolicy) Filter(h http.Header) http.Header {
	out := make(http.Header, len(p.allowed))
	for name, values := range h {
		if !p.Forwardable(name) {
			continue
		}
		for _, v := range values {
			out.Add(name, v)
		}
	}
	return out
}
