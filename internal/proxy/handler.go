package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/reception-gateway/internal/auth"
	"github.com/jwalitptl/reception-gateway/internal/upstream"
	"github.com/jwalitptl/reception-gateway/pkg/errors"
	"github.com/jwalitptl/reception-gateway/pkg/httputil"
	"github.com/jwalitptl/reception-gateway/pkg/metrics"
)

// proxiedMethods is the set of methods the gateway forwards.
var proxiedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

// Config holds the gateway's forwarding parameters.
type Config struct {
	// BaseURL is the upstream API root the inbound path suffix is appended to.
	BaseURL string
	// Host is the value the outbound Host header is pinned to.
	Host string
	// Prefix is the inbound route prefix stripped before forwarding.
	Prefix string
	// Timeout bounds each upstream call.
	Timeout time.Duration
	// CacheMaxAge/CacheStale build the Cache-Control hint for successful
	// GETs. Zero CacheMaxAge disables the hint.
	CacheMaxAge time.Duration
	CacheStale  time.Duration
}

// Handler forwards requests under a wildcard prefix to the upstream API,
// normalizing headers and injecting the resolved credential. It owns no
// state across requests and performs exactly one upstream call per inbound
// request, never retrying.
type Handler struct {
	client   *http.Client
	base     *url.URL
	host     string
	prefix   string
	timeout  time.Duration
	cacheHdr string
	resolver *auth.Resolver
	policy   HeaderPolicy
	metrics  *metrics.Metrics
}

func NewHandler(cfg Config, resolver *auth.Resolver, policy HeaderPolicy, m *metrics.Metrics) (*Handler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}

	return &Handler{
		client: &http.Client{
			// Upstream redirects are relayed raw so callers can observe
			// them instead of having them silently resolved.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base:     base,
		host:     cfg.Host,
		prefix:   cfg.Prefix,
		timeout:  cfg.Timeout,
		cacheHdr: cacheDirective(cfg.CacheMaxAge, cfg.CacheStale),
		resolver: resolver,
		policy:   policy,
		metrics:  m,
	}, nil
}

// cacheDirective builds the shared-cache hint attached to successful GETs.
func cacheDirective(maxAge, stale time.Duration) string {
	if maxAge <= 0 {
		return ""
	}
	directives := []string{
		"public",
		"s-maxage=" + strconv.Itoa(int(maxAge.Seconds())),
	}
	if stale > 0 {
		directives = append(directives, "stale-while-revalidate="+strconv.Itoa(int(stale.Seconds())))
	}
	return strings.Join(directives, ", ")
}

// Forward handles any request under the configured prefix. It is registered
// as the router's NoRoute handler because gin cannot mix a catch-all route
// with the sibling BFF routes.
func (h *Handler) Forward(c *gin.Context) {
	inbound := c.Request

	if !strings.HasPrefix(inbound.URL.Path, h.prefix+"/") {
		httputil.RespondWithError(c, errors.NotFound("not found"))
		return
	}
	if _, ok := proxiedMethods[inbound.Method]; !ok {
		httputil.RespondWithError(c, errors.MethodNotAllowed("method not allowed"))
		return
	}

	suffix := strings.TrimPrefix(inbound.URL.Path, h.prefix)
	target := *h.base
	target.Path = strings.TrimSuffix(h.base.Path, "/") + suffix
	target.RawQuery = inbound.URL.RawQuery

	ctx, cancel := context.WithTimeout(inbound.Context(), h.timeout)
	defer cancel()

	// Bodies are forwarded for POST and PUT only; GET and DELETE never
	// carry one upstream regardless of what the client sent.
	var body io.Reader
	if inbound.Method == http.MethodPost || inbound.Method == http.MethodPut {
		body = inbound.Body
	}

	req, err := http.NewRequestWithContext(ctx, inbound.Method, target.String(), body)
	if err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}
	if body != nil && inbound.ContentLength >= 0 {
		req.ContentLength = inbound.ContentLength
	}

	req.Header = h.policy.Filter(inbound.Header)
	if authz := h.resolver.AuthorizationHeader(inbound.Header.Get("Authorization")); authz != "" {
		req.Header.Set("Authorization", authz)
	}
	req.Host = h.host

	resp, err := h.client.Do(req)
	if err != nil {
		appErr := upstream.ClassifyTransportError(err)
		log.Error().
			Err(err).
			Str("method", inbound.Method).
			Str("path", suffix).
			Int("status", appErr.StatusCode()).
			Msg("proxy forward failed")
		h.metrics.CountForward(inbound.Method, strconv.Itoa(appErr.StatusCode()))
		httputil.RespondWithError(c, appErr)
		return
	}
	defer resp.Body.Close()

	h.relay(c, resp)
	h.metrics.CountForward(inbound.Method, strconv.Itoa(resp.StatusCode))
}

// relay writes the upstream response back verbatim: status, headers and raw
// body bytes, with the optional cache hint on successful GETs.
func (h *Handler) relay(c *gin.Context, resp *http.Response) {
	header := c.Writer.Header()
	for name, values := range resp.Header {
		for _, v := range values {
			header.Add(name, v)
		}
	}

	if h.cacheHdr != "" && c.Request.Method == http.MethodGet &&
		resp.StatusCode >= 200 && resp.StatusCode < 300 {
		header.Set("Cache-Control", h.cacheHdr)
	}

	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		// Status already went out; the copy failure is only observable here.
		log.Warn().Err(err).Msg("proxy response relay interrupted")
	}
}
