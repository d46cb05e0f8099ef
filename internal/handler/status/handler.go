package status

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/reception-gateway/internal/model"
	"github.com/jwalitptl/reception-gateway/pkg/httputil"
)

// Prober performs authorized upstream reads: a status probe and a token
// verification.
type Prober interface {
	Probe(ctx context.Context, token string) (int, error)
	VerifyToken(ctx context.Context, token string) (*model.TokenInfo, error)
}

// Handler exposes connection diagnostics: whether a server credential is
// configured and whether the upstream accepts it. The token itself is never
// returned, only its length and a short preview.
type Handler struct {
	upstream    Prober
	serverToken string
}

func NewHandler(upstream Prober, serverToken string) *Handler {
	return &Handler{upstream: upstream, serverToken: serverToken}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	status := r.Group("/status")
	{
		status.GET("/connection", h.ConnectionCheck)
	}
}

type connectionReport struct {
	TokenConfigured   bool   `json:"token_configured"`
	TokenLength       int    `json:"token_length"`
	TokenPreview      string `json:"token_preview"`
	UpstreamStatus    int    `json:"upstream_status,omitempty"`
	UpstreamError     string `json:"upstream_error,omitempty"`
	ConnectionHealthy bool   `json:"connection_healthy"`
	TokenValid        *bool  `json:"token_valid,omitempty"`
	TokenOwner        string `json:"token_owner,omitempty"`
	Timestamp         string `json:"timestamp"`
}

func (h *Handler) ConnectionCheck(c *gin.Context) {
	report := connectionReport{
		TokenConfigured: h.serverToken != "",
		TokenLength:     len(h.serverToken),
		TokenPreview:    previewToken(h.serverToken),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}

	status, err := h.upstream.Probe(c.Request.Context(), h.serverToken)
	if err != nil {
		report.UpstreamError = err.Error()
	} else {
		report.UpstreamStatus = status
		report.ConnectionHealthy = status == http.StatusOK
	}

	// A reachable upstream can still reject the credential; ask it directly.
	if report.ConnectionHealthy && report.TokenConfigured {
		if info, err := h.upstream.VerifyToken(c.Request.Context(), h.serverToken); err == nil {
			report.TokenValid = &info.IsValid
			report.TokenOwner = info.Name
		}
	}

	httputil.RespondWithSuccess(c, report)
}

// previewToken keeps enough of the token to recognize it, never the whole
// value.
func previewToken(token string) string {
	if token == "" {
		return "N/A"
	}
	if len(token) <= 10 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", token[:5], token[len(token)-5:])
}
