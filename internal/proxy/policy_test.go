package proxy

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeaderPolicyIsClosed(t *testing.T) {
	p := DefaultHeaderPolicy()

	assert.True(t, p.Forwardable("Accept"))
	assert.True(t, p.Forwardable("Content-Type"))
	assert.True(t, p.Forwardable("User-Agent"))

	assert.False(t, p.Forwardable("Host"))
	assert.False(t, p.Forwardable("Authorization"))
	assert.False(t, p.Forwardable("Connection"))
	assert.False(t, p.Forwardable("Content-Length"))
	assert.False(t, p.Forwardable("Cookie"))
	assert.False(t, p.Forwardable("X-Forwarded-For"))
}

func TestHeaderPolicyCaseInsensitive(t *testing.T) {
	p := DefaultHeaderPolicy()

	assert.True(t, p.Forwardable("accept"))
	assert.True(t, p.Forwardable("ACCEPT"))
	assert.True(t, p.Forwardable("content-type"))
	assert.True(t, p.Forwardable("USER-AGENT"))
	assert.False(t, p.Forwardable("HOST"))
}

func TestHeaderPolicyFilter(t *testing.T) {
	p := DefaultHeaderPolicy()

	in := http.Header{}
	in.Set("Accept", "application/json")
	in.Set("Content-Type", "application/json")
	in.Set("User-Agent", "test-agent/1.0")
	in.Set("Host", "evil.example.com")
	in.Set("Authorization", "Bearer sneaky")
	in.Set("Connection", "keep-alive")
	in.Set("Cookie", "session=1")

	out := p.Filter(in)

	assert.Equal(t, "application/json", out.Get("Accept"))
	assert.Equal(t, "application/json", out.Get("Content-Type"))
	assert.Equal(t, "test-agent/1.0", out.Get("User-Agent"))
	assert.Empty(t, out.Get("Host"))
	assert.Empty(t, out.Get("Authorization"))
	assert.Empty(t, out.Get("Connection"))
	assert.Empty(t, out.Get("Cookie"))
	assert.Len(t, out, 3)
}

func TestHeaderPolicyFilterPreservesMultipleValues(t *testing.T) {
	p := DefaultHeaderPolicy()

	in := http.Header{}
	in.Add("Accept", "application/json")
	in.Add("Accept", "text/plain")

	out := p.Filter(in)
	assert.Equal(t, []string{"application/json", "text/plain"}, out.Values("Accept"))
}

func TestCacheDirective(t *testing.T) {
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=300",
		cacheDirective(60*time.Second, 300*time.Second))
	assert.Equal(t, "public, s-maxage=60", cacheDirective(60*time.Second, 0))
	assert.Equal(t, "", cacheDirective(0, 300*time.Second))
}
