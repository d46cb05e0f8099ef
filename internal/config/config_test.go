package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://phongkhamdaihocypnt.edu.vn/nhansu/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 9, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, 60, cfg.Upstream.CacheMaxAgeSeconds)
	assert.Equal(t, 300, cfg.Upstream.CacheStaleSeconds)
	assert.Equal(t, []int{2, 3, 5, 6}, cfg.BFF.ClinicCategoryIDs)
	assert.Equal(t, 100, cfg.BFF.ClinicsPerPage)
	assert.Equal(t, 1000, cfg.BFF.SchedulesPerPage)
	assert.False(t, cfg.Diagnostics.Enabled)
	assert.Empty(t, cfg.Upstream.Token)
}

func TestLoadConfigTokenFromEnvironmentOnly(t *testing.T) {
	viper.Reset()
	t.Setenv("UPSTREAM_API_TOKEN", "env-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Upstream.Token)
}

func TestUpstreamHost(t *testing.T) {
	u := UpstreamConfig{BaseURL: "https://phongkhamdaihocypnt.edu.vn/nhansu/api"}
	host, err := u.Host()
	require.NoError(t, err)
	assert.Equal(t, "phongkhamdaihocypnt.edu.vn", host)
}

func TestUpstreamHostRejectsHostlessURL(t *testing.T) {
	u := UpstreamConfig{BaseURL: "/just/a/path"}
	_, err := u.Host()
	assert.Error(t, err)
}
