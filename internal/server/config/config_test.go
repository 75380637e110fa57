package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	// The two signing domains must not share a secret, even in dev defaults.
	require.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":9090", "-s", "acc", "-k", "ref", "-t", "10", "-r", "120", "-o", "https://shop.example.com"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	require.Equal(t, "acc", cfg.AccessTokenSecret)
	require.Equal(t, "ref", cfg.RefreshTokenSecret)
	require.Equal(t, 10*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 120*time.Minute, cfg.RefreshTokenValidityDuration)
	require.Equal(t, "https://shop.example.com", cfg.CORSOrigin)
}

func TestParseJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"endpoint_addr_http": ":7070",
		"access_token_validity_duration": "2m",
		"refresh_token_validity_duration": "48h",
		"paypal_client_id": "pp-123"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	require.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
	require.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
	require.Equal(t, "pp-123", cfg.PayPalClientID)
	// Untouched fields keep their defaults.
	require.Equal(t, "accessSecret", cfg.AccessTokenSecret)
}
