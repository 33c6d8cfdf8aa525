package http

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurePayClientConfig(t *testing.T) {
	cfg := SecurePayClientConfig()

	assert.Equal(t, cfg.MaxIdleConns, cfg.MaxIdleConnsPerHost, "single host: whole pool per host")
	assert.Greater(t, cfg.ResponseHeaderTimeout, 60*time.Second)
	assert.False(t, cfg.InsecureSkipVerify)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinTLSVersion)
}

func TestNewHTTPClient(t *testing.T) {
	cfg := SecurePayClientConfig()
	cfg.InsecureSkipVerify = true

	client := NewHTTPClient(cfg, 30*time.Second)

	assert.Equal(t, 30*time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, cfg.MaxConnsPerHost, transport.MaxConnsPerHost)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.NotNil(t, transport.Proxy)
}
