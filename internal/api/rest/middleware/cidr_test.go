package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
)

func trustedServer(subnet string) *httptest.Server {
	cfg := config.NewDefaultConfiguration()
	cfg.TrustedSubnet = subnet
	router := chi.NewRouter()
	router.Use(NewTrustedNetHandler(cfg).TrustedNetworkHandler)
	router.Get("/api/internal/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("authorized"))
	})
	return httptest.NewServer(router)
}

// Tests

func TestNewTrustedNetHandler(t *testing.T) {
	cfg := config.NewDefaultConfiguration()
	cfg.TrustedSubnet = "127.135.1.0/24"
	handler := NewTrustedNetHandler(cfg)
	assert.True(t, handler.Resolved)
	assert.True(t, handler.IPNet.Contains(net.ParseIP("127.135.1.77")))
	assert.False(t, handler.IPNet.Contains(net.ParseIP("127.135.2.1")))

	cfg.TrustedSubnet = ""
	assert.Equal(t, &TrustedNetHandler{}, NewTrustedNetHandler(cfg))
}

func TestTrustedNetworkHandler(t *testing.T) {
	tests := []struct {
		name    string
		subnet  string
		headers map[string]string
		code    int
	}{
		{name: "X-Real-IP inside subnet", subnet: "127.135.1.0/24", headers: map[string]string{"X-Real-IP": "127.135.1.1"}, code: http.StatusOK},
		{name: "X-Forwarded-For inside subnet", subnet: "127.135.1.0/24", headers: map[string]string{"X-Forwarded-For": "127.135.1.1, 10.0.0.1"}, code: http.StatusOK},
		{name: "peer address inside subnet", subnet: "127.0.0.0/8", code: http.StatusOK},
		{name: "outside subnet", subnet: "127.135.1.0/24", code: http.StatusForbidden},
		{name: "spoofed header outside subnet", subnet: "127.135.1.0/24", headers: map[string]string{"X-Real-IP": "10.1.1.1"}, code: http.StatusForbidden},
		{name: "no subnet configured", subnet: "", headers: map[string]string{"X-Real-IP": "127.135.1.1"}, code: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := trustedServer(tt.subnet)
			defer ts.Close()
			res, err := resty.New().R().SetHeaders(tt.headers).Get(ts.URL + "/api/internal/stats")
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.StatusCode())
		})
	}
}
