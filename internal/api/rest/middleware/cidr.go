package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
)

// TrustedNetHandler restricts access to clients from the configured trusted subnet.
type TrustedNetHandler struct {
	Resolved bool
	IPNet    *net.IPNet
}

// NewTrustedNetHandler parses the trusted subnet; an empty or malformed subnet denies everybody.
func NewTrustedNetHandler(cfg *config.Config) *TrustedNetHandler {
	_, ipnet, err := net.ParseCIDR(cfg.TrustedSubnet)
	if err != nil {
		log.Println("Trusted network was not initialized:", err)
		return &TrustedNetHandler{}
	}
	return &TrustedNetHandler{Resolved: true, IPNet: ipnet}
}

// TrustedNetworkHandler admits the request if the peer address, X-Real-IP or the first
// X-Forwarded-For entry belongs to the trusted subnet.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved || !tn.trusted(r) {
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (tn *TrustedNetHandler) trusted(r *http.Request) bool {
	candidates := []string{r.Header.Get("X-Real-IP")}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		candidates = append(candidates, strings.TrimSpace(strings.Split(fwd, ",")[0]))
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		candidates = append(candidates, host)
	}
	for _, c := range candidates {
		if ip := net.ParseIP(c); ip != nil && tn.IPNet.Contains(ip) {
			return true
		}
	}
	return false
}
