// Package middleware holds the edge middleware of the API server: client
// IP resolution, per-client rate limiting and CORS.
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor is an interface for extracting client IP addresses from HTTP requests.
type IPExtractor interface {
	// ExtractIP extracts the client IP address from an HTTP request.
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor extracts the client IP from the RemoteAddr field of the HTTP request.
// The TCP peer cannot be spoofed, so this is the default.
type RemoteAddrExtractor struct{}

// ExtractIP returns r.RemoteAddr without its port.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
//   - "127.0.0.1" → "127.0.0.1" (no port)
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyExtractor reads X-Forwarded-For or X-Real-IP, but only when
// the TCP peer is one of the trusted proxies. Other peers get RemoteAddr.
type TrustedProxyExtractor struct {
	proxies []netip.Prefix
}

// NewIPExtractor returns a RemoteAddrExtractor when proxies is empty and a
// TrustedProxyExtractor otherwise. Each entry is an IP or a CIDR.
func NewIPExtractor(proxies []string) (IPExtractor, error) {
	prefixes, err := ParseTrustedProxies(proxies)
	if err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		return RemoteAddrExtractor{}, nil
	}
	return &TrustedProxyExtractor{proxies: prefixes}, nil
}

// ParseTrustedProxies parses IPs ("10.0.0.1") and CIDRs ("10.0.0.0/8").
// A single IP becomes a /32 or /128 prefix.
func ParseTrustedProxies(proxies []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(p); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		ip, err := netip.ParseAddr(p)
		if err != nil {
			return nil, fmt.Errorf("invalid IP or CIDR format '%s': must be valid IP address or CIDR notation", p)
		}
		out = append(out, netip.PrefixFrom(ip, ip.BitLen()))
	}
	return out, nil
}

// isTrusted reports whether remoteAddr belongs to a trusted proxy.
func (e *TrustedProxyExtractor) isTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range e.proxies {
		if prefix.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}

// ExtractIP prefers X-Forwarded-For (first entry), then X-Real-IP, then
// RemoteAddr. Headers from untrusted peers are ignored and logged.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.isTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted proxy attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr extracts the IP address from a "host:port" or "IP" string.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// アドレスにポートが無い場合はそのまま IP として解釈
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP parses the first IP address of an X-Forwarded-For list
// ("client, proxy1, proxy2"). It returns "" when that entry is not an IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
