package helper

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"runtime"
	"strings"
)

// GetFuncName returns the caller's function name without the module path,
// e.g. "postservice.(*PostService).CreatePost".
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	name := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	return name
}

// TrustedProxies is the set of peers allowed to report the client address
// in X-Forwarded-For. The zero value trusts nobody.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies accepts single addresses and CIDR ranges.
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var t TrustedProxies
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return TrustedProxies{}, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			t.prefixes = append(t.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return TrustedProxies{}, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		t.prefixes = append(t.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return t, nil
}

// Trusts reports whether ip belongs to a trusted proxy.
func (t TrustedProxies) Trusts(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range t.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RemoteIP returns the client address of r without the port. The
// X-Forwarded-For chain is only read when the direct peer is trusted; it
// is walked from the right and the first hop that is not a trusted proxy
// is the client.
func (t TrustedProxies) RemoteIP(r *http.Request) string {
	peer := peerIP(r)
	if !t.Trusts(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			// a malformed hop ends the chain we can vouch for
			return peer
		}
		if !t.Trusts(hop) {
			return addr.Unmap().String()
		}
		peer = hop
	}
	return peer
}

// RemoteIP returns the direct peer address of r without the port.
func RemoteIP(r *http.Request) string {
	return peerIP(r)
}

func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
