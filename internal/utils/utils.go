package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// EnsureScheme prepends https:// to schemeless URLs. Already-schemed URLs
// are returned unchanged, preserving the original scheme.
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// SchemeHost returns the scheme://host[:port] prefix of raw, suitable for
// resolving root-relative hrefs against the page they came from. The host is
// lowercased and IDN hosts are converted to punycode; non-default ports are
// preserved.
func SchemeHost(raw string) (string, error) {
	u, err := url.Parse(EnsureScheme(raw))
	if err != nil {
		return "", fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %s has no host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}

	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	}

	return scheme + "://" + host, nil
}
