package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client for outbound API calls.
//
// http.DefaultClient has no timeout, so callers always go through this.
// Quote enrichment fans out to a single host, so idle connections are
// kept per host well above the net/http default of 2.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
