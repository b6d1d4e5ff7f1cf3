// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

const (
	// DefaultIdleConnsPerHost is the keep-alive pool size per host.
	DefaultIdleConnsPerHost = 5

	// DefaultIdleConnTimeout is one second under the 60 second idle
	// timeout of the load balancers in front of the chat API, so the
	// client closes idle connections before the server side does.
	DefaultIdleConnTimeout = 59 * time.Second
)

// HTTPClientConfig configures NewHTTPClient.
type HTTPClientConfig struct {
	// Timeout bounds each request end to end (dial, TLS, headers, body).
	// Zero means no timeout.
	Timeout time.Duration

	// IdleConnsPerHost overrides DefaultIdleConnsPerHost when positive.
	IdleConnsPerHost int

	// IdleConnTimeout overrides DefaultIdleConnTimeout when positive.
	IdleConnTimeout time.Duration
}

// NewHTTPClient returns an *http.Client with a keep-alive pool and a
// transport that negotiates gzip and zstd response compression and
// decompresses transparently. The client is safe for concurrent use
// and intended to live for the lifetime of the SDK client.
func NewHTTPClient(config HTTPClientConfig) *http.Client {
	idlePerHost := config.IdleConnsPerHost
	if idlePerHost <= 0 {
		idlePerHost = DefaultIdleConnsPerHost
	}
	idleTimeout := config.IdleConnTimeout
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleConnTimeout
	}

	dialer := &net.Dialer{
		Timeout:   config.Timeout,
		KeepAlive: 30 * time.Second,
	}

	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        idlePerHost * 4,
		MaxIdleConnsPerHost: idlePerHost,
		IdleConnTimeout:     idleTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		// gzhttp owns Accept-Encoding and decoding.
		DisableCompression: true,
	}

	return &http.Client{
		Timeout:   config.Timeout,
		Transport: gzhttp.Transport(base),
	}
}
