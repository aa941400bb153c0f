package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies on write endpoints.
	MaxRequestBody = 1 << 20
	// ReadTimeout bounds handlers that only touch the in-memory store.
	ReadTimeout = 5 * time.Second
	// WriteTimeout leaves room for the simulated write latency.
	WriteTimeout = 15 * time.Second
)
