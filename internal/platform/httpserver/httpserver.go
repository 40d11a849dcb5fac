package httpserver

import (
	"net/http"
	"time"

	"rdapd/internal/platform/config"
)

// New builds an HTTP server from the server section of the configuration.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	readHeader := cfg.ReadHeaderTimeout
	if readHeader <= 0 {
		readHeader = 5 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeader,
		IdleTimeout:       60 * time.Second,
	}
}
