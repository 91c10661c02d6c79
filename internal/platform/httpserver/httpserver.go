package httpserver

import (
	"net/http"
	"time"
)

// New builds the service's HTTP server. Write timeout stays generous because
// a trigger endpoint may run a full stage transition, including document
// generation, before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
