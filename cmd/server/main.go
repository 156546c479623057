// Package main implements the entry point for the gate-api server,
// the request-processing gateway: per-client rate limiting, correlated
// structured logging, protocol security headers, and bearer-token
// access control in front of the API routes.
package main

import (
	"context"
	"fmt"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires the application
// components together. Returns any initialization error.
func initializeApp() (*application, error) {
	app, err := newApplication()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return app, nil
}
