// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config is the application configuration.
	Config *config.Config
	// Logger is the structured logger.
	Logger *logger.Logger
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
