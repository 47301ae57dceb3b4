package cli

import (
	"context"

	"zenith/internal/api"
)

// ServeCommand runs the HTTP server until its context is cancelled.
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute listens on the configured address and blocks until ctx is done.
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	server := api.NewServer(c.app.api, c.app.config.Server, c.app.logger)
	return server.ListenAndServe(ctx)
}
