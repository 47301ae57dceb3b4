package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"zenith/internal/api"
	"zenith/internal/config"
	"zenith/internal/logging"
	"zenith/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what every command needs: the API, the loaded configuration,
// and where to read and write.
type App struct {
	api    api.API
	config *config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		logger: logger,
		in:     in,
		out:    out,
	}
}

// APIFactory builds the API for a loaded configuration. The returned close
// function releases whatever the API holds open.
type APIFactory func(cfg *config.Config, logger *slog.Logger) (api.API, func() error, error)

// NewAPIFromConfig opens the run log when auditing is enabled and wires the
// services behind the API.
func NewAPIFromConfig(cfg *config.Config, logger *slog.Logger) (api.API, func() error, error) {
	container := &services.ServiceContainer{}
	closeFn := func() error { return nil }

	if cfg.Audit.Enabled {
		repo, err := config.CreateRepository(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open run log: %w", err)
		}
		container.Runs = services.NewRunService(repo)
		closeFn = repo.Close

		planner, err := services.NewPlannerService(cfg, repo, logger)
		if err != nil {
			repo.Close()
			return nil, nil, err
		}
		container.Planner = planner
	} else {
		planner, err := services.NewPlannerService(cfg, nil, logger)
		if err != nil {
			return nil, nil, err
		}
		container.Planner = planner
	}

	return api.New(container, cfg), closeFn, nil
}
