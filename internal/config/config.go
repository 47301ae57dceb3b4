package config

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"zenith/internal/domain"
	"zenith/internal/productivity"
)

// Integrator names accepted by productivity.integrator.
const (
	IntegratorQuadrature = "quadrature"
	IntegratorAnalytic   = "analytic"
)

// Config holds all configuration options for the planner
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Schedule     ScheduleConfig     `mapstructure:"schedule"`
	Productivity ProductivityConfig `mapstructure:"productivity"`
	Solver       SolverConfig       `mapstructure:"solver"`
	Validation   ValidationConfig   `mapstructure:"validation"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Audit        AuditConfig        `mapstructure:"audit"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// ScheduleConfig holds the day anchors and the time budget.
// Durations are in hours.
type ScheduleConfig struct {
	DayStart           string  `mapstructure:"day_start"`
	DayEnd             string  `mapstructure:"day_end"`
	TotalAvailableTime float64 `mapstructure:"total_available_time"`
	MaxDuration        float64 `mapstructure:"max_duration"`
	Breaks             bool    `mapstructure:"breaks"`
}

// ProductivityConfig holds the decay-rate constants and integration settings
type ProductivityConfig struct {
	C1                  float64 `mapstructure:"c1"`
	C2                  float64 `mapstructure:"c2"`
	C3                  float64 `mapstructure:"c3"`
	Integrator          string  `mapstructure:"integrator"`
	QuadratureTolerance float64 `mapstructure:"quadrature_tolerance"`
}

// SolverConfig bounds the optimizer. A zero Timeout disables the wall-clock limit.
type SolverConfig struct {
	MaxIterations int           `mapstructure:"max_iterations"`
	Tolerance     float64       `mapstructure:"tolerance"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	MinRating float64 `mapstructure:"min_rating"`
	MaxRating float64 `mapstructure:"max_rating"`
	MaxTasks  int     `mapstructure:"max_tasks"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuditConfig controls the run log. MaxRuns of zero keeps every run.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
	MaxRuns int    `mapstructure:"max_runs"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	constants := productivity.DefaultConstants()

	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 20 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Schedule: ScheduleConfig{
			DayStart:           "08:00",
			DayEnd:             "22:00",
			TotalAvailableTime: 8,
			MaxDuration:        3,
			Breaks:             true,
		},
		Productivity: ProductivityConfig{
			C1:                  constants.C1,
			C2:                  constants.C2,
			C3:                  constants.C3,
			Integrator:          IntegratorQuadrature,
			QuadratureTolerance: productivity.DefaultTolerance,
		},
		Solver: SolverConfig{
			MaxIterations: 2000,
			Tolerance:     1e-8,
			Timeout:       5 * time.Second,
		},
		Validation: ValidationConfig{
			MinRating: 1,
			MaxRating: 10,
			MaxTasks:  200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Audit: AuditConfig{
			Enabled: true,
			DBPath:  DefaultDBPath(),
			MaxRuns: 1000,
		},
	}
}

// DefaultDBPath returns ~/.zenith/runs.db, or a relative path when the home
// directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zenith", "runs.db")
	}
	return filepath.Join(home, ".zenith", "runs.db")
}

// ConfigDir returns the directory searched for zenith.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zenith")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zenith"
	}
	return filepath.Join(home, ".config", "zenith")
}

// DayStartClock returns the parsed day start.
func (s ScheduleConfig) DayStartClock() (domain.ClockTime, error) {
	return domain.ParseClock(s.DayStart)
}

// DayEndClock returns the parsed day end.
func (s ScheduleConfig) DayEndClock() (domain.ClockTime, error) {
	return domain.ParseClock(s.DayEnd)
}

// Constants returns the decay-rate constants.
func (p ProductivityConfig) Constants() productivity.Constants {
	return productivity.Constants{C1: p.C1, C2: p.C2, C3: p.C3}
}

// Model builds the productivity model with the configured integrator.
func (p ProductivityConfig) Model() productivity.Model {
	if p.Integrator == IntegratorAnalytic {
		return productivity.Model{Constants: p.Constants(), Integrator: productivity.Analytic}
	}
	return productivity.NewModel(p.Constants(), p.QuadratureTolerance)
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	// Server
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read timeout must be positive"}
	}
	if c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "server.max_body_bytes", Message: "max body size must be positive"}
	}

	// Schedule
	start, err := c.Schedule.DayStartClock()
	if err != nil {
		return &ConfigError{Field: "schedule.day_start", Message: err.Error()}
	}
	end, err := c.Schedule.DayEndClock()
	if err != nil {
		return &ConfigError{Field: "schedule.day_end", Message: err.Error()}
	}
	if end <= start {
		return &ConfigError{Field: "schedule.day_end", Message: "day end must be after day start"}
	}
	if !isFinite(c.Schedule.TotalAvailableTime) || c.Schedule.TotalAvailableTime <= 0 {
		return &ConfigError{Field: "schedule.total_available_time", Message: "total available time must be positive"}
	}
	if c.Schedule.TotalAvailableTime > 24 {
		return &ConfigError{Field: "schedule.total_available_time", Message: "total available time cannot exceed 24 hours"}
	}
	if !isFinite(c.Schedule.MaxDuration) || c.Schedule.MaxDuration <= 0 {
		return &ConfigError{Field: "schedule.max_duration", Message: "max duration must be positive"}
	}

	// Productivity
	if !isFinite(c.Productivity.C1) || !isFinite(c.Productivity.C2) || !isFinite(c.Productivity.C3) {
		return &ConfigError{Field: "productivity", Message: "constants must be finite numbers"}
	}
	if c.Productivity.Integrator != IntegratorQuadrature && c.Productivity.Integrator != IntegratorAnalytic {
		return &ConfigError{Field: "productivity.integrator", Message: "integrator must be 'quadrature' or 'analytic'"}
	}
	if c.Productivity.QuadratureTolerance < 1e-14 || c.Productivity.QuadratureTolerance > 1e-3 {
		return &ConfigError{Field: "productivity.quadrature_tolerance", Message: "tolerance must be between 1e-14 and 1e-3"}
	}

	// Solver
	if c.Solver.MaxIterations < 1 {
		return &ConfigError{Field: "solver.max_iterations", Message: "max iterations must be at least 1"}
	}
	if !(c.Solver.Tolerance > 0 && c.Solver.Tolerance < 1) {
		return &ConfigError{Field: "solver.tolerance", Message: "tolerance must be between 0 and 1"}
	}
	if c.Solver.Timeout < 0 {
		return &ConfigError{Field: "solver.timeout", Message: "timeout cannot be negative"}
	}

	// Validation
	if c.Validation.MaxRating < c.Validation.MinRating {
		return &ConfigError{Field: "validation.max_rating", Message: "max rating must not be below min rating"}
	}
	if _, err := productivity.Normalize(c.Validation.MinRating, c.Validation.MinRating); err != nil {
		return &ConfigError{Field: "validation.min_rating", Message: "min rating must normalize to positive effort and enjoyability"}
	}
	if c.Validation.MaxTasks < 1 {
		return &ConfigError{Field: "validation.max_tasks", Message: "max tasks must be at least 1"}
	}

	// Logging
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return &ConfigError{Field: "logging.format", Message: "format must be 'text' or 'json'"}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.DBPath == "" {
		return &ConfigError{Field: "audit.db_path", Message: "database path cannot be empty when auditing is enabled"}
	}
	if c.Audit.MaxRuns < 0 {
		return &ConfigError{Field: "audit.max_runs", Message: "max runs cannot be negative"}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
