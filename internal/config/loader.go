package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ZENITH_SCHEDULE_DAY_START.
const EnvPrefix = "ZENITH"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a loader backed by a private viper instance. An empty
// configFile searches ConfigDir() and the working directory for zenith.yaml.
func NewLoader(configFile string) *Loader {
	return &Loader{v: viper.New(), configFile: configFile}
}

// Viper exposes the underlying instance so cobra flags can be bound to it.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// SetDefaults registers every key with its default so environment variables
// are picked up on Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := NewConfig()

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.request_timeout", defaults.Server.RequestTimeout)
	v.SetDefault("server.max_body_bytes", defaults.Server.MaxBodyBytes)

	v.SetDefault("schedule.day_start", defaults.Schedule.DayStart)
	v.SetDefault("schedule.day_end", defaults.Schedule.DayEnd)
	v.SetDefault("schedule.total_available_time", defaults.Schedule.TotalAvailableTime)
	v.SetDefault("schedule.max_duration", defaults.Schedule.MaxDuration)
	v.SetDefault("schedule.breaks", defaults.Schedule.Breaks)

	v.SetDefault("productivity.c1", defaults.Productivity.C1)
	v.SetDefault("productivity.c2", defaults.Productivity.C2)
	v.SetDefault("productivity.c3", defaults.Productivity.C3)
	v.SetDefault("productivity.integrator", defaults.Productivity.Integrator)
	v.SetDefault("productivity.quadrature_tolerance", defaults.Productivity.QuadratureTolerance)

	v.SetDefault("solver.max_iterations", defaults.Solver.MaxIterations)
	v.SetDefault("solver.tolerance", defaults.Solver.Tolerance)
	v.SetDefault("solver.timeout", defaults.Solver.Timeout)

	v.SetDefault("validation.min_rating", defaults.Validation.MinRating)
	v.SetDefault("validation.max_rating", defaults.Validation.MaxRating)
	v.SetDefault("validation.max_tasks", defaults.Validation.MaxTasks)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("audit.enabled", defaults.Audit.Enabled)
	v.SetDefault("audit.db_path", defaults.Audit.DBPath)
	v.SetDefault("audit.max_runs", defaults.Audit.MaxRuns)
}

// Load loads configuration using the cascading strategy:
// defaults, then the config file, then ZENITH_* environment variables,
// then any flags bound to the viper instance.
func (l *Loader) Load() (*Config, error) {
	v := l.v
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	} else {
		v.SetConfigName("zenith")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(cfg)
	}

	// Re-validate after applying overrides
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigUsed returns the config file that was read, if any.
func (l *Loader) ConfigUsed() string {
	return l.v.ConfigFileUsed()
}

// ConfigOverrides holds command line flag overrides. Nil fields leave the
// loaded value alone.
type ConfigOverrides struct {
	Addr        *string
	DayStart    *string
	DayEnd      *string
	TotalTime   *float64
	MaxDuration *float64
	LogLevel    *string
	LogFormat   *string
	DBPath      *string
	NoAudit     *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.Addr != nil {
		cfg.Server.Addr = *o.Addr
	}
	if o.DayStart != nil {
		cfg.Schedule.DayStart = *o.DayStart
	}
	if o.DayEnd != nil {
		cfg.Schedule.DayEnd = *o.DayEnd
	}
	if o.TotalTime != nil {
		cfg.Schedule.TotalAvailableTime = *o.TotalTime
	}
	if o.MaxDuration != nil {
		cfg.Schedule.MaxDuration = *o.MaxDuration
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Logging.Format = *o.LogFormat
	}
	if o.DBPath != nil {
		cfg.Audit.DBPath = *o.DBPath
	}
	if o.NoAudit != nil && *o.NoAudit {
		cfg.Audit.Enabled = false
	}
}
