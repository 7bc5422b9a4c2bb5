package config

import (
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultServerName      = "localhost"
	DefaultServerPort      = 6667
	DefaultBindAddress     = "0.0.0.0"
	DefaultMaxConnections  = 0 // unlimited
	DefaultPingFrequency   = 60 * time.Second
	DefaultInboundQueueLen = 64
	DefaultReplyQueueLen   = 16

	DefaultLogLevel  = "INFO"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stdout"

	DefaultTelemetryEndpoint = "localhost:4317"
	DefaultSampleRate        = 1.0
	DefaultProfilingEndpoint = "http://localhost:4040"

	DefaultMetricsPort = 9090

	DefaultShutdownTimeout = 30 * time.Second
)

// ApplyDefaults fills in default values for any unset configuration fields.
// This is called after loading from file/env to ensure all fields have
// sensible values.
func ApplyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// applyServerDefaults sets default server configuration
func applyServerDefaults(server *ServerConfig) {
	if server.Name == "" {
		server.Name = DefaultServerName
	}
	if server.BindAddress == "" {
		server.BindAddress = DefaultBindAddress
	}
	if server.Port == 0 {
		server.Port = DefaultServerPort
	}
	if server.PingFrequency == 0 {
		server.PingFrequency = DefaultPingFrequency
	}
	if server.InboundQueueLen == 0 {
		server.InboundQueueLen = DefaultInboundQueueLen
	}
	if server.ReplyQueueLen == 0 {
		server.ReplyQueueLen = DefaultReplyQueueLen
	}
}

// applyLoggingDefaults sets default logging configuration
func applyLoggingDefaults(logging *LoggingConfig) {
	if logging.Level == "" {
		logging.Level = DefaultLogLevel
	} else {
		// Normalize to uppercase
		logging.Level = strings.ToUpper(logging.Level)
	}
	if logging.Format == "" {
		logging.Format = DefaultLogFormat
	}
	if logging.Output == "" {
		logging.Output = DefaultLogOutput
	}
}

// applyTelemetryDefaults sets default telemetry configuration
func applyTelemetryDefaults(telemetry *TelemetryConfig) {
	if telemetry.Endpoint == "" {
		telemetry.Endpoint = DefaultTelemetryEndpoint
	}
	if telemetry.SampleRate == 0 {
		telemetry.SampleRate = DefaultSampleRate
	}

	if telemetry.Profiling.Endpoint == "" {
		telemetry.Profiling.Endpoint = DefaultProfilingEndpoint
	}
	if len(telemetry.Profiling.ProfileTypes) == 0 {
		telemetry.Profiling.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
		}
	}
}

// applyMetricsDefaults sets default metrics configuration
func applyMetricsDefaults(metrics *MetricsConfig) {
	if metrics.Port == 0 {
		metrics.Port = DefaultMetricsPort
	}
}

// GetDefaultConfig returns a configuration with all default values.
// Useful for generating initial config files.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
