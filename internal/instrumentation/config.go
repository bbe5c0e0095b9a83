package instrumentation

import "io"

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: daybrief)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active. When false the
	// provider records nothing and exports nothing.
	Enabled bool

	// Writer receives the exported metrics (default: stderr, keeping
	// stdout free for the rendered brief).
	Writer io.Writer
}

// NewConfig returns an instrumentation configuration for the given build.
func NewConfig(serviceName, serviceVersion string, enabled bool) Config {
	if serviceName == "" {
		serviceName = "daybrief"
	}
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Enabled:        enabled,
	}
}
