package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"` // OTLP gRPC endpoint

	// Service identification
	ServiceName    string `json:"service_name" yaml:"service_name"`
	ServiceVersion string `json:"service_version" yaml:"service_version"`
	Environment    string `json:"environment" yaml:"environment"`

	// Sampling configuration
	SamplingRate float64 `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"` // 0.0 to 1.0

	// Performance tuning
	MaxExportBatchSize int           `json:"max_export_batch_size" yaml:"max_export_batch_size"`
	BatchTimeout       time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout      time.Duration `json:"export_timeout" yaml:"export_timeout"`
}

func getTracerConfig(v *viper.Viper) *Tracer {
	if v.GetString("tracer.endpoint") == "" {
		return nil
	}
	return &Tracer{
		Endpoint:           v.GetString("tracer.endpoint"),
		ServiceName:        getStringOrDefault(v, "tracer.service_name", getStringOrDefault(v, "app_name", "listing")),
		ServiceVersion:     v.GetString("tracer.service_version"),
		Environment:        getStringOrDefault(v, "tracer.environment", getStringOrDefault(v, "run_mode", "release")),
		SamplingRate:       getFloat64OrDefault(v, "tracer.sampling_rate", 1.0),
		MaxExportBatchSize: getIntOrDefault(v, "tracer.max_export_batch_size", 512),
		BatchTimeout:       getDurationOrDefault(v, "tracer.batch_timeout", 5*time.Second),
		ExportTimeout:      getDurationOrDefault(v, "tracer.export_timeout", 30*time.Second),
	}
}

// Sentry error reporting config struct
type Sentry struct {
	Endpoint    string  `json:"endpoint" yaml:"endpoint" validate:"required,url"` // DSN
	Environment string  `json:"environment" yaml:"environment"`
	Release     string  `json:"release" yaml:"release"`
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
}

func getSentryConfig(v *viper.Viper) *Sentry {
	if v.GetString("sentry.endpoint") == "" {
		return nil
	}
	return &Sentry{
		Endpoint:    v.GetString("sentry.endpoint"),
		Environment: getStringOrDefault(v, "sentry.environment", getStringOrDefault(v, "run_mode", "release")),
		Release:     v.GetString("sentry.release"),
		SampleRate:  getFloat64OrDefault(v, "sentry.sample_rate", 1.0),
	}
}
