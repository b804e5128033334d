package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      int    `json:"level" yaml:"level" validate:"min=0,max=6"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	Output     string `json:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string `json:"output_file" yaml:"output_file" validate:"required_if=Output file"`
	IndexName  string `json:"index_name" yaml:"index_name"`

	// Meilisearch ships entries to the meilisearch section's server.
	Meilisearch bool   `json:"meilisearch" yaml:"meilisearch"`
	RotateDaily bool   `json:"rotate_daily" yaml:"rotate_daily"`
	DateSuffix  string `json:"date_suffix" yaml:"date_suffix"`
}

func getLoggerConfig(v *viper.Viper) *Logger {
	indexName := strings.ToLower(getStringOrDefault(v, "app_name", "listing") + "-" + getStringOrDefault(v, "run_mode", "release") + "-log")
	return &Logger{
		Level:      getIntOrDefault(v, "logger.level", 4),
		Format:     getStringOrDefault(v, "logger.format", "json"),
		Output:     getStringOrDefault(v, "logger.output", "stdout"),
		OutputFile: v.GetString("logger.output_file"),
		IndexName:  getStringOrDefault(v, "logger.index_name", indexName),

		Meilisearch: v.GetBool("logger.meilisearch"),
		RotateDaily: v.GetBool("logger.rotate_daily"),
		DateSuffix:  getStringOrDefault(v, "logger.date_suffix", "2006.01.02"),
	}
}
