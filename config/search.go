package config

import (
	"time"

	"github.com/spf13/viper"
)

// Search search backend config struct
type Search struct {
	Engine          string `validate:"oneof=graphql meilisearch"`
	Endpoint        string `validate:"required_if=Engine graphql,omitempty,url"`
	APIKey          string
	Timeout         time.Duration
	DefaultPageSize int `validate:"min=1,max=100"`
	MaxPageSize     int `validate:"min=1,max=100,gtefield=DefaultPageSize"`
	TemplateFile    string
	Token           string
	Fields          map[string]string
	CacheTTL        time.Duration
}

func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		Engine:          getStringOrDefault(v, "search.engine", "graphql"),
		Endpoint:        v.GetString("search.endpoint"),
		APIKey:          v.GetString("search.api_key"),
		Timeout:         getDurationOrDefault(v, "search.timeout", 10*time.Second),
		DefaultPageSize: getIntOrDefault(v, "search.default_page_size", 12),
		MaxPageSize:     getIntOrDefault(v, "search.max_page_size", 100),
		TemplateFile:    v.GetString("search.template_file"),
		Token:           v.GetString("search.token"),
		Fields:          v.GetStringMapString("search.fields"),
		CacheTTL:        getDurationOrDefault(v, "search.cache_ttl", 5*time.Minute),
	}
}

// Meilisearch meilisearch config struct
type Meilisearch struct {
	Host   string `json:"host" yaml:"host" validate:"omitempty,url"`
	APIKey string `json:"api_key" yaml:"api_key"`
	Index  string `json:"index" yaml:"index"`
}

func getMeilisearchConfig(v *viper.Viper) *Meilisearch {
	if !v.IsSet("meilisearch") {
		return nil
	}
	return &Meilisearch{
		Host:   v.GetString("meilisearch.host"),
		APIKey: v.GetString("meilisearch.api_key"),
		Index:  getStringOrDefault(v, "meilisearch.index", "content"),
	}
}

// Redis redis config struct
type Redis struct {
	Addr         string `validate:"required"`
	Username     string
	Password     string
	DB           int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

func getRedisConfig(v *viper.Viper) *Redis {
	if !v.IsSet("redis.addr") {
		return nil
	}
	return &Redis{
		Addr:         v.GetString("redis.addr"),
		Username:     v.GetString("redis.username"),
		Password:     v.GetString("redis.password"),
		DB:           v.GetInt("redis.db"),
		ReadTimeout:  getDurationOrDefault(v, "redis.read_timeout", 3*time.Second),
		WriteTimeout: getDurationOrDefault(v, "redis.write_timeout", 3*time.Second),
		DialTimeout:  getDurationOrDefault(v, "redis.dial_timeout", 5*time.Second),
	}
}

// Breaker circuit breaker config struct
type Breaker struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64 `validate:"gt=0,lte=1"`
}

func getBreakerConfig(v *viper.Viper) *Breaker {
	return &Breaker{
		MaxRequests:  getUint32OrDefault(v, "breaker.max_requests", 5),
		Interval:     getDurationOrDefault(v, "breaker.interval", 60*time.Second),
		Timeout:      getDurationOrDefault(v, "breaker.timeout", 30*time.Second),
		MinRequests:  getUint32OrDefault(v, "breaker.min_requests", 5),
		FailureRatio: getFloat64OrDefault(v, "breaker.failure_ratio", 0.6),
	}
}
