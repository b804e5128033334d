package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("app_name", "marketing")
	v.Set("search.endpoint", "https://cms.example.com/sitecore/api/graph/edge")
	v.Set("sites.list", []map[string]any{
		{"name": "corporate", "hosts": []string{"www.example.com"}, "languages": []string{"en", "de"}},
	})
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(baseViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.Engine != "graphql" || cfg.Search.DefaultPageSize != 12 {
		t.Errorf("unexpected search defaults %+v", cfg.Search)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Logger.IndexName != "marketing-release-log" {
		t.Errorf("unexpected index name %q", cfg.Logger.IndexName)
	}
	if cfg.Redis != nil || cfg.Tracer != nil || cfg.Sentry != nil || cfg.Meilisearch != nil {
		t.Errorf("optional sections must stay nil when unset")
	}
	if len(cfg.Sites.List) != 1 || cfg.Sites.List[0].Name != "corporate" {
		t.Fatalf("unexpected sites %+v", cfg.Sites.List)
	}
	r, err := cfg.Sites.Resolver()
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	if s, _ := r.Resolve("", "www.example.com"); s == nil || s.Name != "corporate" {
		t.Errorf("expected host lookup to resolve corporate")
	}
}

func TestFromViperRequiresEndpointForGraphQL(t *testing.T) {
	v := baseViper()
	v.Set("search.endpoint", "")
	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected validation error for missing endpoint")
	}

	v.Set("search.engine", "meilisearch")
	v.Set("meilisearch.host", "http://localhost:7700")
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Meilisearch == nil || cfg.Meilisearch.Index != "content" {
		t.Errorf("unexpected meilisearch config %+v", cfg.Meilisearch)
	}
}

func TestFromViperRejectsBadPageSizes(t *testing.T) {
	v := baseViper()
	v.Set("search.default_page_size", 50)
	v.Set("search.max_page_size", 20)
	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected error when default exceeds max page size")
	}
}

func TestFromViperRequiresSites(t *testing.T) {
	v := viper.New()
	v.Set("search.endpoint", "https://cms.example.com/graph")
	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected error without sites")
	}
}

func TestOptionalSections(t *testing.T) {
	v := baseViper()
	v.Set("redis.addr", "localhost:6379")
	v.Set("tracer.endpoint", "localhost:4317")
	v.Set("breaker.failure_ratio", 0.5)
	v.Set("sentry.endpoint", "https://key@sentry.example.com/1")
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Redis == nil || cfg.Redis.DialTimeout != 5*time.Second {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Tracer == nil || cfg.Tracer.ServiceName != "marketing" || cfg.Tracer.SamplingRate != 1.0 {
		t.Errorf("unexpected tracer config %+v", cfg.Tracer)
	}
	if cfg.Sentry == nil || cfg.Sentry.Environment != "release" || cfg.Sentry.SampleRate != 1.0 {
		t.Errorf("unexpected sentry config %+v", cfg.Sentry)
	}
	if cfg.Breaker.FailureRatio != 0.5 {
		t.Errorf("unexpected breaker ratio %v", cfg.Breaker.FailureRatio)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app_name: marketing
run_mode: debug
search:
  endpoint: https://cms.example.com/graph
  default_page_size: 9
  fields:
    topics: topicTags
sites:
  default: corporate
  list:
    - name: corporate
      hosts: [www.example.com]
      languages: [en]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RunMode != "debug" || cfg.Search.DefaultPageSize != 9 {
		t.Errorf("unexpected config %+v %+v", cfg, cfg.Search)
	}
	if cfg.Search.Fields["topics"] != "topicTags" {
		t.Errorf("unexpected field mapping %v", cfg.Search.Fields)
	}
	if cfg.Sites.Default != "corporate" {
		t.Errorf("unexpected default site %q", cfg.Sites.Default)
	}
}
