// Package meilisearch provides a logrus hook for sending logs to Meilisearch.
package meilisearch

import (
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/ncobase/listing/config"
	"github.com/sirupsen/logrus"
)

// Documents is the part of a meilisearch index the hook writes to.
type Documents interface {
	AddDocuments(documentsPtr any, options *meilisearch.DocumentOptions) (*meilisearch.TaskInfo, error)
}

// Hook is a logrus hook for Meilisearch
type Hook struct {
	index       func(name string) Documents
	indexName   string
	dateSuffix  string
	rotateDaily bool
	levels      []logrus.Level
	now         func() time.Time
}

// NewHook creates a new Meilisearch hook from config
func NewHook(ms *config.Meilisearch, lc *config.Logger) (*Hook, error) {
	if ms == nil || ms.Host == "" {
		return nil, fmt.Errorf("meilisearch config is nil")
	}

	client := meilisearch.New(ms.Host, meilisearch.WithAPIKey(ms.APIKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("failed to connect to meilisearch: %w", err)
	}

	return newHook(func(name string) Documents { return client.Index(name) }, lc), nil
}

func newHook(index func(string) Documents, lc *config.Logger) *Hook {
	return &Hook{
		index:       index,
		indexName:   lc.IndexName,
		dateSuffix:  lc.DateSuffix,
		rotateDaily: lc.RotateDaily,
		levels:      []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel},
		now:         time.Now,
	}
}

// Fire sends the log entry to Meilisearch
func (h *Hook) Fire(entry *logrus.Entry) error {
	doc := map[string]any{
		"id":        fmt.Sprintf("%d", h.now().UnixNano()),
		"timestamp": entry.Time.UTC().Format(time.RFC3339Nano),
		"level":     entry.Level.String(),
		"message":   entry.Message,
	}
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		doc[k] = v
	}

	pk := "id"
	_, err := h.index(h.buildIndexName()).AddDocuments([]map[string]any{doc}, &meilisearch.DocumentOptions{PrimaryKey: &pk})
	if err != nil {
		return fmt.Errorf("failed to index log entry: %w", err)
	}
	return nil
}

// Levels returns the log levels this hook fires for
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

func (h *Hook) buildIndexName() string {
	if !h.rotateDaily || h.dateSuffix == "" {
		return h.indexName
	}
	return fmt.Sprintf("%s-%s", h.indexName, h.now().Format(h.dateSuffix))
}
