// Package server wires configuration, search backend and HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/listing/cache"
	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/handler"
	"github.com/ncobase/listing/logging/logger"
	"github.com/ncobase/listing/router"
	"github.com/ncobase/listing/search"
	"github.com/ncobase/listing/search/graphql"
	"github.com/ncobase/listing/search/meili"
	"github.com/redis/go-redis/v9"
)

// Server represents the application server.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	service *search.Service
	engine  *gin.Engine
	redis   *redis.Client
}

// New creates a server from cfg.
func New(ctx context.Context, cfg *config.Config, l *logger.Logger) (*Server, error) {
	sites, err := cfg.Sites.Resolver()
	if err != nil {
		return nil, ecode.ConfigurationError("sites", err.Error())
	}

	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}

	rc, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		l.Info(ctx, "redis not configured, page cache disabled")
	}

	service := search.NewService(adapter,
		search.WithCache(cache.NewCache[search.Result](rc, cfg.AppName+":search", cfg.Search.CacheTTL)),
		search.WithBreaker(cfg.Breaker),
		search.WithLogger(l),
		search.WithPageSizes(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize),
	)
	l.Infof(ctx, "search engine %s ready", adapter.Type())

	return &Server{
		config:  cfg,
		logger:  l,
		service: service,
		engine:  router.New(cfg.RunMode, l, handler.New(service, sites, l)),
		redis:   rc,
	}, nil
}

// NewAdapter creates the search adapter selected by the configuration.
func NewAdapter(cfg *config.Config) (search.Adapter, error) {
	switch search.Engine(cfg.Search.Engine) {
	case search.GraphQL, "":
		return graphql.NewFromConfig(cfg.Search)
	case search.Meilisearch:
		return meili.NewFromConfig(cfg.Meilisearch, search.ComposerFromConfig(cfg.Search))
	default:
		return nil, ecode.ConfigurationError("search", ecode.FieldIsInvalid("engine "+cfg.Search.Engine))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	c := s.config.Server
	srv := &http.Server{
		Addr:         net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Handler:      s.engine,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof(ctx, "listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.close()
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("failed to shutdown: %w", err)
	}
	return nil
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warnf(context.Background(), "failed to close redis: %v", err)
		}
	}
}
