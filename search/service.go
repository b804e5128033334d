package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/listing/cache"
	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/logging/logger"
	"github.com/ncobase/listing/validator"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ncobase/listing/search"

// Default page sizes
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Service executes listing searches through an adapter.
type Service struct {
	adapter         Adapter
	cache           cache.ICache[Result]
	breaker         *gobreaker.CircuitBreaker
	logger          *logger.Logger
	tracer          trace.Tracer
	defaultPageSize int
	maxPageSize     int
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the page cache.
func WithCache(c cache.ICache[Result]) Option {
	return func(s *Service) { s.cache = c }
}

// WithBreaker replaces the default circuit breaker settings.
func WithBreaker(c *config.Breaker) Option {
	return func(s *Service) {
		if c != nil {
			s.breaker = newBreaker(string(s.adapter.Type()), c)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPageSizes sets the default and maximum page size.
func WithPageSizes(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultPageSize = def
		}
		if max > 0 {
			s.maxPageSize = max
		}
	}
}

// NewService creates a search service.
func NewService(adapter Adapter, opts ...Option) *Service {
	s := &Service{
		adapter:         adapter,
		logger:          logger.StdLogger(),
		tracer:          otel.Tracer(tracerName),
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
	s.breaker = newBreaker(string(adapter.Type()), &config.Breaker{
		MaxRequests:  5,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	})
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	return s
}

func newBreaker(name string, c *config.Breaker) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: c.MaxRequests,
		Interval:    c.Interval,
		Timeout:     c.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= c.MinRequests && failureRatio >= c.FailureRatio
		},
		// only backend failures trip the breaker
		IsSuccessful: func(err error) bool {
			return err == nil || !ecode.Retryable(err)
		},
	})
}

// Engine returns the adapter engine.
func (s *Service) Engine() Engine {
	return s.adapter.Type()
}

// Search returns one page of items for req.
func (s *Service) Search(ctx context.Context, req *Request) (result *Result, err error) {
	if req == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, ecode.FieldIsRequired("request"))
	}
	r := *req
	if r.PageSize <= 0 {
		r.PageSize = s.defaultPageSize
	}
	if r.PageSize > s.maxPageSize {
		r.PageSize = s.maxPageSize
	}
	if fields, err := validator.Struct(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	} else if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	ctx, span := s.tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("search.engine", string(s.adapter.Type())),
		attribute.String("search.site", r.Site),
		attribute.String("search.language", r.Language),
		attribute.Int("search.page_size", r.PageSize),
		attribute.Bool("search.initial", r.After == ""),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	key := CacheKey(s.adapter.Type(), &r)
	if s.cache != nil {
		if cached, cerr := s.cache.Get(ctx, key); cerr != nil {
			s.logger.Warnf(ctx, "search cache get %s: %v", key, cerr)
		} else if cached != nil {
			span.SetAttributes(attribute.Bool("search.cache_hit", true))
			return cached.Normalize(), nil
		}
	}

	out, err := s.breaker.Execute(func() (any, error) {
		return s.adapter.Search(ctx, &r)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = ecode.NetworkError("search", err)
		}
		s.logger.Errorf(ctx, "search %s failed: %v", s.adapter.Type(), err)
		return nil, err
	}
	result, _ = out.(*Result)
	if result == nil {
		return nil, ecode.InvalidResponseError("search", "adapter returned no page")
	}
	result.Normalize()
	span.SetAttributes(
		attribute.Int("search.total", result.Total),
		attribute.Int("search.items", len(result.Items)),
	)

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, key, result); cerr != nil {
			s.logger.Warnf(ctx, "search cache set %s: %v", key, cerr)
		}
	}
	return result, nil
}

// Health checks the adapter backend.
func (s *Service) Health(ctx context.Context) error {
	return s.adapter.Health(ctx)
}

// CacheKey identifies the page requested by req.
func CacheKey(engine Engine, req *Request) string {
	return strings.Join([]string{
		string(engine),
		req.Site,
		req.Language,
		req.RootPath,
		strconv.Itoa(req.PageSize),
		req.After,
		req.Filters.Key(),
	}, "|")
}
