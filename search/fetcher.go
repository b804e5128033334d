package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ncobase/listing/ctxutil"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/paging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const maxEnvelopeSize = 8 << 20

// TraceHeader carries the trace id to the search API.
const TraceHeader = "X-Trace-Id"

// HTTPFetcher loads pages from the search API and implements
// paging.Fetcher.
type HTTPFetcher[T any] struct {
	client *http.Client
	header http.Header
}

// NewHTTPFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewHTTPFetcher[T any](client *http.Client, header http.Header) *HTTPFetcher[T] {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher[T]{client: client, header: header.Clone()}
}

// Fetch requests url and decodes the response envelope. Transport failures,
// non-2xx statuses and envelopes reporting success=false are network
// errors; undecodable bodies and successful envelopes without data are
// invalid responses.
func (f *HTTPFetcher[T]) Fetch(ctx context.Context, url string) (page *paging.Page[T], err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "search.fetch")
	span.SetAttributes(attribute.String("http.url", url))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ecode.ConfigurationError("fetch", err.Error())
	}
	for k, vs := range f.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		req.Header.Set(TraceHeader, traceID)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, ecode.NetworkError("fetch", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxEnvelopeSize))
	if err != nil {
		return nil, ecode.NetworkError("fetch", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	var env Envelope[T]
	decodeErr := json.Unmarshal(body, &env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := http.StatusText(res.StatusCode)
		if decodeErr == nil && env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return nil, ecode.NetworkError("fetch", fmt.Errorf("status %d: %s", res.StatusCode, msg))
	}
	if decodeErr != nil {
		return nil, ecode.InvalidResponseError("fetch", "undecodable envelope", decodeErr)
	}
	if !env.Success {
		msg := "backend reported failure"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return nil, ecode.NetworkError("fetch", errors.New(msg))
	}
	if env.Data == nil {
		return nil, ecode.InvalidResponseError("fetch", ecode.FieldIsMissing("data"))
	}
	return env.Page(), nil
}
