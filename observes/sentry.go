package observes

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/ctxutil"
	"github.com/ncobase/listing/version"
)

// NewSentry initializes the sentry client. A nil config disables reporting.
func NewSentry(c *config.Sentry, appName string, info version.Info) (Shutdown, error) {
	if c == nil {
		return noop, nil
	}
	release := c.Release
	if release == "" {
		release = info.Version
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.Endpoint,
		AttachStacktrace: true,
		SampleRate:       c.SampleRate,
		ServerName:       appName,
		Release:          release,
		Environment:      c.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		sentry.Flush(timeout)
		return nil
	}, nil
}

// CaptureError reports err with the request ids of ctx. It is a no-op until
// NewSentry succeeds.
func CaptureError(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if id := ctxutil.GetTraceID(ctx); id != "" {
			scope.SetTag(ctxutil.TraceIDKey, id)
		}
		if id := ctxutil.GetRequestID(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
		for k, v := range tags {
			scope.SetTag(k, v)
		}
	})
	hub.CaptureException(err)
}
