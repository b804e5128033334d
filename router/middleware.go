package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/listing/ctxutil"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/logging/logger"
	"github.com/ncobase/listing/net/resp"
	"github.com/ncobase/listing/search"
	"github.com/ncobase/listing/utils"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the API request id.
const RequestIDHeader = "X-Request-Id"

// RequestID ensures every request has an id, reusing a client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = utils.RequestID()
		}
		c.Request = c.Request.WithContext(ctxutil.SetRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

// Trace propagates the trace id header into the request context.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(search.TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(search.TraceHeader, traceID)
		c.Next()
	}
}

// Logger logs one line per request.
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := l.With(c.Request.Context(), logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"query":    c.Request.URL.RawQuery,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("HTTP request")
			return
		}
		entry.Info("HTTP request")
	}
}

// Recovery turns panics into 500 responses.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Errorf(c.Request.Context(), "panic serving %s: %v", c.Request.URL.Path, rec)
				resp.Fail(c.Writer, resp.InternalServer(ecode.Text(ecode.ServerErr)))
				c.Abort()
			}
		}()
		c.Next()
	}
}
