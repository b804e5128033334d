// Package handler serves the listing search API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/listing/ctxutil"
	"github.com/ncobase/listing/ecode"
	"github.com/ncobase/listing/logging/logger"
	"github.com/ncobase/listing/net/resp"
	"github.com/ncobase/listing/observes"
	"github.com/ncobase/listing/query"
	"github.com/ncobase/listing/search"
	"github.com/ncobase/listing/site"
	"github.com/sirupsen/logrus"
)

// Handler exposes the search service over HTTP.
type Handler struct {
	service *search.Service
	sites   *site.Resolver
	logger  *logger.Logger
}

// New creates a handler.
func New(service *search.Service, sites *site.Resolver, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Handler{service: service, sites: sites, logger: l}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/api/search", h.Search)
}

// Search handles GET /api/search.
//
// Query parameters: site, lang, pageSize, after and the filter parameters
// read by query.ParseFilterSpec.
func (h *Handler) Search(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	params := c.Request.URL.Query()

	s, err := h.sites.Resolve(params.Get("site"), c.Request.Host)
	if err != nil {
		resp.Fail(c.Writer, resp.SiteNotFound(ecode.NotExist("site "+params.Get("site"))))
		return
	}

	pageSize := 0
	if raw := params.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			resp.Fail(c.Writer, resp.InvalidParams(ecode.FieldIsInvalid("pageSize")))
			return
		}
		pageSize = n
	}

	filters, err := query.ParseFilterSpec(params)
	if err != nil {
		field := "filters"
		var pe *query.ParamError
		if errors.As(err, &pe) {
			field = pe.Param
		}
		resp.Fail(c.Writer, resp.InvalidParams(ecode.FieldIsInvalid(field)))
		return
	}

	req := &search.Request{
		Site:     s.Name,
		Language: h.sites.Language(s, params.Get("lang")),
		RootPath: s.RootPath,
		PageSize: pageSize,
		After:    params.Get("after"),
		Filters:  filters,
	}
	page, err := h.service.Search(ctx, req)
	meta := search.NewMeta(ctxutil.GetRequestID(ctx), start)
	if err != nil {
		h.logger.With(ctx, logrus.Fields{
			"site":    req.Site,
			"lang":    req.Language,
			"filters": filters.Key(),
			"after":   req.After,
		}).Errorf("search failed: %v", err)

		var verr *search.ValidationError
		switch {
		case errors.As(err, &verr):
			resp.Fail(c.Writer, resp.InvalidParams(ecode.Text(ecode.ParamErr), verr.Fields))
		case errors.Is(err, search.ErrInvalidRequest):
			resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		case ecode.KindOf(err) == ecode.KindConfiguration:
			observes.CaptureError(ctx, err, map[string]string{"site": req.Site})
			resp.Fail(c.Writer, resp.FromError(err))
		default:
			observes.CaptureError(ctx, err, map[string]string{"site": req.Site})
			code := ecode.KindOf(err).Code()
			if code == ecode.OK {
				code = ecode.BadGateway
			}
			c.JSON(http.StatusBadGateway, search.Failure[search.Item](code, ecode.Text(code), meta))
		}
		return
	}

	c.JSON(http.StatusOK, search.Succeed(page, meta))
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		h.logger.Warnf(c.Request.Context(), "health check failed: %v", err)
		resp.Fail(c.Writer, resp.ServiceUnavailable(err.Error()))
		return
	}
	resp.Success(c.Writer, map[string]string{
		"status": "up",
		"engine": string(h.service.Engine()),
	})
}
