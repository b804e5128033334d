package resp

import (
	"net/http"

	"github.com/ncobase/listing/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// InvalidParams indicates a malformed query parameter.
func InvalidParams(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.ParamErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// SiteNotFound indicates an unknown site.
func SiteNotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.SiteNotFound, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// BadGateway indicates a failing upstream.
func BadGateway(message string, data ...any) *Exception {
	return newResponse(http.StatusBadGateway, ecode.BadGateway, message, data...)
}

// ServiceUnavailable indicates the service cannot serve requests.
func ServiceUnavailable(message string, data ...any) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, data...)
}

// FromError maps a classified error to an exception.
func FromError(err error) *Exception {
	kind := ecode.KindOf(err)
	if kind == ecode.KindNone {
		return InternalServer(ecode.Text(ecode.ServerErr))
	}
	code := kind.Code()
	return newResponse(ecode.ToHTTPStatus(code), code, err.Error())
}
