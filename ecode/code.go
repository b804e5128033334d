package ecode

import "net/http"

// Business codes returned in API responses.
const (
	OK = 0

	// Application errors
	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
	BadGateway         = -502

	// Request errors
	RequestErr   = -400
	ParamErr     = -401
	NothingFound = -404
	Conflict     = -409

	// Listing errors
	ConfigurationErr   = -1001
	NetworkErr         = -1002
	InvalidResponseErr = -1003
	SiteNotFound       = -1004
)

var messages = map[int]string{
	OK:                 "ok",
	ServerErr:          "Internal server error",
	ServiceUnavailable: "Service unavailable",
	Deadline:           "Deadline exceeded",
	BadGateway:         "Upstream request failed",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	NothingFound:       "Resource not found",
	Conflict:           "Resource conflict",
	ConfigurationErr:   "Invalid configuration",
	NetworkErr:         "Search backend unreachable",
	InvalidResponseErr: "Malformed search response",
	SiteNotFound:       "Site not found",
}

// Text returns the message registered for code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case NothingFound, SiteNotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case NetworkErr, InvalidResponseErr, BadGateway:
		return http.StatusBadGateway
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
