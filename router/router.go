// Package router builds the gin engine of the listing API.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/listing/logging/logger"
)

// Registrar mounts routes on a router.
type Registrar interface {
	Register(r gin.IRouter)
}

// New creates a gin engine running in mode with the request middleware
// installed and the routes of every registrar mounted.
func New(mode string, l *logger.Logger, registrars ...Registrar) *gin.Engine {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(Recovery(l), RequestID(), Trace(), Logger(l))
	for _, reg := range registrars {
		reg.Register(r)
	}
	return r
}
