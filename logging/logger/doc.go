// Package logger wraps logrus with context aware logging. Every entry
// carries the trace id found in the context plus the application name and
// version when set.
//
//	log := logger.StdLogger()
//	cleanup, err := log.Init(cfg.AppName, cfg.Logger)
//	defer cleanup()
//	log.Infof(ctx, "search %s returned %d items", site, n)
package logger
