// Package httpserver runs an http.Handler with environment-driven timeouts,
// SIGINT/SIGTERM handling and graceful shutdown, plus a probe handler for
// liveness and readiness checks.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//	srv := httpserver.New(cfg, httpserver.WithServerLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
