// Package httpserver runs the devicekit HTTP API with graceful shutdown and
// provides the JSON health endpoint.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once ctx is cancelled and in-flight requests have finished or
// the shutdown timeout has passed.
package httpserver
