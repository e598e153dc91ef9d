// Package server runs an http.Handler with production timeouts and graceful
// shutdown driven by a context.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return srv.Run(ctx, router)
//
// Run returns nil after a clean shutdown. TLS is served when Config carries a
// certificate and key pair.
package server
