package main

import (
	"context"
	"errors"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

type serverShutdowner interface {
	Shutdown(ctx context.Context) error
}

// stopServerThenStore drains in-flight requests before the store goes away.
// The store is closed even when draining fails.
func stopServerThenStore(srv serverShutdowner, closeStore func() error) gfshutdown.Operation {
	return func(ctx context.Context) error {
		zap.L().Info("shutting down http server")
		serverErr := srv.Shutdown(ctx)
		if serverErr != nil {
			zap.L().Warn("http server did not drain cleanly", zap.Error(serverErr))
		}

		zap.L().Info("closing task store")
		return errors.Join(serverErr, closeStore())
	}
}
