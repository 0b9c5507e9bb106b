package app

import (
	"context"
	"net"
)

// ServeListener exposes serve for tests.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	return a.serve(ctx, ln)
}
