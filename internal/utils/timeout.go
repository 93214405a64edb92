package utils

import (
	"context"
	"time"
)

const (
	DefaultDBTimeout      = 5 * time.Second
	DefaultSessionTimeout = 2 * time.Second
)

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

// WithSessionTimeout bounds round trips to the session store.
func WithSessionTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultSessionTimeout)
}
