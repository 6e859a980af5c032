package http

import (
	"context"
	"time"
)

// newDetachedContext returns a context that is independent of the
// request lifecycle, for work that outlives the response.
func newDetachedContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
