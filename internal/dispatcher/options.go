package dispatcher

import (
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/sqledu-client/internal/logger"
)

// Option customises a [Dispatcher].
type Option func(*Dispatcher)

// WithLogger sets the logger calls are logged to. Defaults to [logger.Nop].
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRefreshCoalescing makes concurrent calls that hold the same refresh
// token share one in-flight refresh request. Without it every call that
// detects an expired token refreshes on its own.
func WithRefreshCoalescing() Option {
	return func(d *Dispatcher) {
		d.refreshGroup = &singleflight.Group{}
	}
}
