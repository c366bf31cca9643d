// File: threads/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threads

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/internal/concurrency"
)

// Option customizes the process-wide backend.
type Option func(*concurrency.Native)

// WithMaxThreads caps the number of live units. Create fails with StatusError
// once the cap is reached. n <= 0 removes the cap.
func WithMaxThreads(n int) Option {
	return func(b *concurrency.Native) {
		b.SetMaxThreads(n)
	}
}

// WithLogger routes backend diagnostics to l. A nil logger disables them.
func WithLogger(l *zap.Logger) Option {
	return func(*concurrency.Native) {
		concurrency.SetLogger(l)
	}
}

// Configure applies opts to the process-wide backend.
func Configure(opts ...Option) {
	for _, opt := range opts {
		opt(backend)
	}
}
