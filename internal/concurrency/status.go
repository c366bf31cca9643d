// File: internal/concurrency/status.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"errors"

	"github.com/momentics/hioload-threads/api"
)

// StatusOf maps a native backend error onto the portable status set.
func StatusOf(err error) api.StatusCode {
	switch {
	case err == nil:
		return api.StatusSuccess
	case errors.Is(err, errBusy):
		return api.StatusBusy
	case errors.Is(err, errNoMem):
		return api.StatusNoMem
	case errors.Is(err, errTimedOut):
		return api.StatusTimedOut
	default:
		return api.StatusError
	}
}
