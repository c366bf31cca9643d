// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package control is the runtime metrics, configuration and debug
// introspection layer around the threads package.
//
// Provides concurrent-safe state handling primitives including:
//   - snapshot config reads and updates with reload listeners
//   - a metrics registry fed from backend counters
//   - state export through named debug probes
//
// Platform probes are build-tag-partitioned.
package control
