// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package concurrency is the platform backend of hioload-threads: execution
// units wired to OS threads, FIFO hand-off mutexes (plain and recursive), the
// per-unit last error slot and the translation of native error codes into the
// portable status set. One platform file per target supplies native error
// codes, thread ids and yielding.
package concurrency
