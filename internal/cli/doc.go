// File: internal/cli/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package cli implements the threadctl command tree.
package cli
