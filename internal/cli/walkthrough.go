// File: internal/cli/walkthrough.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/threads"
)

// probeTryLock reports what MutexTryLock on m returns when called from a
// fresh unit.
func probeTryLock(m api.MutexHandle) (api.StatusCode, error) {
	h, st := threads.Create(func(any) int {
		st := threads.MutexTryLock(m)
		if st == api.StatusSuccess {
			threads.MutexUnlock(m)
		}
		return int(st)
	}, nil)
	if st != api.StatusSuccess {
		return st, api.NewStatusError("thrd_create", st, threads.LastError())
	}
	res, st := threads.Join(h)
	if st != api.StatusSuccess {
		return st, api.NewStatusError("thrd_join", st, threads.LastError())
	}
	return api.StatusCode(res), nil
}

// runRecursive locks a recursive mutex depth times and shows when another
// unit can take it.
func runRecursive(w io.Writer, depth int) error {
	if depth <= 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "depth must be positive").WithContext("depth", depth)
	}
	m, st := threads.MutexInit(api.MutexPlain | api.MutexRecursive)
	if st != api.StatusSuccess {
		return api.NewStatusError("mtx_init", st, threads.LastError())
	}
	defer threads.MutexDestroy(m)

	for i := 1; i <= depth; i++ {
		if st := threads.MutexLock(m); st != api.StatusSuccess {
			return api.NewStatusError("mtx_lock", st, threads.LastError())
		}
		fmt.Fprintf(w, "lock   depth=%d\n", i)
	}
	for i := depth; i >= 1; i-- {
		seen, err := probeTryLock(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "other unit trylock at depth=%d: %s\n", i, seen)
		if seen != api.StatusBusy {
			return api.NewError(api.ErrCodeInvariant, "recursive mutex acquired before full release").
				WithContext("depth", i).
				WithCause(api.ErrInvariant)
		}
		if st := threads.MutexUnlock(m); st != api.StatusSuccess {
			return api.NewStatusError("mtx_unlock", st, threads.LastError())
		}
		fmt.Fprintf(w, "unlock depth=%d\n", i-1)
	}
	seen, err := probeTryLock(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "other unit trylock after release: %s\n", seen)
	if seen != api.StatusSuccess {
		return api.NewError(api.ErrCodeInvariant, "recursive mutex still held after matching unlocks").
			WithCause(api.ErrInvariant)
	}
	return nil
}

// runTryLock shows trylock on a free mutex, on a mutex held by another unit,
// and after that unit released it.
func runTryLock(w io.Writer) error {
	m, st := threads.MutexInit(api.MutexPlain)
	if st != api.StatusSuccess {
		return api.NewStatusError("mtx_init", st, threads.LastError())
	}
	defer threads.MutexDestroy(m)

	seen, err := probeTryLock(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "free mutex:      %s\n", seen)

	if st := threads.MutexLock(m); st != api.StatusSuccess {
		return api.NewStatusError("mtx_lock", st, threads.LastError())
	}
	seen, err = probeTryLock(m)
	if err != nil {
		threads.MutexUnlock(m)
		return err
	}
	fmt.Fprintf(w, "held elsewhere:  %s\n", seen)
	if st := threads.MutexUnlock(m); st != api.StatusSuccess {
		return api.NewStatusError("mtx_unlock", st, threads.LastError())
	}

	after, err := probeTryLock(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "after release:   %s\n", after)
	if seen != api.StatusBusy || after != api.StatusSuccess {
		return api.NewError(api.ErrCodeInvariant, "unexpected trylock outcome").
			WithContext("held", seen.String()).
			WithContext("released", after.String()).
			WithCause(api.ErrInvariant)
	}
	return nil
}

func newRecursiveCmd(a *app) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "recursive",
		Short: "Walk a recursive mutex up and down and probe it from another unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecursive(cmd.OutOrStdout(), depth)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "k", 3, "re-entrant lock depth")
	return cmd
}

func newTryLockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trylock",
		Short: "Show non-blocking acquisition on free and held mutexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTryLock(cmd.OutOrStdout())
		},
	}
}
