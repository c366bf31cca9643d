// File: internal/cli/contend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/affinity"
	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/threads"
)

// contendOptions describes one contention run.
type contendOptions struct {
	Units      int
	Iterations int
	Kind       api.MutexKind
	Pin        bool
	Yield      bool
}

// contendResult is what a run observed.
type contendResult struct {
	Expected int64
	Counter  int64
	Elapsed  time.Duration
}

// runContend starts Units units that each increment a shared counter
// Iterations times under one mutex, then checks the total.
func runContend(opts contendOptions, log *zap.Logger) (contendResult, error) {
	if opts.Units <= 0 || opts.Iterations < 0 {
		return contendResult{}, api.NewError(api.ErrCodeInvalidArgument, "units must be positive and iterations non-negative").
			WithContext("units", opts.Units).
			WithContext("iterations", opts.Iterations)
	}
	m, st := threads.MutexInit(opts.Kind)
	if st != api.StatusSuccess {
		return contendResult{}, api.NewStatusError("mtx_init", st, threads.LastError())
	}
	defer threads.MutexDestroy(m)

	var counter int64
	worker := func(any) int {
		for i := 0; i < opts.Iterations; i++ {
			if st := threads.MutexLock(m); st != api.StatusSuccess {
				return int(st)
			}
			counter++
			if st := threads.MutexUnlock(m); st != api.StatusSuccess {
				return int(st)
			}
			if opts.Yield {
				threads.Yield()
			}
		}
		return int(api.StatusSuccess)
	}

	start := time.Now()
	handles := make([]api.ThreadHandle, 0, opts.Units)
	var createErr error
	var cpus []int
	if opts.Pin {
		cpus = affinity.AllowedCPUs()
	}
	for i := 0; i < opts.Units; i++ {
		cpu := -1
		if len(cpus) > 0 {
			cpu = cpus[i%len(cpus)]
		}
		h, st := threads.CreatePinned(worker, nil, cpu)
		if st != api.StatusSuccess {
			createErr = api.NewStatusError("thrd_create", st, threads.LastError()).WithContext("unit", i)
			break
		}
		handles = append(handles, h)
	}

	var failed []int
	for i, h := range handles {
		res, st := threads.Join(h)
		if st != api.StatusSuccess {
			return contendResult{}, api.NewStatusError("thrd_join", st, threads.LastError()).WithContext("unit", i)
		}
		if api.StatusCode(res) != api.StatusSuccess {
			failed = append(failed, i)
			log.Warn("unit reported failure", zap.Int("unit", i), zap.Stringer("status", api.StatusCode(res)))
		}
	}
	if createErr != nil {
		return contendResult{}, createErr
	}

	out := contendResult{
		Expected: int64(opts.Units) * int64(opts.Iterations),
		Counter:  counter,
		Elapsed:  time.Since(start),
	}
	if len(failed) > 0 {
		return out, api.NewError(api.ErrCodeBackend, "units failed to lock or unlock").WithContext("units", failed)
	}
	if out.Counter != out.Expected {
		return out, api.NewError(api.ErrCodeInvariant, "lost updates under mutex").
			WithContext("expected", out.Expected).
			WithContext("counter", out.Counter).
			WithCause(api.ErrInvariant)
	}
	return out, nil
}

func newContendCmd(a *app) *cobra.Command {
	var (
		opts contendOptions
		kind string
	)
	cmd := &cobra.Command{
		Use:   "contend",
		Short: "Increment a shared counter from many units under one mutex",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := api.ParseMutexKind(kind)
			if err != nil {
				return err
			}
			opts.Kind = k
			res, err := runContend(opts, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "units=%d iterations=%d kind=%s counter=%d expected=%d elapsed=%s\n",
				opts.Units, opts.Iterations, opts.Kind, res.Counter, res.Expected, res.Elapsed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Units, "units", "n", 4, "number of units")
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "m", 10000, "increments per unit")
	cmd.Flags().StringVar(&kind, "kind", "plain", "mutex kind: plain or recursive")
	cmd.Flags().BoolVar(&opts.Pin, "pin", false, "pin units round-robin across CPUs")
	cmd.Flags().BoolVar(&opts.Yield, "yield", false, "yield after every unlock")
	return cmd
}
