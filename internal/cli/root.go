// File: internal/cli/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/control"
	"github.com/momentics/hioload-threads/threads"
)

type buildInfo struct {
	version, commit, date string
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	build   buildInfo
	v       *viper.Viper
	store   *control.ConfigStore
	log     *zap.Logger
	cfgFile string
	verbose bool
}

// NewRootCmd builds the threadctl command tree.
func NewRootCmd(version, commit, date string) *cobra.Command {
	a := &app{
		build: buildInfo{version, commit, date},
		v:     viper.New(),
		store: control.NewConfigStore(),
		log:   zap.NewNop(),
	}
	a.store.OnReload(control.ApplyThreadsConfig)

	root := &cobra.Command{
		Use:   "threadctl",
		Short: "Exercise and inspect the hioload-threads layer",
		Long: `threadctl runs workloads on top of the portable thread and mutex layer
(units wired to OS threads, plain and recursive mutexes) and reports what the
backend observed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./threadctl.yaml if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug-level console logging of backend diagnostics")
	root.PersistentFlags().Int("max-threads", 0, "cap on live units, 0 for none")
	_ = a.v.BindPFlag(control.KeyMaxThreads, root.PersistentFlags().Lookup("max-threads"))

	root.AddCommand(
		newContendCmd(a),
		newRecursiveCmd(a),
		newTryLockCmd(a),
		newProbeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	root := NewRootCmd(version, commit, date)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// newLogger returns a development logger (debug level, console encoding) when
// verbose is set and a production logger (info level, JSON) otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := loadConfig(a.v, a.cfgFile); err != nil {
		return err
	}
	l, err := newLogger(a.verbose || a.v.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	a.log = l
	threads.Configure(threads.WithLogger(a.log))
	a.store.SetConfig(map[string]any{
		control.KeyMaxThreads: a.v.GetInt(control.KeyMaxThreads),
	})
	a.log.Debug("configuration loaded",
		zap.String("backend", threads.BackendName()),
		zap.Any("config", a.store.GetSnapshot()))
	return nil
}
