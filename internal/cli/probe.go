// File: internal/cli/probe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/momentics/hioload-threads/control"
	"github.com/momentics/hioload-threads/threads"
)

// probeReport is the document printed by threadctl probe.
type probeReport struct {
	Config  map[string]any `json:"config" yaml:"config"`
	Metrics map[string]any `json:"metrics" yaml:"metrics"`
	Probes  map[string]any `json:"probes" yaml:"probes"`
}

func collectProbes(store *control.ConfigStore) probeReport {
	dp := control.NewDebugProbes()
	control.RegisterThreadProbes(dp)
	control.RegisterPlatformProbes(dp)

	mr := control.NewMetricsRegistry()
	mr.CollectThreads()
	mr.Set("threads.backend", threads.BackendName())

	return probeReport{
		Config:  store.GetSnapshot(),
		Metrics: mr.GetSnapshot(),
		Probes:  dp.DumpState(),
	}
}

func newProbeCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Dump backend identity, counters, live units and platform probes",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := collectProbes(a.store)
			var (
				out []byte
				err error
			)
			switch format {
			case "yaml":
				out, err = yaml.Marshal(report)
			case "json":
				out, err = json.MarshalIndent(report, "", "  ")
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return fmt.Errorf("marshaling probe report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: yaml or json")
	return cmd
}
