package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"isorun/internal/config"
	"isorun/internal/logger"
	"isorun/internal/observability"
	"isorun/internal/pool"
	"isorun/pkg/isolate"

	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var (
		concurrency    int
		spawnRate      float64
		metricsAddr    string
		traceEndpoint  string
		redirectStderr bool
	)

	batchCmd := &cobra.Command{
		Use:   "batch [scripts...]",
		Short: "Execute many script files in concurrent isolated processes",
		Long: `Batch runs each script file in its own child interpreter process, up to
--concurrency children at a time. Every child owns its own pipes and
temporary files, so scripts cannot contaminate each other.

Flags left unset fall back to the ISORUN_* environment (see
ISORUN_CONCURRENCY, ISORUN_SPAWN_RATE, ISORUN_METRICS_ADDR and
OTEL_EXPORTER_OTLP_ENDPOINT).

With --metrics-addr, a Prometheus /metrics endpoint reports spawn counts
and per-job durations while the batch runs. With --trace-endpoint, every
job exports a span to the given OTLP collector.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				cmd.PrintErrf("Failed to load config: %v\n", err)
				return
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.Concurrency
			}
			if !cmd.Flags().Changed("spawn-rate") {
				spawnRate = cfg.SpawnRate
			}
			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = cfg.MetricsAddr
			}
			if !cmd.Flags().Changed("trace-endpoint") {
				traceEndpoint = cfg.OTELEndpoint
			}

			jobs := make([]isolate.Job, len(args))
			for i, path := range args {
				jobs[i] = isolate.Job{
					Source:         isolate.ScriptFile{Path: path},
					RedirectStderr: redirectStderr,
				}
			}

			if traceEndpoint != "" {
				shutdownTracer, err := observability.InitTracer(cmd.Context(), traceEndpoint)
				if err != nil {
					cmd.PrintErrf("Failed to init tracing: %v\n", err)
					return
				}
				defer func() {
					// Bound the final span flush so an unreachable
					// collector cannot hang process exit.
					flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = shutdownTracer(flushCtx)
				}()
			}

			if metricsAddr != "" {
				handler, shutdown, err := observability.InitMetrics()
				if err != nil {
					cmd.PrintErrf("Failed to init metrics: %v\n", err)
					return
				}
				defer shutdown(context.Background())

				mux := http.NewServeMux()
				mux.Handle("/metrics", handler)
				go func() {
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						cmd.PrintErrf("Metrics server error: %v\n", err)
					}
				}()
			}

			p, err := pool.New(newRunner(), pool.Config{
				Concurrency: concurrency,
				SpawnRate:   spawnRate,
				Logger:      logger.New(),
			})
			if err != nil {
				cmd.PrintErrf("Failed to create pool: %v\n", err)
				return
			}

			outcomes := p.RunAll(cmd.Context(), jobs)

			out := cmd.OutOrStdout()
			failed := 0
			for i, o := range outcomes {
				if o.Err != nil {
					failed++
					fmt.Fprintf(out, "failed  %s: %v\n", args[i], o.Err)
					continue
				}
				fmt.Fprintf(out, "ok      %s (%d bytes stdout, %d bytes stderr)\n",
					args[i], len(o.Result.Stdout), len(o.Result.Stderr))
			}
			fmt.Fprintf(out, "%d ok, %d failed\n", len(outcomes)-failed, failed)
		},
	}

	batchCmd.Flags().IntVarP(&concurrency, "concurrency", "n", 1, "maximum concurrent child processes")
	batchCmd.Flags().Float64Var(&spawnRate, "spawn-rate", 0, "child spawns per second (0 = unlimited)")
	batchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the batch")
	batchCmd.Flags().StringVar(&traceEndpoint, "trace-endpoint", "", "export per-job spans to this OTLP gRPC collector")
	batchCmd.Flags().BoolVar(&redirectStderr, "redirect-stderr", false, "merge each child's stderr into its stdout")

	return batchCmd
}
