// Command tariffnorm normalizes a tariff CSV export into the fixed 16-column
// layout expected downstream, stamps every row with a run version and writes
// the result next to the input (or to --output).
//
// main stays tiny: flags are bound by internal/config, side effects (clock,
// streams, metrics backend) come in through Deps so run() is testable.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aarguelles2/nTOU/internal/config"
	"github.com/aarguelles2/nTOU/internal/datasource/file"
	"github.com/aarguelles2/nTOU/internal/logging"
	"github.com/aarguelles2/nTOU/internal/metrics"
	"github.com/aarguelles2/nTOU/internal/metrics/prompush"
	"github.com/aarguelles2/nTOU/internal/normalizer"
)

const jobName = "tariffnorm"

// Deps holds the process boundaries run() touches.
type Deps struct {
	Getenv     func(string) string
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	NewBackend func(job, gatewayURL string) (metrics.Backend, error)
}

func defaultDeps() Deps {
	return Deps{
		Getenv: os.Getenv,
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewBackend: func(job, url string) (metrics.Backend, error) {
			return prompush.NewBackend(job, url)
		},
	}
}

// run normalizes cfg.Input into cfg.Output. cfg must already be validated.
func run(ctx context.Context, cfg *config.Normalizer, deps Deps) error {
	log := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Component: jobName,
		Writer:    deps.Stderr,
	})

	var backend metrics.Backend
	if cfg.MetricsBackend == "pushgateway" {
		b, err := deps.NewBackend(jobName, cfg.PushgatewayURL)
		if err != nil {
			return fmt.Errorf("metrics backend: %w", err)
		}
		backend = b
	}
	rec := metrics.NewRecorder(jobName, backend)
	defer func() {
		if err := rec.Flush(); err != nil {
			log.Warn().Err(err).Str("url", cfg.PushgatewayURL).Msg("metrics push failed")
		}
	}()

	n := normalizer.New(normalizer.Config{
		Source:      file.NewLocal(cfg.Input),
		Output:      cfg.Output,
		Comma:       cfg.CommaRune(),
		Encoding:    cfg.InputEncoding,
		PreviewRows: cfg.PreviewRows,
		PreviewOut:  deps.Stdout,
		Now:         deps.Now,
		Logger:      log,
		Metrics:     rec,
	})

	log.Info().Str("input", cfg.Input).Str("output", cfg.Output).Msg("normalizing tariff file")
	_, err := n.Run(ctx)
	return err
}

func newRootCmd(deps Deps) *cobra.Command {
	var cfg *config.Normalizer
	cmd := &cobra.Command{
		Use:           jobName,
		Short:         "Normalize a tariff CSV export and stamp it with a run version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, deps)
		},
	}
	cfg = config.BindNormalizer(cmd.Flags(), deps.Getenv)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", jobName, err)
		stop()
		os.Exit(1)
	}
}
