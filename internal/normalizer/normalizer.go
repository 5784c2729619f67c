// Package normalizer implements the Tariff Record Normalizer: it loads a
// tariff CSV fully into memory, runs the normalization chain, writes the
// fixed 16-column output atomically and previews the head of the result.
//
// Dependencies (source, clock, logger, metrics, preview stream) are passed in
// through Config and live for a single Run; nothing is package-global.
package normalizer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/aarguelles2/nTOU/internal/datasource"
	"github.com/aarguelles2/nTOU/internal/domain"
	"github.com/aarguelles2/nTOU/internal/metrics"
	csvparser "github.com/aarguelles2/nTOU/internal/parser/csv"
	"github.com/aarguelles2/nTOU/internal/preview"
	"github.com/aarguelles2/nTOU/internal/records"
	"github.com/aarguelles2/nTOU/internal/sink/csvfile"
	"github.com/aarguelles2/nTOU/internal/transformer"
	"github.com/aarguelles2/nTOU/internal/transformer/builtin"
)

// Config wires one normalizer run.
type Config struct {
	Source datasource.Source
	Output string

	// Comma and Encoding describe the input file.
	Comma    rune
	Encoding string

	// PreviewRows rows are rendered to PreviewOut after the write.
	PreviewRows int
	PreviewOut  io.Writer

	// Now is the run clock; it is read exactly once per run.
	Now func() time.Time

	Logger  zerolog.Logger
	Metrics *metrics.Recorder
}

// Result summarizes a successful run.
type Result struct {
	Rows       int
	Version    int64
	Output     string
	Duplicates int
	Duration   time.Duration
}

// Normalizer runs the tariff transform.
type Normalizer struct {
	cfg Config
	log zerolog.Logger
}

// New returns a Normalizer for cfg. Missing optional fields get defaults:
// time.Now for the clock and io.Discard for the preview stream.
func New(cfg Config) *Normalizer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PreviewOut == nil {
		cfg.PreviewOut = io.Discard
	}
	return &Normalizer{cfg: cfg, log: cfg.Logger}
}

// Steps returns the normalization chain in execution order. Sorting runs on
// the parsed DateFrom before it is rewritten to its integer form.
func Steps(at time.Time, log zerolog.Logger, duplicates *int) transformer.Chain {
	return transformer.Chain{
		builtin.ParseDates{},
		builtin.SortRows{},
		builtin.AssignConstants{},
		builtin.FormatDateFrom{},
		builtin.PrefixUTC{},
		builtin.ZeroPadTimes{},
		builtin.StampVersion{At: at},
		builtin.ReportDuplicateKeys{Log: log, Found: duplicates},
	}
}

// Run executes load, transform, write and preview. Nothing is written unless
// every row was transformed successfully.
func (n *Normalizer) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	tbl, err := n.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	at := n.cfg.Now()
	rows, dups, err := n.Normalize(tbl, at)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := Project(rows)
	writeStart := time.Now()
	err = csvfile.Write(n.cfg.Output, domain.Columns, out, csvfile.Options{})
	n.cfg.Metrics.RecordStep("write", err, time.Since(writeStart))
	if err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	n.cfg.Metrics.RecordRows("written", len(out))

	if err := preview.Render(n.cfg.PreviewOut, domain.Columns, out, n.cfg.PreviewRows); err != nil {
		// The output is already in place; a broken preview stream is not fatal.
		n.log.Warn().Err(err).Msg("preview failed")
	}

	res := Result{
		Rows:       len(out),
		Version:    domain.FormatVersion(at),
		Output:     n.cfg.Output,
		Duplicates: dups,
		Duration:   time.Since(start),
	}
	n.log.Info().
		Int("rows", res.Rows).
		Int64("version", res.Version).
		Str("output", res.Output).
		Int("duplicate_keys", res.Duplicates).
		Dur("took", res.Duration).
		Msg("tariff file normalized")
	return res, nil
}

// load opens the source and parses the whole table. The reader is closed
// before returning.
func (n *Normalizer) load(ctx context.Context) (*records.Table, error) {
	start := time.Now()
	tbl, err := n.loadTable(ctx)
	n.cfg.Metrics.RecordStep("load", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", n.cfg.Source.Location(), err)
	}
	n.cfg.Metrics.RecordRows("read", tbl.Len())
	n.log.Debug().
		Str("input", n.cfg.Source.Location()).
		Int("rows", tbl.Len()).
		Strs("columns", tbl.Header).
		Msg("input loaded")
	return tbl, nil
}

func (n *Normalizer) loadTable(ctx context.Context) (*records.Table, error) {
	rc, err := n.cfg.Source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	p := csvparser.NewParser(csvparser.Options{
		Comma:    n.cfg.Comma,
		Encoding: n.cfg.Encoding,
		Required: domain.RequiredInput,
	})
	return p.Parse(rc)
}

// Normalize converts a loaded table into normalized rows stamped with the
// version of at. It also returns the number of duplicate sort keys found.
func (n *Normalizer) Normalize(tbl *records.Table, at time.Time) ([]domain.TariffRow, int, error) {
	rows := make([]domain.TariffRow, len(tbl.Rows))
	for i, rec := range tbl.Rows {
		rows[i] = domain.FromRecord(i+1, rec)
	}

	var dups int
	chain := Steps(at, n.log, &dups)
	obs := func(step string, err error, d time.Duration) {
		n.cfg.Metrics.RecordStep(step, err, d)
		n.log.Trace().Str("step", step).Dur("took", d).Err(err).Msg("step done")
	}
	out, err := chain.ApplyObserved(rows, obs)
	if err != nil {
		return nil, 0, fmt.Errorf("normalize: %w", err)
	}
	n.cfg.Metrics.RecordRows("duplicate_keys", dups)
	return out, dups, nil
}

// Project renders rows in domain.Columns order.
func Project(rows []domain.TariffRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}
