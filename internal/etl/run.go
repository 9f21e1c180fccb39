package etl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"listingsetl/internal/config"
	"listingsetl/internal/datasource"
	"listingsetl/internal/datasource/file"
	"listingsetl/internal/datasource/httpds"
	"listingsetl/internal/metrics"
	"listingsetl/internal/parser"
	csvparser "listingsetl/internal/parser/csv"
	"listingsetl/internal/sink"
	"listingsetl/internal/storage"
	"listingsetl/internal/transformer/builtin"
	"listingsetl/pkg/records"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	openSourceFn = func(cfg config.Source) (datasource.Source, error) {
		switch cfg.Kind {
		case "", "file":
			return file.NewLocal(cfg.File.Path), nil
		case "http":
			return httpds.NewSource(cfg.HTTP.URL, httpds.Config{
				Timeout:            time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
				MaxRetries:         cfg.HTTP.MaxRetries,
				InsecureSkipVerify: cfg.HTTP.InsecureSkipVerify,
			}), nil
		default:
			return nil, fmt.Errorf("unsupported source.kind=%q", cfg.Kind)
		}
	}

	newParserFn = func(cfg config.Parser) (parser.Parser, error) {
		if cfg.Kind != "" && cfg.Kind != "csv" {
			return nil, fmt.Errorf("unsupported parser.kind=%q", cfg.Kind)
		}
		return csvparser.NewParser(CSVOptions(cfg.Options)), nil
	}

	newRepositoryFn = storage.New

	newRunID = uuid.NewString
)

// CSVOptions maps parser options from the config onto the CSV reader.
func CSVOptions(o config.Options) csvparser.Options {
	opt := csvparser.Options{
		Comma:         o.Rune("comma", ','),
		HeaderMap:     o.StringMap("header_map"),
		SkipMalformed: o.Bool("skip_malformed", false),
	}
	if o.Has("null_values") {
		opt.NullValues = o.StringSlice("null_values")
		if opt.NullValues == nil {
			opt.NullValues = []string{}
		}
	}
	return opt
}

// Runner executes one configured run: read, process, write, and optionally
// load.
type Runner struct {
	Config   config.Pipeline
	Pipeline Pipeline
}

// NewRunner returns a Runner for cfg with the default core.
func NewRunner(cfg config.Pipeline) *Runner {
	p := DefaultPipeline()
	p.Workers = cfg.Runtime.TransformWorkers
	return &Runner{Config: cfg, Pipeline: p}
}

// Run executes the pipeline and returns its report. On error the report holds
// whatever was completed.
func (r *Runner) Run(ctx context.Context) (rep Report, err error) {
	cfg := r.Config
	job := cfg.Job
	start := time.Now()
	rep = Report{
		RunID:      newRunID(),
		Input:      cfg.Source.Location(),
		CleanPath:  cfg.Output.Clean,
		RejectPath: cfg.Output.Rejects,
	}
	defer func() { rep.Elapsed = time.Since(start) }()
	log.Printf("run %s: job=%s input=%s", rep.RunID, job, rep.Input)

	// read
	stepStart := time.Now()
	batch, malformed, tap, err := r.read(ctx)
	metrics.RecordStep(job, metrics.StepRead, err, time.Since(stepStart))
	if tap != nil {
		rep.InputBytes, rep.Fingerprint = tap.Bytes(), tap.Fingerprint()
	}
	if err != nil {
		return rep, fmt.Errorf("read: %w", err)
	}
	rep.Raw, rep.Malformed = batch.Len(), malformed
	metrics.RecordRow(job, metrics.RowsRaw, int64(rep.Raw))
	if malformed > 0 {
		metrics.RecordRow(job, metrics.RowsSkipped, int64(malformed))
	}

	// validate, normalize, admit
	p := r.Pipeline
	observe := p.Observe
	p.Observe = func(step string, err error, d time.Duration) {
		metrics.RecordStep(job, step, err, d)
		if observe != nil {
			observe(step, err, d)
		}
	}
	res, err := p.Process(batch)
	if err != nil {
		return rep, fmt.Errorf("process: %w", err)
	}
	rep.Accepted, rep.Rejected = res.Accepted.Len(), res.Rejected.Len()
	metrics.RecordRow(job, metrics.RowsAccepted, int64(rep.Accepted))
	metrics.RecordRow(job, metrics.RowsRejected, int64(rep.Rejected))
	log.Printf("run %s: accepted=%d rejected=%d", rep.RunID, rep.Accepted, rep.Rejected)

	// write
	stepStart = time.Now()
	err = r.write(ctx, res)
	metrics.RecordStep(job, metrics.StepWrite, err, time.Since(stepStart))
	if err != nil {
		return rep, fmt.Errorf("write: %w", err)
	}

	// load
	if !cfg.Storage.Enabled() {
		return rep, nil
	}
	stepStart = time.Now()
	lr, err := r.load(ctx, res)
	metrics.RecordStep(job, metrics.StepLoad, err, time.Since(stepStart))
	rep.LoadRun = true
	rep.Loaded, rep.Skipped = lr.Loaded, lr.Skipped
	metrics.RecordRow(job, metrics.RowsLoaded, lr.Loaded)
	metrics.RecordRow(job, metrics.RowsSkipped, lr.Skipped)
	metrics.RecordBatches(job, batchesFor(lr, cfg.Runtime.BatchSize))
	if err != nil {
		return rep, fmt.Errorf("load: %w", err)
	}
	return rep, nil
}

func (r *Runner) read(ctx context.Context) (batch records.Batch, malformed int, tap *datasource.Tap, err error) {
	src, err := openSourceFn(r.Config.Source)
	if err != nil {
		return records.Batch{}, 0, nil, err
	}
	p, err := newParserFn(r.Config.Parser)
	if err != nil {
		return records.Batch{}, 0, nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return records.Batch{}, 0, nil, err
	}
	defer rc.Close()

	tap = datasource.NewTap(rc)
	batch, malformed, err = p.Parse(tap)
	return batch, malformed, tap, err
}

func (r *Runner) write(ctx context.Context, res Result) error {
	out := r.Config.Output
	outputs := []struct {
		path  string
		batch records.Batch
	}{
		{out.Clean, res.Accepted},
		{out.Rejects, res.Rejected},
	}
	for _, o := range outputs {
		f, err := sink.FormatFor(o.path, out.Format)
		if err != nil {
			return err
		}
		if err := sink.WriteFile(ctx, o.path, f, o.batch); err != nil {
			return err
		}
		log.Printf("write: %s rows=%d format=%s", o.path, o.batch.Len(), f)
	}
	return nil
}

func (r *Runner) load(ctx context.Context, res Result) (storage.LoadResult, error) {
	st := r.Config.Storage
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: st.Kind, DSN: st.DB.DSN})
	if err != nil {
		return storage.LoadResult{}, fmt.Errorf("open %s: %w", st.Kind, err)
	}
	defer repo.Close()

	if err := storage.EnsureSchema(ctx, st.Kind, repo, st.DB.ResetSchema); err != nil {
		return storage.LoadResult{}, fmt.Errorf("schema: %w", err)
	}
	if !st.DB.ResetSchema {
		if err := storage.CheckEmpty(ctx, repo); err != nil {
			return storage.LoadResult{}, fmt.Errorf("schema: %w", err)
		}
	}
	return storage.LoadListings(ctx, repo, res.Accepted.Rows, r.Config.Runtime.BatchSize)
}

// batchesFor estimates the copy batches a load issued, one table at a time.
func batchesFor(lr storage.LoadResult, size int) int64 {
	if size <= 0 {
		size = storage.DefaultBatchSize
	}
	var n int64
	for _, rows := range []int64{lr.Hosts, lr.Locations, lr.RoomTypes, lr.Loaded} {
		n += (rows + int64(size) - 1) / int64(size)
	}
	return n
}

// LogRejected returns an OnReject hook that logs up to limit rejected rows.
func LogRejected(limit int) func(builtin.RejectedRow) {
	var n int
	return func(r builtin.RejectedRow) {
		n++
		if n <= limit {
			log.Printf("reject: row=%d reason=%q", r.Index, r.Reason)
		} else if n == limit+1 {
			log.Printf("reject: further rejected rows not logged")
		}
	}
}
