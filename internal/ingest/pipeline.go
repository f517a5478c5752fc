package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mgnrega-backend/internal/metrics"
	"github.com/mgnrega-backend/internal/normalize"
	"github.com/mgnrega-backend/internal/store"
)

// Options configure one pipeline instance.
type Options struct {
	TargetState string
	FinYear     string
	FetchLimit  int
	BatchSize   int
}

// Pipeline runs the fetch → normalize → dedupe → resolve → upsert → cache
// sequence. Steps execute sequentially; only a fetch failure aborts a run.
type Pipeline struct {
	client *Client
	store  *store.Store
	opts   Options
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(client *Client, st *store.Store, opts Options) *Pipeline {
	if opts.FetchLimit < 1 {
		opts.FetchLimit = 1000
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 500
	}
	return &Pipeline{client: client, store: st, opts: opts}
}

// RunSummary reports per-step counts for one pipeline run.
type RunSummary struct {
	Fetched           int           `json:"fetched"`
	StatesUpserted    int           `json:"states_upserted"`
	DistrictsUpserted int           `json:"districts_upserted"`
	FactsWritten      int           `json:"facts_written"`
	FactFailures      int           `json:"fact_failures"`
	RawCacheSaved     bool          `json:"raw_cache_saved"`
	Duration          time.Duration `json:"duration"`
}

// Run executes one full pipeline pass. Errors inside resolution and upsert
// steps are contained and reported through the summary; only a fetch failure
// returns an error.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{}

	log.Printf("fetching MGNREGA data for %s (%s)", p.opts.TargetState, p.opts.FinYear)
	result, err := p.client.Fetch(ctx, p.opts.TargetState, p.opts.FinYear, p.opts.FetchLimit)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("fetch_error").Inc()
		metrics.FetchErrors.WithLabelValues(classifyFetchError(err)).Inc()
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	summary.Fetched = len(result.Records)
	metrics.RecordsFetched.Add(float64(summary.Fetched))
	if summary.Fetched == 0 {
		log.Printf("no records returned for %s", p.opts.TargetState)
		metrics.RunsTotal.WithLabelValues("empty").Inc()
		summary.Duration = time.Since(start)
		return summary, nil
	}
	log.Printf("%d records fetched for %s (%s)", summary.Fetched, p.opts.TargetState, p.opts.FinYear)

	records := normalize.Records(result.Records)

	// Reference passes refresh display names; the fact pass below still
	// creates any parents these passes could not.
	if n, err := p.store.UpsertStates(records, p.opts.BatchSize); err != nil {
		log.Printf("states upsert failed, continuing: %v", err)
	} else {
		summary.StatesUpserted = n
		log.Printf("%d states upserted", n)
	}

	if n, err := p.store.UpsertDistricts(records, p.opts.BatchSize); err != nil {
		log.Printf("districts upsert failed, continuing: %v", err)
	} else {
		summary.DistrictsUpserted = n
		log.Printf("%d districts upserted", n)
	}

	facts := DedupeLastWins(records, DistrictKey)
	upsert, err := p.store.UpsertFacts(facts, p.opts.BatchSize, time.Now().UTC())
	if err != nil {
		log.Printf("fact upsert failed, continuing: %v", err)
	}
	summary.FactsWritten = upsert.Written
	summary.FactFailures = len(upsert.Failures)
	metrics.RowsUpserted.Add(float64(upsert.Written))
	metrics.RowFailures.Add(float64(len(upsert.Failures)))
	for _, f := range upsert.Failures {
		log.Printf("fact row for district %d failed: %v", f.DistrictID, f.Err)
	}
	log.Printf("%d fact rows upserted, %d errors", upsert.Written, len(upsert.Failures))

	if err := p.store.SaveRawCache(result.URL, result.Raw, time.Now().UTC()); err != nil {
		metrics.RawCacheFailures.Inc()
		log.Printf("raw cache write failed: %v", err)
	} else {
		summary.RawCacheSaved = true
	}

	summary.Duration = time.Since(start)
	metrics.RunsTotal.WithLabelValues("success").Inc()
	metrics.RunDuration.Observe(summary.Duration.Seconds())
	log.Printf("pipeline completed for %s (%s) in %v", p.opts.TargetState, p.opts.FinYear, summary.Duration)
	return summary, nil
}

func classifyFetchError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unexpected status"):
		return "status"
	case strings.Contains(msg, "decode"):
		return "decode"
	default:
		return "network"
	}
}
