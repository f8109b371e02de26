// Package source turns the user's accounts into overview lists. Each Source
// fetches its lists independently; the Aggregator runs them together.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"taskdeck/internal/logger"
	"taskdeck/internal/overview"
)

// Source produces zero or more overview lists.
type Source interface {
	Name() string
	Lists(ctx context.Context) ([]overview.List, error)
}

// Clock returns the current time. Sources take one so tests can pin "today".
type Clock func() time.Time

type Aggregator struct {
	sources []Source
	timeout time.Duration
}

func NewAggregator(timeout time.Duration, sources ...Source) *Aggregator {
	return &Aggregator{sources: sources, timeout: timeout}
}

func (a *Aggregator) Sources() []Source {
	return a.sources
}

// Batch is what one source returned during a fetch. Lists are tagged with
// Source.
type Batch struct {
	Source string
	Lists  []overview.List
	Err    error
}

// Fetch queries every source and flattens the result. See Flatten.
func (a *Aggregator) Fetch(ctx context.Context) ([]overview.List, error) {
	return Flatten(a.FetchBatches(ctx))
}

// FetchBatches queries every source concurrently and returns one batch per
// source, in source order. A failing source does not hide the others.
func (a *Aggregator) FetchBatches(ctx context.Context) []Batch {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	log := logger.WithComponent("source")
	batches := make([]Batch, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			name := src.Name()
			batches[i].Source = name
			start := time.Now()
			lists, err := src.Lists(ctx)
			if err != nil {
				log.Warn("fetch failed", "source", name, "error", err)
				batches[i].Err = fmt.Errorf("%s: %w", name, err)
				return nil
			}
			log.Debug("fetched", "source", name, "lists", len(lists), "took", time.Since(start))
			for j := range lists {
				lists[j].Source = name
			}
			batches[i].Lists = lists
			return nil
		})
	}
	_ = g.Wait()
	return batches
}

// Flatten concatenates the lists of every batch in order and joins the
// errors of the failed ones.
func Flatten(batches []Batch) ([]overview.List, error) {
	var out []overview.List
	var errs []error
	for _, b := range batches {
		if b.Err != nil {
			errs = append(errs, b.Err)
			continue
		}
		out = append(out, b.Lists...)
	}
	return out, errors.Join(errs...)
}

// Merge builds the lists to show after a refresh. A failed batch contributes
// the lists its source produced last time, found in previous by Source, so a
// transient failure never drops lists or the selection inside them.
func Merge(previous []overview.List, batches []Batch) []overview.List {
	var out []overview.List
	for _, b := range batches {
		if b.Err == nil {
			out = append(out, b.Lists...)
			continue
		}
		for _, list := range previous {
			if list.Source == b.Source {
				out = append(out, list)
			}
		}
	}
	return out
}
