package searcher

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sample is a progress reading taken while a search runs.
type Sample struct {
	Elapsed    time.Duration
	Nodes      int
	Iterations int
}

// Run steps the search until it is finished, a step fails or ctx is done. On failure or
// cancellation the search is finished before returning. ctx.Err() is returned whenever ctx is
// done, even if something else finished the search first.
func (s *Search) Run(ctx context.Context) error {
	for !s.Finished() {
		if err := ctx.Err(); err != nil {
			s.Finish()
			return err
		}
		if err := s.Step(); err != nil {
			s.Finish()
			return err
		}
	}
	return ctx.Err()
}

// RunFor runs the search on a worker goroutine while a controller goroutine calls Finish once
// duration has elapsed. A non-positive duration leaves stopping to the iteration budget or ctx.
func (s *Search) RunFor(parent context.Context, duration time.Duration) error {
	g, ctx := errgroup.WithContext(parent)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return s.Run(ctx)
	})
	g.Go(func() error {
		s.countdown(ctx, duration, done)
		return nil
	})

	err := g.Wait()
	if err == nil {
		// The controller may finish the search on cancellation before the worker looks at ctx
		err = parent.Err()
	}
	log.Debug().Msgf("search stopped after %d iterations with %d nodes", s.Iterations(), s.UniqueNodes())
	return err
}

func (s *Search) countdown(ctx context.Context, duration time.Duration, done <-chan struct{}) {
	start := time.Now()

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}
	var tick <-chan time.Time
	if s.progressInterval > 0 {
		ticker := time.NewTicker(s.progressInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-done:
			s.sample(start)
			return
		case <-ctx.Done():
			s.Finish()
			return
		case <-deadline:
			s.Finish()
			// The worker completes its current step before noticing
			<-done
			s.sample(start)
			return
		case <-tick:
			s.sample(start)
		}
	}
}

func (s *Search) sample(start time.Time) {
	sample := Sample{
		Elapsed:    time.Since(start),
		Nodes:      s.UniqueNodes(),
		Iterations: s.Iterations(),
	}

	s.samplesMu.Lock()
	s.samples = append(s.samples, sample)
	s.samplesMu.Unlock()

	if s.progress != nil {
		s.progress(sample)
	}
}

// Samples returns the progress readings taken so far.
func (s *Search) Samples() []Sample {
	s.samplesMu.Lock()
	defer s.samplesMu.Unlock()

	samples := make([]Sample, len(s.samples))
	copy(samples, s.samples)
	return samples
}
