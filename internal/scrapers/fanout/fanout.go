// Package fanout contains the concurrent fetch-and-merge steps shared by the
// scrapers. Every fetch runs in its own goroutine and sends its result over a
// channel, results are merged on the calling goroutine once all of them are in,
// so nothing is shared between fetches.
package fanout

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_fetch_page        = "fetch-page"
	report_resolve_speaker   = "resolve-speaker"
	report_resolved_speakers = "resolved-speakers"
)

var tracer = otel.Tracer("internal/scrapers/fanout")

// Options control how wide a fan-out can get.
type Options struct {
	// MaxConcurrency caps the amount of fetches in flight, 0 means one
	// goroutine per page or url.
	MaxConcurrency int
}

func (o Options) semaphore() chan struct{} {
	if o.MaxConcurrency <= 0 {
		return nil
	}
	return make(chan struct{}, o.MaxConcurrency)
}

func acquire(ctx context.Context, sem chan struct{}) bool {
	if sem == nil {
		return true
	}
	select {
	case sem <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func release(sem chan struct{}) {
	if sem != nil {
		<-sem
	}
}

type pageResult[T any] struct {
	page  int
	items []T
	err   error
}

// FetchRemainingPages fetches pages 2 to `total` concurrently and returns their
// items concatenated in ascending page order. A page that fails is reported as a
// warning and its items are left out.
func FetchRemainingPages[T any](
	ctx context.Context,
	tel telemetry.API,
	options Options,
	id string,
	total int,
	fetch func(ctx context.Context, page int) ([]T, error),
) []T {
	if total < 2 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "FetchRemainingPages")
	defer span.End()
	span.SetAttributes(
		attribute.String("id", id),
		attribute.Int("total", total),
	)

	results := make(chan pageResult[T], total-1)
	sem := options.semaphore()
	wg := sync.WaitGroup{}

	for page := 2; page <= total; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			if !acquire(ctx, sem) {
				results <- pageResult[T]{page: page, err: ctx.Err()}
				return
			}
			defer release(sem)

			items, err := fetch(ctx, page)
			results <- pageResult[T]{page: page, items: items, err: err}
		}(page)
	}

	wg.Wait()
	close(results)

	var collected []pageResult[T]
	for result := range results {
		if result.err != nil {
			tel.ReportWarning(
				report_fetch_page,
				fmt.Errorf("%s: page %d: %w", id, result.page, result.err),
			)
			continue
		}
		collected = append(collected, result)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].page < collected[j].page
	})

	var out []T
	for _, result := range collected {
		out = append(out, result.items...)
	}
	return out
}

type speakerResult struct {
	url     string
	profile hansard.Profile
	err     error
}

// EnrichSpeakers resolves every distinct speaker url of the sitting concurrently
// and attaches the profile to every contribution with that url. Speakers that
// fail to resolve are reported as warnings and keep a nil profile. It returns the
// number of distinct speakers resolved.
func EnrichSpeakers(
	ctx context.Context,
	tel telemetry.API,
	options Options,
	sitting *hansard.Sitting,
	resolve func(ctx context.Context, url string) (hansard.Profile, error),
) int {
	urls := sitting.SpeakerURLs()
	if len(urls) == 0 {
		return 0
	}

	ctx, span := tracer.Start(ctx, "EnrichSpeakers")
	defer span.End()
	span.SetAttributes(attribute.Int("speakers", len(urls)))

	results := make(chan speakerResult, len(urls))
	sem := options.semaphore()
	wg := sync.WaitGroup{}

	for _, link := range urls {
		wg.Add(1)
		go func(link string) {
			defer wg.Done()
			if !acquire(ctx, sem) {
				results <- speakerResult{url: link, err: ctx.Err()}
				return
			}
			defer release(sem)

			profile, err := resolve(ctx, link)
			results <- speakerResult{url: link, profile: profile, err: err}
		}(link)
	}

	wg.Wait()
	close(results)

	profiles := map[string]*hansard.Profile{}
	for result := range results {
		if result.err != nil {
			tel.ReportWarning(
				report_resolve_speaker,
				fmt.Errorf("speaker %s: %w", result.url, result.err),
			)
			continue
		}
		profile := result.profile
		profiles[result.url] = &profile
	}

	sitting.Contributions(func(c *hansard.Contribution) {
		profile, ok := profiles[c.SpeakerUrl]
		if ok {
			c.Speaker = profile
		}
	})

	tel.ReportCount(report_resolved_speakers, int64(len(profiles)))
	return len(profiles)
}
