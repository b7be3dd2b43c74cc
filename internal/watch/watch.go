// Package watch polls the hansard index on a schedule and reports sittings it
// hasn't seen during the current run.
package watch

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/assert"
	"hansard-scraper/internal/components/chrono"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"

	"go.opentelemetry.io/otel"
)

const (
	report_poll = "poll"
	report_new  = "new-listings"
)

var tracer = otel.Tracer("internal/watch")

type ListFunc func(ctx context.Context) ([]hansard.Listing, error)

// Watcher remembers the urls of every listing it returned, it is not safe for
// concurrent use.
type Watcher struct {
	list ListFunc
	seen map[string]struct{}
	tel  telemetry.API
}

func NewWatcher(list ListFunc, tel telemetry.API) *Watcher {
	assert.NotNil(list)
	assert.NotNil(tel)
	return &Watcher{
		list: list,
		seen: map[string]struct{}{},
		tel:  telemetry.NewScopedAPI("watch", tel),
	}
}

// Poll lists the index and returns the listings that weren't returned by a
// previous Poll, in the order they were listed.
func (w *Watcher) Poll(ctx context.Context) ([]hansard.Listing, error) {
	ctx, span := tracer.Start(ctx, "Poll")
	defer span.End()

	listings, err := w.list(ctx)
	if err != nil {
		w.tel.ReportWarning(report_poll, err)
		return nil, err
	}

	var fresh []hansard.Listing
	for _, l := range listings {
		if _, ok := w.seen[l.Url]; ok {
			continue
		}
		w.seen[l.Url] = struct{}{}
		fresh = append(fresh, l)
	}
	w.tel.ReportCount(report_new, int64(len(fresh)))
	return fresh, nil
}

// Run polls once immediately and then on every tick of `spec` until ctx is
// done, `onNew` is called whenever a poll returned new listings. A failing poll
// is reported and retried on the next tick.
func Run(
	ctx context.Context,
	cron chrono.CronAPI,
	spec string,
	w *Watcher,
	onNew func(listings []hansard.Listing),
) error {
	assert.NotNil(cron)
	assert.NotEmptyStr(spec)

	poll := func() {
		fresh, err := w.Poll(ctx)
		if err == nil && len(fresh) > 0 {
			onNew(fresh)
		}
	}

	poll()
	err := cron.Cron(spec, poll)
	if err != nil {
		return fmt.Errorf("schedule '%s': %w", spec, err)
	}
	<-ctx.Done()
	cron.Stop()
	return nil
}
