// Package archive scrapes the archived hansard mirror at info.mzalendo.com.
package archive

import (
	"context"
	"fmt"
	"hansard-scraper/internal/components/assert"
	"hansard-scraper/internal/components/fetcher"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/scrapers/fanout"
	"hansard-scraper/lib/htmlutil"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultBaseUrl = "https://info.mzalendo.com"

const (
	report_listings = "listings"
	report_sitting  = "sitting"
	report_person   = "person"
)

var tracer = otel.Tracer("internal/scrapers/archive")

type Options struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	Builder hansard.BuilderOptions
	Fanout  fanout.Options
}

type Scraper struct {
	base    *url.URL
	fetcher fetcher.Fetcher
	options Options
	tel     telemetry.API
}

func NewScraper(f fetcher.Fetcher, options Options, tel telemetry.API) (Scraper, error) {
	assert.NotNil(f)
	assert.NotNil(tel)

	if options.BaseUrl == "" {
		options.BaseUrl = DefaultBaseUrl
	}
	base, err := url.Parse(strings.TrimRight(options.BaseUrl, "/"))
	if err != nil {
		return Scraper{}, hansard.Invalid("base url '%s': %s", options.BaseUrl, err.Error())
	}

	return Scraper{
		base:    base,
		fetcher: f,
		options: options,
		tel:     telemetry.NewScopedAPI("archive_scraper", tel),
	}, nil
}

// resolve turns a slug or a relative path into an absolute url.
func (s Scraper) resolve(urlOrSlug string) string {
	if strings.HasPrefix(urlOrSlug, "http") {
		return urlOrSlug
	}
	return htmlutil.ResolveUrl(s.base, urlOrSlug)
}

func (s Scraper) Listings(ctx context.Context) ([]hansard.Listing, error) {
	ctx, span := tracer.Start(ctx, "Listings")
	defer span.End()

	body, err := s.fetcher.Fetch(ctx, s.resolve("/hansard/"))
	if err != nil {
		s.tel.ReportBroken(report_listings, err)
		return nil, fmt.Errorf("archive listings: %w", err)
	}
	listings, err := ParseListings(body, s.base, s.tel)
	if err != nil {
		return nil, fmt.Errorf("archive listings: %w", err)
	}
	s.tel.ReportCount(report_listings, int64(len(listings)))
	return listings, nil
}

// Sitting fetches a single sitting, if fetchSpeakers is true every distinct
// speaker is resolved to a profile concurrently.
func (s Scraper) Sitting(ctx context.Context, urlOrSlug string, fetchSpeakers bool) (hansard.Sitting, error) {
	ctx, span := tracer.Start(ctx, "Sitting")
	defer span.End()

	link := s.resolve(urlOrSlug)
	span.SetAttributes(attribute.String("url", link))

	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		s.tel.ReportBroken(report_sitting, err)
		return hansard.Sitting{}, fmt.Errorf("archive sitting: %w", err)
	}
	sitting, err := ParseSitting(body, link, s.options.Builder)
	if err != nil {
		return hansard.Sitting{}, fmt.Errorf("archive sitting: %w", err)
	}

	if !fetchSpeakers {
		s.tel.ReportDebug("speaker profile fetch skipped")
		return sitting, nil
	}
	resolved := fanout.EnrichSpeakers(ctx, s.tel, s.options.Fanout, &sitting, s.Person)
	s.tel.ReportDebug("resolved speaker profiles", resolved)
	return sitting, nil
}

func (s Scraper) Person(ctx context.Context, urlOrSlug string) (hansard.Profile, error) {
	ctx, span := tracer.Start(ctx, "Person")
	defer span.End()

	link := s.resolve(urlOrSlug)
	span.SetAttributes(attribute.String("url", link))

	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return hansard.Profile{}, fmt.Errorf("archive person: %w", err)
	}
	if strings.TrimSpace(body) == "" {
		s.tel.ReportWarning(report_person, link, hansard.ErrEmptyBody)
		return hansard.Profile{}, fmt.Errorf("archive person %s: %w", link, hansard.ErrEmptyBody)
	}
	return ParsePerson(body, link)
}
