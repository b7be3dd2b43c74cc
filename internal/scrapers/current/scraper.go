// Package current scrapes the live site at mzalendo.com.
package current

import (
	"context"
	"errors"
	"fmt"
	"hansard-scraper/internal/components/assert"
	"hansard-scraper/internal/components/fetcher"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/scrapers/fanout"
	"hansard-scraper/lib/htmlutil"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultBaseUrl = "https://mzalendo.com"

const (
	report_listings   = "listings"
	report_sitting    = "sitting"
	report_members    = "members"
	report_parliament = "parliament"
	report_profile    = "profile"
)

var tracer = otel.Tracer("internal/scrapers/current")

type Options struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	Builder hansard.BuilderOptions
	Fanout  fanout.Options
}

type Scraper struct {
	base    string
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
	if _, err := url.Parse(options.BaseUrl); err != nil {
		return Scraper{}, hansard.Invalid("base url '%s': %s", options.BaseUrl, err.Error())
	}

	return Scraper{
		base:    strings.TrimRight(options.BaseUrl, "/"),
		fetcher: f,
		options: options,
		tel:     telemetry.NewScopedAPI("current_scraper", tel),
	}, nil
}

func (s Scraper) profileUrl(urlOrSlug string) string {
	if strings.HasPrefix(urlOrSlug, "http") {
		return urlOrSlug
	}
	return s.base + "/" + strings.TrimPrefix(urlOrSlug, "/")
}

// fetchPage fetches a page of a paginated collection and fails if the site
// served a different page than `page`, which is what it does when asked for a
// page past the last one.
func (s Scraper) fetchPage(
	ctx context.Context,
	link string,
	page int,
	detect func(doc *goquery.Document) (PageInfo, bool),
) (*goquery.Document, PageInfo, bool, error) {
	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, PageInfo{}, false, err
	}
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, PageInfo{}, false, hansard.Invalid("parse page %d of '%s': %s", page, link, err.Error())
	}
	info, ok := detect(doc)
	if ok && info.Current != page {
		return nil, info, ok, &hansard.PageOutOfRangeError{Requested: page, Last: info.Total}
	}
	return doc, info, ok, nil
}

func (s Scraper) listingsPage(ctx context.Context, page int, house *hansard.House) ([]hansard.Listing, PageInfo, bool, error) {
	link := fmt.Sprintf("%s/democracy-tools/hansard/?page=%d", s.base, page)
	doc, info, ok, err := s.fetchPage(ctx, link, page, listPageInfo)
	if err != nil {
		return nil, info, ok, err
	}
	return listings(doc, house, s.tel), info, ok, nil
}

// ListingsPage fetches a single page of the hansard index.
func (s Scraper) ListingsPage(ctx context.Context, page int, house *hansard.House) ([]hansard.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingsPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	out, _, _, err := s.listingsPage(ctx, page, house)
	if err != nil {
		s.tel.ReportBroken(report_listings, err, page)
		return nil, fmt.Errorf("current listings page %d: %w", page, err)
	}
	return out, nil
}

// AllListings fetches the first page of the hansard index and then every
// remaining page concurrently. Only the first page is fatal.
func (s Scraper) AllListings(ctx context.Context, house *hansard.House) ([]hansard.Listing, error) {
	ctx, span := tracer.Start(ctx, "AllListings")
	defer span.End()

	first, info, ok, err := s.listingsPage(ctx, 1, house)
	if err != nil {
		s.tel.ReportBroken(report_listings, err)
		return nil, fmt.Errorf("current all listings: %w", err)
	}
	total := pageCount(info, ok, len(first))
	span.SetAttributes(attribute.Int("pages", total))

	rest := fanout.FetchRemainingPages(
		ctx, s.tel, s.options.Fanout, report_listings, total,
		func(ctx context.Context, page int) ([]hansard.Listing, error) {
			out, _, _, err := s.listingsPage(ctx, page, house)
			return out, err
		},
	)
	out := append(first, rest...)
	s.tel.ReportCount(report_listings, int64(len(out)))
	return out, nil
}

// Sitting fetches a single sitting by its url or slug, if fetchSpeakers is true
// every distinct speaker is resolved to a profile concurrently.
func (s Scraper) Sitting(ctx context.Context, urlOrSlug string, fetchSpeakers bool) (hansard.Sitting, error) {
	ctx, span := tracer.Start(ctx, "Sitting")
	defer span.End()

	link := urlOrSlug
	if !strings.HasPrefix(urlOrSlug, "http") {
		link = fmt.Sprintf("%s/democracy-tools/hansard/%s/", s.base, strings.Trim(urlOrSlug, "/"))
	}
	span.SetAttributes(attribute.String("url", link))

	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		s.tel.ReportBroken(report_sitting, err)
		return hansard.Sitting{}, fmt.Errorf("current sitting: %w", err)
	}
	sitting, err := ParseSitting(body, link, s.options.Builder)
	if err != nil {
		return hansard.Sitting{}, fmt.Errorf("current sitting: %w", err)
	}

	if !fetchSpeakers {
		return sitting, nil
	}
	resolved := fanout.EnrichSpeakers(
		ctx, s.tel, s.options.Fanout, &sitting,
		func(ctx context.Context, link string) (hansard.Profile, error) {
			return s.Profile(ctx, link, false, false)
		},
	)
	s.tel.ReportDebug("resolved speaker profiles", resolved)
	return sitting, nil
}

func (s Scraper) membersPage(ctx context.Context, house hansard.House, parliament string, page int) ([]hansard.Member, PageInfo, bool, error) {
	link := fmt.Sprintf("%s/mps-performance/%s/%s/?q=&page=%d", s.base, house.Slug(), parliament, page)
	doc, info, ok, err := s.fetchPage(ctx, link, page, listPageInfo)
	if err != nil {
		return nil, info, ok, err
	}
	return members(doc, house), info, ok, nil
}

// MembersPage fetches a single page of the members of a house in a parliament
// (ex. "13th-parliament").
func (s Scraper) MembersPage(ctx context.Context, house hansard.House, parliament string, page int) ([]hansard.Member, error) {
	ctx, span := tracer.Start(ctx, "MembersPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("house", house.Slug()),
		attribute.String("parliament", parliament),
		attribute.Int("page", page),
	)

	out, _, _, err := s.membersPage(ctx, house, parliament, page)
	if err != nil {
		s.tel.ReportBroken(report_members, err, house.String(), page)
		return nil, fmt.Errorf("current members page %d: %w", page, err)
	}
	return out, nil
}

// AllMembers fetches every page of the members of a house in a parliament.
func (s Scraper) AllMembers(ctx context.Context, house hansard.House, parliament string) ([]hansard.Member, error) {
	ctx, span := tracer.Start(ctx, "AllMembers")
	defer span.End()
	span.SetAttributes(attribute.String("house", house.Slug()))

	first, info, ok, err := s.membersPage(ctx, house, parliament, 1)
	if err != nil {
		s.tel.ReportBroken(report_members, err, house.String())
		return nil, fmt.Errorf("current all members: %w", err)
	}
	total := pageCount(info, ok, len(first))

	rest := fanout.FetchRemainingPages(
		ctx, s.tel, s.options.Fanout, report_members+" "+house.Slug(), total,
		func(ctx context.Context, page int) ([]hansard.Member, error) {
			out, _, _, err := s.membersPage(ctx, house, parliament, page)
			return out, err
		},
	)
	return append(first, rest...), nil
}

// Parliament fetches the members of both houses of a parliament in parallel,
// the national assembly is listed before the senate. If all is false only the
// first page of each house is fetched. A house that fails is reported and left
// out, an error is only returned if both fail.
func (s Scraper) Parliament(ctx context.Context, parliament string, all bool) ([]hansard.Member, error) {
	ctx, span := tracer.Start(ctx, "Parliament")
	defer span.End()
	span.SetAttributes(attribute.String("parliament", parliament))

	houses := []hansard.House{hansard.NationalAssembly, hansard.Senate}
	results := make([][]hansard.Member, len(houses))
	errs := make([]error, len(houses))

	wg := sync.WaitGroup{}
	for i, house := range houses {
		wg.Add(1)
		go func(i int, house hansard.House) {
			defer wg.Done()
			if all {
				results[i], errs[i] = s.AllMembers(ctx, house, parliament)
				return
			}
			results[i], errs[i] = s.MembersPage(ctx, house, parliament, 1)
		}(i, house)
	}
	wg.Wait()

	var out []hansard.Member
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			s.tel.ReportWarning(report_parliament, houses[i].String(), err)
			continue
		}
		out = append(out, results[i]...)
	}
	if failed == len(houses) {
		return nil, fmt.Errorf("current parliament %s: %w", parliament, errors.Join(errs...))
	}
	s.tel.ReportCount(report_parliament, int64(len(out)))
	return out, nil
}

// Profile fetches a member's profile. If allActivity or allBills is true the
// remaining pages of those collections are fetched concurrently and appended,
// a remaining page that fails is reported and left out.
func (s Scraper) Profile(ctx context.Context, urlOrSlug string, allActivity, allBills bool) (hansard.Profile, error) {
	ctx, span := tracer.Start(ctx, "Profile")
	defer span.End()

	link := s.profileUrl(urlOrSlug)
	span.SetAttributes(attribute.String("url", link))

	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return hansard.Profile{}, fmt.Errorf("current profile: %w", err)
	}
	if strings.TrimSpace(body) == "" {
		s.tel.ReportWarning(report_profile, link, hansard.ErrEmptyBody)
		return hansard.Profile{}, fmt.Errorf("current profile %s: %w", link, hansard.ErrEmptyBody)
	}
	profile, err := ParseProfile(body, link)
	if err != nil {
		return hansard.Profile{}, fmt.Errorf("current profile: %w", err)
	}

	var extraActivity []hansard.Activity
	var extraBills []hansard.Bill

	wg := sync.WaitGroup{}
	if allActivity && profile.ActivityPages > 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			extraActivity = fanout.FetchRemainingPages(
				ctx, s.tel, s.options.Fanout, "activity "+profile.Slug, profile.ActivityPages,
				func(ctx context.Context, page int) ([]hansard.Activity, error) {
					return s.ActivityPage(ctx, link, page)
				},
			)
		}()
	}
	if allBills && profile.BillsPages > 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			extraBills = fanout.FetchRemainingPages(
				ctx, s.tel, s.options.Fanout, "bills "+profile.Slug, profile.BillsPages,
				func(ctx context.Context, page int) ([]hansard.Bill, error) {
					return s.BillsPage(ctx, link, page)
				},
			)
		}()
	}
	wg.Wait()

	profile.Activity = append(profile.Activity, extraActivity...)
	profile.Bills = append(profile.Bills, extraBills...)
	return profile, nil
}

func (s Scraper) subpageUrl(urlOrSlug, param string, page int) string {
	return fmt.Sprintf("%s/?%s=%d", strings.TrimRight(s.profileUrl(urlOrSlug), "/"), param, page)
}

// ActivityPage fetches a single page of a member's parliamentary activity.
func (s Scraper) ActivityPage(ctx context.Context, urlOrSlug string, page int) ([]hansard.Activity, error) {
	ctx, span := tracer.Start(ctx, "ActivityPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	doc, _, _, err := s.fetchPage(ctx, s.subpageUrl(urlOrSlug, "contributions_page", page), page, activityPageInfo)
	if err != nil {
		return nil, fmt.Errorf("current activity page %d: %w", page, err)
	}
	return activity(doc), nil
}

// BillsPage fetches a single page of the bills sponsored by a member.
func (s Scraper) BillsPage(ctx context.Context, urlOrSlug string, page int) ([]hansard.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillsPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	doc, _, _, err := s.fetchPage(ctx, s.subpageUrl(urlOrSlug, "bills_page", page), page, billsPageInfo)
	if err != nil {
		return nil, fmt.Errorf("current bills page %d: %w", page, err)
	}
	return bills(doc), nil
}
