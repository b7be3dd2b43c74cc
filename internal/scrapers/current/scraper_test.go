package current

import (
	"context"
	"errors"
	"hansard-scraper/internal/components/fetcher"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScraper(t *testing.T, pages map[string]string) (Scraper, *telemetry.Recorder) {
	t.Helper()
	f := fetcher.Func(func(ctx context.Context, link string) (string, error) {
		body, ok := pages[link]
		if !ok {
			return "", hansard.ErrTransport
		}
		return body, nil
	})
	recorder := telemetry.NewRecorder()
	scraper, err := NewScraper(f, Options{Builder: hansard.DefaultBuilderOptions()}, recorder)
	require.NoError(t, err)
	return scraper, recorder
}

func TestScraperListings(t *testing.T) {
	scraper, recorder := newTestScraper(t, map[string]string{
		"https://mzalendo.com/democracy-tools/hansard/?page=1": listingsPage(1),
		"https://mzalendo.com/democracy-tools/hansard/?page=2": listingsPage(2),
		// the site serves the last page it has for pages past it
		"https://mzalendo.com/democracy-tools/hansard/?page=9": listingsPage(2),
	})
	ctx := context.Background()

	page, err := scraper.ListingsPage(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)

	_, err = scraper.ListingsPage(ctx, 9, nil)
	require.ErrorIs(t, err, hansard.ErrPageOutOfRange)
	var outOfRange *hansard.PageOutOfRangeError
	require.True(t, errors.As(err, &outOfRange))
	require.Equal(t, hansard.PageOutOfRangeError{Requested: 9, Last: 3}, *outOfRange)

	// page 3 fails, its listings are left out and a warning is reported
	all, err := scraper.AllListings(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "/democracy-tools/hansard/tuesday-11th-february-2025-afternoon-sitting-1/", all[0].Url)
	require.Equal(t, "/democracy-tools/hansard/tuesday-11th-february-2025-afternoon-sitting-2/", all[2].Url)
	require.True(t, recorder.Has("warning", "fetch-page"))

	senate := hansard.Senate
	filtered, err := scraper.AllListings(ctx, &senate)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestScraperSitting(t *testing.T) {
	scraper, _ := newTestScraper(t, map[string]string{
		"https://mzalendo.com/democracy-tools/hansard/some-slug/":                 newSittingPage,
		"https://mzalendo.com/mps-performance/senate/13th-parliament/john-roe/": `<html><body><h1 class="page-heading">Sen. John Roe</h1></body></html>`,
	})
	ctx := context.Background()

	sitting, err := scraper.Sitting(ctx, "/some-slug/", false)
	require.NoError(t, err)
	require.Nil(t, sitting.Sections[0].Contributions[0].Speaker)

	sitting, err = scraper.Sitting(ctx, "some-slug", true)
	require.NoError(t, err)
	for _, c := range sitting.Sections[0].Contributions {
		require.NotNil(t, c.Speaker)
		require.Equal(t, "john-roe", c.Speaker.Slug)
	}

	_, err = scraper.Sitting(ctx, "https://mzalendo.com/democracy-tools/hansard/missing/", false)
	require.ErrorIs(t, err, hansard.ErrTransport)
}

func TestScraperSittingUnresolvedSpeaker(t *testing.T) {
	scraper, recorder := newTestScraper(t, map[string]string{
		"https://mzalendo.com/democracy-tools/hansard/some-slug/": newSittingPage,
	})

	sitting, err := scraper.Sitting(context.Background(), "some-slug", true)
	require.NoError(t, err)
	require.Nil(t, sitting.Sections[0].Contributions[0].Speaker)
	require.True(t, recorder.Has("warning", "resolve-speaker"))
}

func TestScraperMembers(t *testing.T) {
	scraper, recorder := newTestScraper(t, map[string]string{
		"https://mzalendo.com/mps-performance/national-assembly/13th-parliament/?q=&page=1": membersPage,
	})
	ctx := context.Background()

	members, err := scraper.AllMembers(ctx, hansard.NationalAssembly, "13th-parliament")
	require.NoError(t, err)
	require.Len(t, members, 2)

	_, err = scraper.MembersPage(ctx, hansard.Senate, "13th-parliament", 1)
	require.ErrorIs(t, err, hansard.ErrTransport)

	// the senate fails, so only the national assembly is returned
	parliament, err := scraper.Parliament(ctx, "13th-parliament", true)
	require.NoError(t, err)
	require.Equal(t, members, parliament)
	require.True(t, recorder.Has("warning", report_parliament))

	_, err = scraper.Parliament(ctx, "12th-parliament", false)
	require.ErrorIs(t, err, hansard.ErrTransport)
}

func TestScraperProfile(t *testing.T) {
	scraper, recorder := newTestScraper(t, map[string]string{
		profileLink:                  profilePage,
		profileLink + "?bills_page=2": billsPage(2, "The Water Bill"),
		// page 3 reports itself as page 2
		profileLink + "?bills_page=3": billsPage(2, "The Water Bill"),
	})
	ctx := context.Background()

	profile, err := scraper.Profile(ctx, "/mps-performance/national-assembly/13th-parliament/jane-doe/", false, false)
	require.NoError(t, err)
	require.Len(t, profile.Bills, 1)

	profile, err = scraper.Profile(ctx, profileLink, true, true)
	require.NoError(t, err)
	require.Equal(t, []hansard.Bill{{Name: "The Roads Bill", Year: "2024", Status: "First Reading"}, {Name: "The Water Bill"}}, profile.Bills)
	require.Len(t, profile.Activity, 1)
	require.True(t, recorder.Has("warning", "fetch-page"))

	_, err = scraper.BillsPage(ctx, profileLink, 3)
	require.ErrorIs(t, err, hansard.ErrPageOutOfRange)
}

func TestProfileUrl(t *testing.T) {
	f := fetcher.Func(func(ctx context.Context, link string) (string, error) {
		return "", hansard.ErrTransport
	})
	scraper, err := NewScraper(f, Options{BaseUrl: "https://mzalendo.com/"}, telemetry.NewRecorder())
	require.NoError(t, err)

	for _, input := range []string{
		"mps-performance/national-assembly/13th-parliament/jane-doe/",
		"/mps-performance/national-assembly/13th-parliament/jane-doe/",
		profileLink,
	} {
		require.Equal(t, profileLink, scraper.profileUrl(input), input)
	}
	require.Equal(t, profileLink+"?bills_page=2", scraper.subpageUrl("mps-performance/national-assembly/13th-parliament/jane-doe", "bills_page", 2))
}

func TestScraperEmptyProfile(t *testing.T) {
	scraper, _ := newTestScraper(t, map[string]string{profileLink: "\n\t"})

	_, err := scraper.Profile(context.Background(), profileLink, false, false)
	require.ErrorIs(t, err, hansard.ErrEmptyBody)
	require.NotErrorIs(t, err, hansard.ErrTransport)
}
