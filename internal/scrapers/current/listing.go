package current

import (
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const report_parse_listings = "parse-listings"

// the first div.split-docs of the index page lists the national assembly and
// every block after it the senate, nothing else says which house a listing
// belongs to.
func splitDocsHouse(i int) hansard.House {
	if i == 0 {
		return hansard.NationalAssembly
	}
	return hansard.Senate
}

func listings(doc *goquery.Document, house *hansard.House, tel telemetry.API) []hansard.Listing {
	var out []hansard.Listing
	doc.Find("div.split-docs").Each(func(i int, block *goquery.Selection) {
		blockHouse := splitDocsHouse(i)
		if house != nil && *house != blockHouse {
			return
		}

		block.Find("div.hansard-document h3 a").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			title := htmlutil.Text(a)
			if title == "" {
				return
			}

			parsed, err := hansard.ParseTitleDate(title)
			if err != nil {
				tel.ReportWarning(report_parse_listings, title, err)
				return
			}
			out = append(out, hansard.Listing{
				House:       blockHouse,
				Date:        parsed.Date,
				SessionType: parsed.SessionType,
				Url:         href,
				DisplayText: title,
			})
		})
	})
	return out
}

// ParseListings parses a page of the hansard index, if `house` is not nil only
// listings of that house are returned. Listings whose title can't be parsed are
// reported and skipped.
func ParseListings(body string, house *hansard.House, tel telemetry.API) ([]hansard.Listing, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, hansard.Invalid("parse listings page: %s", err.Error())
	}
	return listings(doc, house, tel), nil
}
