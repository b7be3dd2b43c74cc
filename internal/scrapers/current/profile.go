package current

import (
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/htmlutil"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	speechesRegex   = regexp.MustCompile(`has made\D+(\d+)\D+speeches last year\D+(\d+)\D+speeches`)
	billsTotalRegex = regexp.MustCompile(`has sponsored\D+(\d+)\D+bill`)
)

func bills(doc *goquery.Document) []hansard.Bill {
	var out []hansard.Bill
	doc.Find("div.bill-item").Each(func(_ int, item *goquery.Selection) {
		name := htmlutil.FirstText(item, "h3.bill-name")
		if name == "" {
			return
		}
		status := htmlutil.FirstText(item, "div.bill-stage")
		if rest, found := strings.CutPrefix(status, "Status:"); found {
			status = strings.TrimSpace(rest)
		}
		out = append(out, hansard.Bill{
			Name:   name,
			Year:   htmlutil.FirstText(item, "span.bill-year"),
			Status: status,
		})
	})
	return out
}

func voteRecords(doc *goquery.Document) []hansard.VoteRecord {
	var out []hansard.VoteRecord
	doc.Find("div.voting-patterns-row").Each(func(_ int, row *goquery.Selection) {
		date := row.Find("div.voting-cell.voting-date").First()
		title := row.Find("div.voting-cell.voting-title a").First()
		if date.Length() == 0 || title.Length() == 0 {
			return
		}
		out = append(out, hansard.VoteRecord{
			Date:     htmlutil.Text(date),
			Title:    htmlutil.Text(title),
			Url:      title.AttrOr("href", ""),
			Decision: htmlutil.FirstText(row, "div.voting-cell.voting-decision span.decision-badge"),
		})
	})
	return out
}

func activity(doc *goquery.Document) []hansard.Activity {
	var out []hansard.Activity
	doc.Find("div.contribution-group").Each(func(_ int, group *goquery.Selection) {
		topic := htmlutil.FirstText(group, "span.topic-badge.topic-badge-large")
		date := htmlutil.FirstText(group, "span.group-date")

		group.Find("div.conversation-subgroup").Each(func(_ int, subgroup *goquery.Selection) {
			contributionType := htmlutil.FirstText(subgroup, "span.conversation-type-badge")
			title := subgroup.Find("a.conversation-title").First()
			sittingUrl, _, _ := strings.Cut(title.AttrOr("href", ""), "#")

			subgroup.Find("div.contribution-item").Each(func(_ int, item *goquery.Selection) {
				link := item.Find("a.contribution-text-link").First()
				href := link.AttrOr("href", "")
				if link.Length() == 0 || href == "" {
					return
				}
				out = append(out, hansard.Activity{
					Date:             date,
					Topic:            topic,
					ContributionType: contributionType,
					SectionTitle:     htmlutil.Text(title),
					SittingUrl:       sittingUrl,
					TextPreview:      htmlutil.FirstText(link, "p.contribution-text"),
					Url:              href,
				})
			})
		})
	})
	return out
}

// ParseBills parses the bills sponsored by a member on a page of a profile.
func ParseBills(body string) ([]hansard.Bill, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, hansard.Invalid("parse bills: %s", err.Error())
	}
	return bills(doc), nil
}

// ParseActivity parses the parliamentary activity on a page of a profile.
func ParseActivity(body string) ([]hansard.Activity, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, hansard.Invalid("parse activity: %s", err.Error())
	}
	return activity(doc), nil
}

func headingContaining(doc *goquery.Document, selector, substr string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(selector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(htmlutil.Text(h), substr) {
			found = h
			return false
		}
		return true
	})
	return found
}

// positions collects the paragraphs after the "CURRENT POSITIONS" heading up to
// the next h2. The national assembly wraps them in div.position-section, the
// senate doesn't.
func positions(doc *goquery.Document) []string {
	heading := headingContaining(doc, "h2.header-two", "CURRENT POSITIONS")
	if heading == nil {
		return nil
	}

	var out []string
	for sibling := heading.Next(); sibling.Length() > 0; sibling = sibling.Next() {
		tag := htmlutil.Tag(sibling)
		if tag == "h2" {
			break
		}
		switch {
		case tag == "div" && htmlutil.HasClass(sibling, "position-section"):
			out = append(out, htmlutil.Texts(sibling.Find("p"))...)
		case tag == "p":
			if text := htmlutil.Text(sibling); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

func party(doc *goquery.Document) string {
	heading := headingContaining(doc, "h2.header-two, h2.header-three", "Parties")
	if heading == nil {
		return ""
	}
	return htmlutil.Text(heading.NextAllFiltered("p.elected-post").First())
}

func speeches(doc *goquery.Document) (int, int) {
	text := htmlutil.FirstText(doc.Selection, "div.activity-section p")
	groups := speechesRegex.FindStringSubmatch(text)
	if groups == nil {
		return 0, 0
	}
	lastYear, _ := strconv.Atoi(groups[1])
	total, _ := strconv.Atoi(groups[2])
	return lastYear, total
}

func billsTotal(doc *goquery.Document) int {
	groups := billsTotalRegex.FindStringSubmatch(htmlutil.FirstText(doc.Selection, "p.bills-summary"))
	if groups == nil {
		return 0
	}
	total, _ := strconv.Atoi(groups[1])
	return total
}

// ParseProfile parses the first page of a member's profile, only the name and
// slug are required. Bills and activity are paginated independently, their
// page counts are read from their own pagination widgets.
func ParseProfile(body, link string) (hansard.Profile, error) {
	slug := hansard.LastPathSegment(link)
	if slug == "" {
		return hansard.Profile{}, hansard.Invalid("could not extract slug from url '%s'", link)
	}

	doc, err := htmlutil.Parse(body)
	if err != nil {
		return hansard.Profile{}, hansard.Invalid("parse profile page: %s", err.Error())
	}

	h1 := doc.Find("h1.page-heading").First()
	if h1.Length() == 0 {
		return hansard.Profile{}, hansard.Missing("member name (h1.page-heading) of '%s'", link)
	}

	profile := hansard.Profile{
		Name:         htmlutil.Text(h1),
		Slug:         slug,
		Url:          link,
		PhotoUrl:     doc.Find("img.member-list--image").First().AttrOr("src", ""),
		Biography:    htmlutil.FirstText(doc.Selection, "section.member-biography div.biography-content"),
		PositionType: htmlutil.FirstText(doc.Selection, "h2.assembly-entry"),
		Positions:    positions(doc),
		Party:        party(doc),
		Committees:   htmlutil.Texts(doc.Find("li.committee-item")),
		BillsTotal:   billsTotal(doc),
		Bills:        bills(doc),
		VoteRecords:  voteRecords(doc),
		Activity:     activity(doc),
	}
	profile.SpeechesLastYear, profile.SpeechesTotal = speeches(doc)

	info, ok := billsPageInfo(doc)
	profile.BillsPages = pageCount(info, ok, len(profile.Bills))
	info, ok = activityPageInfo(doc)
	profile.ActivityPages = pageCount(info, ok, len(profile.Activity))

	return profile, nil
}
