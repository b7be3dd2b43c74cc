package archive

import (
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/htmlutil"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	report_parse_listings = "parse-listings"

	defaultParliament     = "PARLIAMENT OF KENYA"
	defaultSession        = "Unknown Session"
	defaultSessionType    = "Regular Sitting"
	defaultSpeakerInChair = "[Speaker information not found]"
)

var (
	sessionTypeRegex = regexp.MustCompile(`(?i)(Special|Morning|Afternoon) Sitting`)
	endTimeRegex     = regexp.MustCompile(`\bto\s+(\d{1,2}):(\d{2})\b`)
)

func pathParts(link string) []string {
	if u, err := url.Parse(link); err == nil {
		link = u.Path
	}
	var parts []string
	for _, p := range strings.Split(link, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// parseDateTime parses path segments like "2024-02-01" and "2024-02-01-14-30-00".
func parseDateTime(segment string) (hansard.Date, *hansard.Clock, error) {
	parts := strings.Split(segment, "-")
	if len(parts) < 3 {
		return hansard.Date{}, nil, hansard.Invalid("date format '%s'", segment)
	}

	numbers := make([]int, 0, len(parts))
	for i, p := range parts {
		if i >= 6 {
			break
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return hansard.Date{}, nil, hansard.Invalid("'%s' in '%s' is not a number", p, segment)
		}
		numbers = append(numbers, n)
	}

	date, err := hansard.NewDate(numbers[0], time.Month(numbers[1]), numbers[2])
	if err != nil {
		return hansard.Date{}, nil, err
	}
	if len(numbers) < 6 {
		return date, nil, nil
	}
	start, err := hansard.NewClock(numbers[3], numbers[4], numbers[5])
	if err != nil {
		return hansard.Date{}, nil, err
	}
	return date, &start, nil
}

// parseEndTime reads the "to HH:MM" part of a listing's display text, it
// returns nil if there is none.
func parseEndTime(displayText string) (*hansard.Clock, error) {
	groups := endTimeRegex.FindStringSubmatch(displayText)
	if groups == nil {
		return nil, nil
	}
	hour, _ := strconv.Atoi(groups[1])
	minute, _ := strconv.Atoi(groups[2])
	end, err := hansard.NewClock(hour, minute, 0)
	if err != nil {
		return nil, err
	}
	return &end, nil
}

func parseListing(href, displayText string) (hansard.Listing, error) {
	parts := pathParts(href)
	if len(parts) < 4 {
		return hansard.Listing{}, hansard.Invalid("url '%s' has too few parts", href)
	}

	house, err := hansard.ParseHouse(parts[len(parts)-2])
	if err != nil {
		return hansard.Listing{}, err
	}
	date, start, err := parseDateTime(parts[len(parts)-1])
	if err != nil {
		return hansard.Listing{}, err
	}
	end, err := parseEndTime(displayText)
	if err != nil {
		return hansard.Listing{}, err
	}

	return hansard.Listing{
		House:       house,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Url:         href,
		DisplayText: displayText,
	}, nil
}

// ParseListings parses the hansard index, entries that can't be parsed are
// reported and skipped.
func ParseListings(body string, base *url.URL, tel telemetry.API) ([]hansard.Listing, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, hansard.Invalid("parse listings page: %s", err.Error())
	}

	links := doc.Find("ul.listing li a")
	anchors := htmlutil.GetAnchors(base, links)
	if skipped := links.Length() - len(anchors); skipped > 0 {
		tel.ReportWarning(report_parse_listings, hansard.Missing("href of %d listing(s)", skipped))
	}

	var listings []hansard.Listing
	for _, a := range anchors {
		listing, err := parseListing(a.Href, a.Name)
		if err != nil {
			tel.ReportWarning(report_parse_listings, a.Name, err)
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func firstContaining(sel *goquery.Selection, substr string) (string, bool) {
	for _, text := range htmlutil.Texts(sel) {
		if strings.Contains(text, substr) {
			return text, true
		}
	}
	return "", false
}

func orDefault(value string, ok bool, fallback string) string {
	if !ok {
		return fallback
	}
	return value
}

// extractParenthesized returns what's between the first '(' and the last ')'.
func extractParenthesized(text string) string {
	start := strings.Index(text, "(")
	end := strings.LastIndex(text, ")")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start+1 : end])
}

// headerText is the text of a speech that is neither the speaker nor the content,
// that is where the role is written (ex. "<strong>Hon. Lusaka</strong> (The Speaker)").
func headerText(node *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "strong" || n.Data == "p") {
			return
		}
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return out.String()
}

// speechElements turns an li.speech into a speaker marker and its body,
// speeches without a <strong> speaker are not speeches.
func speechElements(li *goquery.Selection) ([]hansard.Element, bool) {
	strong := li.Find("strong").First()
	if strong.Length() == 0 {
		return nil, false
	}

	marker := hansard.Element{Kind: hansard.SpeakerMarker}
	anchor := strong.Find("a").First()
	if anchor.Length() > 0 {
		marker.Name = htmlutil.Text(anchor)
		marker.Url = anchor.AttrOr("href", "")
	} else {
		marker.Name = htmlutil.Text(strong)
	}

	marker.Role = extractParenthesized(headerText(li.Nodes[0]))

	paragraphs := li.Find("p")
	body := hansard.Element{Kind: hansard.SpeechBody}
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		body.Paragraphs = append(body.Paragraphs, htmlutil.Text(p))
	})

	return []hansard.Element{marker, body}, true
}

func sittingElements(doc *goquery.Document) []hansard.Element {
	var elements []hansard.Element
	doc.Find("li.heading, li.speech, li.scene").Each(func(_ int, li *goquery.Selection) {
		switch {
		case htmlutil.HasClass(li, "heading"):
			elements = append(elements, hansard.Element{
				Kind: hansard.MajorHeading,
				Text: htmlutil.Text(li),
			})
		case htmlutil.HasClass(li, "speech"):
			speech, ok := speechElements(li)
			if ok {
				elements = append(elements, speech...)
			}
		case htmlutil.HasClass(li, "scene"):
			elements = append(elements, hansard.Element{
				Kind: hansard.Scene,
				Text: htmlutil.Text(li),
			})
		}
	})
	return elements
}

// ParseSitting parses an archived sitting, the house, date and start time come
// from the url (ex. ".../hansard/sitting/senate/2020-06-10-14-30-00").
func ParseSitting(body, link string, options hansard.BuilderOptions) (hansard.Sitting, error) {
	parts := pathParts(link)
	if len(parts) < 2 {
		return hansard.Sitting{}, hansard.Invalid("could not extract house and date from url '%s'", link)
	}
	house, err := hansard.ParseHouse(parts[len(parts)-2])
	if err != nil {
		return hansard.Sitting{}, err
	}
	date, start, err := parseDateTime(parts[len(parts)-1])
	if err != nil {
		return hansard.Sitting{}, err
	}

	doc, err := htmlutil.Parse(body)
	if err != nil {
		return hansard.Sitting{}, hansard.Invalid("parse sitting page: %s", err.Error())
	}

	headings := doc.Find("h2")
	parliament, ok := firstContaining(headings, "PARLIAMENT")
	parliament = orDefault(parliament, ok, defaultParliament)
	session, ok := firstContaining(headings, "Session")
	session = orDefault(session, ok, defaultSession)

	sessionType := defaultSessionType
	if match := sessionTypeRegex.FindString(htmlutil.Text(doc.Find("li.page_number").First())); match != "" {
		sessionType = match
	}

	chair, ok := firstContaining(doc.Find("li.scene"), "in the Chair")
	chair = orDefault(chair, ok, defaultSpeakerInChair)

	return hansard.Sitting{
		House:          house,
		Date:           date,
		DayOfWeek:      date.Time().Weekday().String(),
		StartTime:      start,
		SessionType:    sessionType,
		Parliament:     parliament,
		Session:        session,
		SpeakerInChair: chair,
		Url:            link,
		Sections:       hansard.Build(options, sittingElements(doc)),
	}, nil
}

func isContactLine(text string) bool {
	return strings.Contains(text, "Email") ||
		strings.Contains(text, "Telephone") ||
		strings.Contains(text, "@")
}

// ParsePerson parses an archived person page into a profile, only the name and
// slug are required.
func ParsePerson(body, link string) (hansard.Profile, error) {
	slug := hansard.LastPathSegment(link)
	if slug == "" {
		return hansard.Profile{}, hansard.Invalid("could not extract slug from url '%s'", link)
	}

	doc, err := htmlutil.Parse(body)
	if err != nil {
		return hansard.Profile{}, hansard.Invalid("parse person page: %s", err.Error())
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return hansard.Profile{}, hansard.Missing("name (h1) of '%s'", link)
	}

	profile := hansard.Profile{
		Name: htmlutil.Text(h1),
		Slug: slug,
		Url:  link,
	}

	for _, text := range htmlutil.Texts(doc.Find("p")) {
		if !isContactLine(text) {
			profile.Biography = text
			break
		}
	}

	party := doc.Find(".party-membership").First()
	profile.Party = htmlutil.Text(party)
	profile.PartyUrl = party.AttrOr("href", "")

	profile.Email = strings.TrimPrefix(doc.Find("a[href^='mailto:']").First().AttrOr("href", ""), "mailto:")
	profile.Telephone = strings.TrimPrefix(doc.Find("a[href^='tel:']").First().AttrOr("href", ""), "tel:")

	if position := htmlutil.FirstText(doc.Selection, ".position.ongoing h4"); position != "" {
		profile.Positions = []string{position}
	}
	profile.Constituency = htmlutil.FirstText(doc.Selection, ".position.ongoing a[href^='/place/']")

	return profile, nil
}
