package current

import (
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func sittingHouse(doc *goquery.Document) hansard.House {
	label := htmlutil.FirstText(doc.Selection, "span.house")
	switch {
	case strings.Contains(label, "National Assembly"):
		return hansard.NationalAssembly
	case strings.Contains(label, "Senate"):
		return hansard.Senate
	}
	if strings.Contains(htmlutil.FirstText(doc.Selection, "h1.house-title"), "NATIONAL ASSEMBLY") {
		return hansard.NationalAssembly
	}
	return hansard.Senate
}

// sittingDate prefers the breadcrumb over the url slug. span.session is never
// used, it is stale on some sittings.
func sittingDate(doc *goquery.Document, link string) (hansard.TitleDate, error) {
	breadcrumb := htmlutil.FirstText(doc.Selection, "li.breadcrumb-item.current")
	if breadcrumb != "" {
		parsed, err := hansard.ParseTitleDate(breadcrumb)
		if err == nil {
			return parsed, nil
		}
	}
	return hansard.ParseSlugDate(link)
}

func sittingTime(doc *goquery.Document) *hansard.Clock {
	text := strings.TrimSpace(strings.Replace(htmlutil.FirstText(doc.Selection, "span.time"), "Time:", "", 1))
	if text == "" {
		return nil
	}
	clock, err := hansard.ParseClock12h(text)
	if err != nil {
		return nil
	}
	return &clock
}

func sittingPdf(doc *goquery.Document) string {
	href := doc.Find("div.document-thumbnail a").First().AttrOr("href", "")
	if strings.HasSuffix(href, ".pdf") {
		return href
	}
	return ""
}

const (
	summaryHeading   = "Hansard Summary"
	sentimentHeading = "Sentimental Analysis"
)

// docSummary splits "Hansard Summary <summary> Sentimental Analysis <sentiment>".
func docSummary(doc *goquery.Document) (string, string) {
	full := htmlutil.FirstText(doc.Selection, "div.doc-summary")
	body := strings.TrimSpace(strings.TrimPrefix(full, summaryHeading))
	summary, sentiment, _ := strings.Cut(body, sentimentHeading)
	return strings.TrimSpace(summary), strings.TrimSpace(sentiment)
}

// flatten returns the children of the transcript container, the newer layout
// wraps each speaker and speech pair in a div.chunk-wrapper which is unwrapped
// so both layouts produce the same stream.
func flatten(container *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	for _, child := range htmlutil.ElementChildren(container) {
		if htmlutil.Tag(child) == "div" && htmlutil.HasClass(child, "chunk-wrapper") {
			out = append(out, htmlutil.ElementChildren(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

func classify(node *goquery.Selection) (hansard.Element, bool) {
	tag := htmlutil.Tag(node)
	switch {
	case tag == "h2" && htmlutil.HasClass(node, "major-section-header"):
		return hansard.Element{Kind: hansard.MajorHeading, Text: htmlutil.Text(node)}, true
	case tag == "h2" && htmlutil.HasClass(node, "header-section"):
		return hansard.Element{Kind: hansard.MinorHeading, Text: htmlutil.Text(node)}, true
	case tag == "div" && htmlutil.HasClass(node, "contributor-name"):
		marker := hansard.Element{Kind: hansard.SpeakerMarker}
		anchor := node.Find("a").First()
		if anchor.Length() > 0 {
			marker.Name = htmlutil.Text(anchor)
			marker.Url = anchor.AttrOr("href", "")
		} else {
			marker.Name = htmlutil.Text(node)
		}
		return marker, true
	case tag == "div" && htmlutil.HasClass(node, "speech-content"):
		return hansard.Element{
			Kind:       hansard.SpeechBody,
			Paragraphs: htmlutil.Texts(node.Find("p")),
			Notes:      htmlutil.Texts(node.Find("aside.procedural-note")),
		}, true
	case tag == "div" && htmlutil.HasClass(node, "scene-description"):
		return hansard.Element{Kind: hansard.Scene, Text: htmlutil.Text(node)}, true
	case tag == "p":
		return hansard.Element{Kind: hansard.Paragraph, Text: htmlutil.Text(node)}, true
	case tag == "ol" && htmlutil.HasClass(node, "content-list"):
		return hansard.Element{
			Kind: hansard.ListFragment,
			Text: strings.Join(htmlutil.Texts(node.Find("li")), " "),
		}, true
	}
	return hansard.Element{}, false
}

func sittingElements(doc *goquery.Document) []hansard.Element {
	container := doc.Find("article.hansard-document").First()
	if container.Length() == 0 {
		container = doc.Find("div.hansard-content").First()
	}
	if container.Length() == 0 {
		return nil
	}

	var elements []hansard.Element
	for _, node := range flatten(container) {
		element, ok := classify(node)
		if ok {
			elements = append(elements, element)
		}
	}
	return elements
}

// ParseSitting parses a sitting page, `link` is the canonical url of the page and
// is used when the page itself doesn't say when the sitting happened. A page
// without a transcript is a sitting without sections, not an error.
func ParseSitting(body, link string, options hansard.BuilderOptions) (hansard.Sitting, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return hansard.Sitting{}, hansard.Invalid("parse sitting page: %s", err.Error())
	}

	date, err := sittingDate(doc, link)
	if err != nil {
		return hansard.Sitting{}, err
	}
	summary, sentiment := docSummary(doc)

	return hansard.Sitting{
		House:       sittingHouse(doc),
		Date:        date.Date,
		DayOfWeek:   date.DayOfWeek,
		StartTime:   sittingTime(doc),
		SessionType: date.SessionType,
		Summary:     summary,
		Sentiment:   sentiment,
		PdfUrl:      sittingPdf(doc),
		Url:         link,
		Sections:    hansard.Build(options, sittingElements(doc)),
	}, nil
}
