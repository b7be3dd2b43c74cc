package htmlutil

import (
	"bytes"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Text returns the whitespace normalized text of every node in the selection.
func Text(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	return strings.Join(strings.Fields(removeNonPrintable(buffer.String())), " ")
}

// FirstText is Text of the first match of `selector` under `sel`.
func FirstText(sel *goquery.Selection, selector string) string {
	return Text(sel.Find(selector).First())
}

// Texts returns the normalized non-empty text of each node in the selection, in document order.
func Texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		text := Text(s)
		if text != "" {
			out = append(out, text)
		}
	})
	return out
}

// Tag returns the element name of the first node in the selection, or "" if it is not an element.
func Tag(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 || sel.Nodes[0].Type != html.ElementNode {
		return ""
	}
	return sel.Nodes[0].Data
}

// HasClass is a substring match of the class attribute, the sites append modifiers
// to class names so exact token matches miss elements.
func HasClass(sel *goquery.Selection, class string) bool {
	return strings.Contains(sel.AttrOr("class", ""), class)
}

// ElementChildren returns the element children of the first node in the selection
// as separate selections, in document order.
func ElementChildren(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.First().Children().Each(func(_ int, child *goquery.Selection) {
		out = append(out, child)
	})
	return out
}

// ResolveUrl resolves href against base, href is returned as is if base is nil
// or href can't be parsed.
func ResolveUrl(base *url.URL, href string) string {
	link, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(link).String()
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors returns the text and href of every node in the selection, nodes without an
// href attribute are skipped. If base is not nil, relative hrefs are resolved against it.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		found := false
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				found = true
				break
			}
		}
		if !found {
			continue
		}

		href = ResolveUrl(base, href)
		name := strings.Join(strings.Fields(removeNonPrintable(GetText(n))), " ")
		anchors = append(anchors, Anchor{
			Name: name,
			Href: href,
		})
	}

	return anchors
}

// Parse parses a document, it never fails on malformed markup.
func Parse(body string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}
