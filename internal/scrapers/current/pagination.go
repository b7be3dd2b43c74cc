package current

import (
	"hansard-scraper/lib/htmlutil"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageInfo is what a pagination widget says about the page it is on.
type PageInfo struct {
	Current int
	Total   int
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// pageInfo reads the active page from `activeSelector` and the last page from the
// largest `<param>=N` found in the hrefs matched by `linkSelector`.
func pageInfo(doc *goquery.Document, activeSelector, linkSelector, param string) (PageInfo, bool) {
	current, err := strconv.Atoi(htmlutil.FirstText(doc.Selection, activeSelector))
	if err != nil {
		return PageInfo{}, false
	}

	total := current
	doc.Find(linkSelector).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		_, after, found := strings.Cut(href, param+"=")
		if !found {
			return
		}
		n, ok := leadingNumber(after)
		if ok && n > total {
			total = n
		}
	})

	return PageInfo{Current: current, Total: total}, true
}

func listPageInfo(doc *goquery.Document) (PageInfo, bool) {
	return pageInfo(doc, "li.active.active_number_box span", "a.page_label[href]", "page")
}

func billsPageInfo(doc *goquery.Document) (PageInfo, bool) {
	return pageInfo(doc, "nav.bills-pagination li.active_number_box span", "nav.bills-pagination a[href]", "bills_page")
}

func activityPageInfo(doc *goquery.Document) (PageInfo, bool) {
	return pageInfo(doc, "nav.contributions-pagination li.active_number_box span", "nav.contributions-pagination a[href]", "contributions_page")
}

func parseWith[T any](body string, parse func(doc *goquery.Document) (T, bool)) (T, bool) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		var zero T
		return zero, false
	}
	return parse(doc)
}

// ParseListPageInfo reads the pagination of the hansard and members listings,
// false is returned if there is no pagination widget.
func ParseListPageInfo(body string) (PageInfo, bool) {
	return parseWith(body, listPageInfo)
}

// ParseBillsPageInfo reads the pagination of the bills on a profile.
func ParseBillsPageInfo(body string) (PageInfo, bool) {
	return parseWith(body, billsPageInfo)
}

// ParseActivityPageInfo reads the pagination of the activity on a profile.
func ParseActivityPageInfo(body string) (PageInfo, bool) {
	return parseWith(body, activityPageInfo)
}

// pageCount is the amount of pages of a paginated collection, a collection
// without a pagination widget has one page if it has items.
func pageCount(info PageInfo, ok bool, items int) int {
	if ok {
		return info.Total
	}
	if items > 0 {
		return 1
	}
	return 0
}
