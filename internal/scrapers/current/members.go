package current

import (
	"hansard-scraper/internal/hansard"
	"hansard-scraper/lib/htmlutil"
	"hansard-scraper/lib/textutil"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
)

func members(doc *goquery.Document, house hansard.House) []hansard.Member {
	var out []hansard.Member
	doc.Find("a.members-list--item, a.senators-list--item").Each(func(_ int, item *goquery.Selection) {
		href, ok := item.Attr("href")
		if !ok {
			return
		}
		name := htmlutil.FirstText(item, "div.members-list--name, div.senators-list--name")
		if name == "" {
			return
		}
		out = append(out, hansard.Member{
			Name:         name,
			Url:          href,
			House:        house,
			Role:         htmlutil.FirstText(item, "p.leader-role"),
			Constituency: htmlutil.FirstText(item, "div.members-list--representation, div.senators-list--representation"),
		})
	})
	return out
}

// ParseMembers parses a page of the members of a house.
func ParseMembers(body string, house hansard.House) ([]hansard.Member, error) {
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, hansard.Invalid("parse members page: %s", err.Error())
	}
	return members(doc, house), nil
}

type RankedMember struct {
	hansard.Member
	Score float64 `json:"score"`
}

// RankMembers orders members by how closely their name matches `query`
// (Jaro-Winkler over normalized names), members scoring below `threshold` are
// dropped. An exact match of the normalized names always scores 1.
func RankMembers(list []hansard.Member, query string, threshold float64) []RankedMember {
	normalizedQuery := textutil.NormalizeName(query)

	var ranked []RankedMember
	for _, m := range list {
		normalized := textutil.NormalizeName(m.Name)
		score := matchr.JaroWinkler(normalizedQuery, normalized, false)
		if normalized == normalizedQuery {
			score = 1
		}
		if score < threshold {
			continue
		}
		ranked = append(ranked, RankedMember{Member: m, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
