package hansard

import (
	"sort"
)

// Listing is an index entry pointing at a full sitting.
type Listing struct {
	House       House  `json:"house"`
	Date        Date   `json:"date"`
	StartTime   *Clock `json:"start_time,omitempty"`
	EndTime     *Clock `json:"end_time,omitempty"`
	SessionType string `json:"session_type,omitempty"`
	Url         string `json:"url"`
	DisplayText string `json:"display_text"`
}

type Sitting struct {
	House       House  `json:"house"`
	Date        Date   `json:"date"`
	DayOfWeek   string `json:"day_of_week,omitempty"`
	StartTime   *Clock `json:"start_time,omitempty"`
	EndTime     *Clock `json:"end_time,omitempty"`
	SessionType string `json:"session_type,omitempty"`
	// ex. "TWELFTH PARLIAMENT"
	Parliament string `json:"parliament,omitempty"`
	// ex. "Fourth Session"
	Session        string    `json:"session,omitempty"`
	SpeakerInChair string    `json:"speaker_in_chair,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Sentiment      string    `json:"sentiment,omitempty"`
	PdfUrl         string    `json:"pdf_url,omitempty"`
	Url            string    `json:"url"`
	Sections       []Section `json:"sections"`
}

// Section is a major heading, an empty Type means the section was synthesized to
// hold content that appeared before any major heading.
type Section struct {
	Type          string         `json:"type"`
	Subsections   []Subsection   `json:"subsections"`
	Contributions []Contribution `json:"contributions"`
}

type Subsection struct {
	Title         string         `json:"title"`
	Contributions []Contribution `json:"contributions"`
}

type Contribution struct {
	SpeakerName string `json:"speaker_name"`
	Role        string `json:"role,omitempty"`
	SpeakerUrl  string `json:"speaker_url,omitempty"`
	// nil until speakers are enriched
	Speaker         *Profile `json:"speaker,omitempty"`
	Content         string   `json:"content"`
	ProceduralNotes []string `json:"procedural_notes,omitempty"`
}

type Bill struct {
	Name   string `json:"name"`
	Year   string `json:"year,omitempty"`
	Status string `json:"status,omitempty"`
}

type VoteRecord struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Url      string `json:"url,omitempty"`
	Decision string `json:"decision"`
}

type Activity struct {
	Date             string `json:"date,omitempty"`
	Topic            string `json:"topic,omitempty"`
	ContributionType string `json:"contribution_type,omitempty"`
	SectionTitle     string `json:"section_title,omitempty"`
	SittingUrl       string `json:"sitting_url,omitempty"`
	TextPreview      string `json:"text_preview"`
	Url              string `json:"url"`
}

type Profile struct {
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	Url              string       `json:"url,omitempty"`
	PhotoUrl         string       `json:"photo_url,omitempty"`
	Biography        string       `json:"biography,omitempty"`
	PositionType     string       `json:"position_type,omitempty"`
	Positions        []string     `json:"positions,omitempty"`
	Party            string       `json:"party,omitempty"`
	PartyUrl         string       `json:"party_url,omitempty"`
	Email            string       `json:"email,omitempty"`
	Telephone        string       `json:"telephone,omitempty"`
	Constituency     string       `json:"constituency,omitempty"`
	Committees       []string     `json:"committees,omitempty"`
	SpeechesLastYear int          `json:"speeches_last_year"`
	SpeechesTotal    int          `json:"speeches_total"`
	BillsTotal       int          `json:"bills_total"`
	Bills            []Bill       `json:"bills,omitempty"`
	BillsPages       int          `json:"bills_pages"`
	VoteRecords      []VoteRecord `json:"vote_records,omitempty"`
	Activity         []Activity   `json:"activity,omitempty"`
	ActivityPages    int          `json:"activity_pages"`
}

type Member struct {
	Name         string `json:"name"`
	Url          string `json:"url"`
	House        House  `json:"house"`
	Role         string `json:"role,omitempty"`
	Constituency string `json:"constituency,omitempty"`
}

// Contributions calls fn for every contribution of the sitting in source order,
// contributions directly under a section come before those of its subsections.
func (s *Sitting) Contributions(fn func(c *Contribution)) {
	for i := range s.Sections {
		section := &s.Sections[i]
		for j := range section.Contributions {
			fn(&section.Contributions[j])
		}
		for j := range section.Subsections {
			sub := &section.Subsections[j]
			for k := range sub.Contributions {
				fn(&sub.Contributions[k])
			}
		}
	}
}

// ContributionCount is the total number of contributions in the sitting.
func (s *Sitting) ContributionCount() int {
	count := 0
	s.Contributions(func(*Contribution) { count++ })
	return count
}

// SpeakerURLs returns the sorted, de-duplicated set of speaker urls referenced by the sitting.
func (s *Sitting) SpeakerURLs() []string {
	seen := map[string]struct{}{}
	s.Contributions(func(c *Contribution) {
		if c.SpeakerUrl != "" {
			seen[c.SpeakerUrl] = struct{}{}
		}
	})
	out := make([]string, 0, len(seen))
	for link := range seen {
		out = append(out, link)
	}
	sort.Strings(out)
	return out
}
