// Package render writes scraped entities to a terminal, either as text and
// tables or as indented json.
package render

import (
	"encoding/json"
	"fmt"
	"hansard-scraper/internal/hansard"
	"hansard-scraper/internal/scrapers/current"
	"hansard-scraper/lib/textutil"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const previewLength = 120

type Format int

const (
	Text Format = iota
	Json
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return Text, nil
	case "json":
		return Json, nil
	}
	return Text, fmt.Errorf("unknown output format '%s' (expected text or json)", s)
}

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func JSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func clock(c *hansard.Clock) string {
	if c == nil {
		return ""
	}
	return c.String()
}

// Listings renders a table of listings, if stats is true a footer with the
// amount of listings per house is added.
func Listings(out io.Writer, listings []hansard.Listing, stats bool) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"House", "Date", "Start", "End", "Session", "Url"})
	for _, l := range listings {
		t.AppendRow(table.Row{l.House, l.Date, clock(l.StartTime), clock(l.EndTime), l.SessionType, l.Url})
	}
	if stats {
		s := hansard.Stats(listings)
		t.AppendFooter(table.Row{
			"Total", s.Total,
			hansard.NationalAssembly, s.NationalAssembly,
			hansard.Senate, s.Senate,
		})
	}
	t.Render()
}

func Members(out io.Writer, members []hansard.Member) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Name", "House", "Role", "Constituency", "Url"})
	for _, m := range members {
		t.AppendRow(table.Row{m.Name, m.House, m.Role, m.Constituency, m.Url})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(members)})
	t.Render()
}

func RankedMembers(out io.Writer, ranked []current.RankedMember) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Name", "House", "Constituency", "Score", "Url"})
	for _, m := range ranked {
		t.AppendRow(table.Row{m.Name, m.House, m.Constituency, fmt.Sprintf("%.3f", m.Score), m.Url})
	}
	t.Render()
}

func contributions(out io.Writer, list []hansard.Contribution, indent string) {
	for _, c := range list {
		speaker := c.SpeakerName
		if speaker == "" {
			speaker = "(no speaker)"
		}
		if c.Role != "" {
			speaker += " [" + c.Role + "]"
		}
		if c.Speaker != nil && c.Speaker.Party != "" {
			speaker += " (" + c.Speaker.Party + ")"
		}
		fmt.Fprintf(out, "%s▸ %s\n", indent, speaker)
		if c.Content != "" {
			fmt.Fprintf(out, "%s  %s\n", indent, textutil.Preview(textutil.NormalizeWhitespace(c.Content), previewLength))
		}
		for _, note := range c.ProceduralNotes {
			fmt.Fprintf(out, "%s  [%s]\n", indent, note)
		}
	}
}

func Sitting(out io.Writer, s hansard.Sitting) {
	fmt.Fprintf(out, "┌─ %s ─ %s ─ %s\n", s.House, s.Date, s.SessionType)
	if s.StartTime != nil {
		fmt.Fprintf(out, "│  Time: %s", s.StartTime)
		if s.EndTime != nil {
			fmt.Fprintf(out, " to %s", s.EndTime)
		}
		fmt.Fprintln(out)
	}
	if s.Parliament != "" {
		fmt.Fprintf(out, "│  %s, %s\n", s.Parliament, s.Session)
	}
	if s.SpeakerInChair != "" {
		fmt.Fprintf(out, "│  %s\n", s.SpeakerInChair)
	}
	if s.Summary != "" {
		fmt.Fprintf(out, "│  Summary: %s\n", textutil.Preview(s.Summary, previewLength))
	}
	if s.Sentiment != "" {
		fmt.Fprintf(out, "│  Sentiment: %s\n", textutil.Preview(s.Sentiment, previewLength))
	}
	if s.PdfUrl != "" {
		fmt.Fprintf(out, "│  Pdf: %s\n", s.PdfUrl)
	}
	fmt.Fprintf(out, "└─ %d section(s), %d contribution(s)\n\n", len(s.Sections), s.ContributionCount())

	for i, section := range s.Sections {
		title := section.Type
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "%2d. ── %s\n", i+1, title)
		contributions(out, section.Contributions, "  ")
		for _, sub := range section.Subsections {
			fmt.Fprintf(out, "    ── %s\n", sub.Title)
			contributions(out, sub.Contributions, "    ")
		}
	}
}

func joined(out io.Writer, label string, values []string) {
	if len(values) > 0 {
		fmt.Fprintf(out, "  %s: %s\n", label, strings.Join(values, ", "))
	}
}

func field(out io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(out, "  %s: %s\n", label, value)
	}
}

func Profile(out io.Writer, p hansard.Profile) {
	fmt.Fprintln(out, p.Name)
	field(out, "Url", p.Url)
	field(out, "Position type", p.PositionType)
	joined(out, "Positions", p.Positions)
	field(out, "Party", p.Party)
	field(out, "Constituency", p.Constituency)
	field(out, "Email", p.Email)
	field(out, "Telephone", p.Telephone)
	joined(out, "Committees", p.Committees)
	if p.SpeechesTotal > 0 {
		fmt.Fprintf(out, "  Speeches: %d last year, %d total\n", p.SpeechesLastYear, p.SpeechesTotal)
	}
	if p.BillsTotal > 0 || len(p.Bills) > 0 {
		fmt.Fprintf(out, "  Bills sponsored: %d (%d page(s))\n", p.BillsTotal, p.BillsPages)
		for _, b := range p.Bills {
			fmt.Fprintf(out, "    %s (%s) %s\n", b.Name, b.Year, b.Status)
		}
	}
	if len(p.VoteRecords) > 0 {
		fmt.Fprintf(out, "  Voting records: %d\n", len(p.VoteRecords))
		for _, v := range p.VoteRecords {
			fmt.Fprintf(out, "    %s %s [%s]\n", v.Date, v.Title, v.Decision)
		}
	}
	if len(p.Activity) > 0 {
		fmt.Fprintf(out, "  Activity items: %d (%d page(s))\n", len(p.Activity), p.ActivityPages)
		for _, a := range p.Activity {
			fmt.Fprintf(out, "    [%s] %s: %s (%s)\n", a.Date, a.SectionTitle, a.Topic, a.ContributionType)
		}
	}
	if p.Biography != "" {
		fmt.Fprintf(out, "\n%s\n", p.Biography)
	}
}
