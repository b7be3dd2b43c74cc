package current

import (
	"fmt"
	"hansard-scraper/internal/components/telemetry"
	"hansard-scraper/internal/hansard"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func listingsPage(page int) string {
	return fmt.Sprintf(`<html><body>
<div class="split-docs">
	<div class="hansard-document"><h3><a href="/democracy-tools/hansard/tuesday-11th-february-2025-afternoon-sitting-%[1]d/">Tuesday, 11th February, 2025 - Afternoon Sitting</a></h3></div>
	<div class="hansard-document"><h3><a href="/x/">Not a date</a></h3></div>
</div>
<div class="split-docs">
	<div class="hansard-document"><h3><a href="/democracy-tools/hansard/wednesday-12th-february-2025-morning-sitting-%[1]d/">Wednesday, 12th February, 2025 - Morning Sitting</a></h3></div>
	<div class="hansard-document"><h3><a>No href</a></h3></div>
</div>
<ul class="pagination">
	<li class="active active_number_box"><span>%[1]d</span></li>
	<li><a class="page_label" href="?page=1">1</a></li>
	<li><a class="page_label" href="?page=2">2</a></li>
	<li><a class="page_label" href="?page=3">Last</a></li>
</ul>
</body></html>`, page)
}

const oldSittingPage = `<html><body>
<h1 class="house-title">THE NATIONAL ASSEMBLY</h1>
<div class="hansard-content">
	<h2 class="major-section-header">THE NATIONAL ASSEMBLY</h2>
	<p>The House met at 2.30 p.m.</p>
	<h2 class="major-section-header">PRAYERS</h2>
	<h2 class="major-section-header">QUESTIONS</h2>
	<h2 class="header-section">Question No. 12</h2>
	<div class="contributor-name"><a href="/mps-performance/national-assembly/13th-parliament/jane-doe/">Hon. Jane Doe</a></div>
	<div class="speech-content">
		<p>Thank you.</p>
		<p>I ask.</p>
		<aside class="procedural-note">(Applause)</aside>
	</div>
	<div class="scene-description">(Loud consultations)</div>
	<ol class="content-list"><li>First</li><li></li><li>Second</li></ol>
	<div class="contributor-name">The Speaker</div>
</div>
</body></html>`

const newSittingPage = `<html><body>
<span class="house">Senate</span>
<ol class="breadcrumb"><li class="breadcrumb-item current">Tuesday, 11th February, 2025 - Afternoon Sitting</li></ol>
<span class="session">Monday, 1st January, 2001 - Morning Sitting</span>
<span class="time">Time: 2:30 PM</span>
<div class="doc-summary">Hansard Summary The Senate debated roads. Sentimental Analysis Mostly positive.</div>
<div class="document-thumbnail"><a href="https://mzalendo.com/media/hansard.pdf">PDF</a></div>
<article class="hansard-document">
	<h2 class="major-section-header">MOTIONS</h2>
	<div class="chunk-wrapper">
		<div class="contributor-name"><a href="/mps-performance/senate/13th-parliament/john-roe/">Sen. John Roe</a></div>
		<div class="speech-content"><p>I beg to move.</p></div>
	</div>
	<div class="chunk-wrapper">
		<div class="contributor-name"><a href="/mps-performance/senate/13th-parliament/john-roe/">Sen. John Roe</a></div>
		<div class="speech-content"><p>Seconded.</p></div>
	</div>
</article>
</body></html>`

const profileLink = "https://mzalendo.com/mps-performance/national-assembly/13th-parliament/jane-doe/"

const profilePage = `<html><body>
<h1 class="page-heading"> Hon. Jane
	Doe </h1>
<img class="member-list--image" src="/media/jane.jpg">
<section class="member-biography"><div class="biography-content">Jane is an MP.</div></section>
<h2 class="assembly-entry">Member of National Assembly</h2>
<div>
	<h2 class="header-two">CURRENT POSITIONS</h2>
	<div class="position-section"><p>Member, Budget Committee</p><p>Chairperson, Roads</p></div>
	<p>Whip</p>
	<h2 class="header-three">Parties and Coalitions</h2>
	<p class="elected-post">Orange Democratic Movement</p>
</div>
<ul><li class="committee-item">Budget</li><li class="committee-item">Roads</li></ul>
<div class="activity-section"><p>Jane Doe has made 12 speeches last year and 340 speeches in total.</p></div>
<p class="bills-summary">Jane Doe has sponsored 3 bills.</p>
<div class="bill-item">
	<h3 class="bill-name">The Roads Bill</h3>
	<span class="bill-year">2024</span>
	<div class="bill-stage">Status: First Reading</div>
</div>
<div class="bill-item"><span class="bill-year">2023</span></div>
<nav class="bills-pagination"><ul>
	<li class="active_number_box"><span>1</span></li>
	<li><a href="?bills_page=2">2</a></li>
	<li><a href="?bills_page=3">Last</a></li>
</ul></nav>
<div class="voting-patterns-row">
	<div class="voting-cell voting-date">12 Mar 2024</div>
	<div class="voting-cell voting-title"><a href="/votes/finance-bill/">Finance Bill</a></div>
	<div class="voting-cell voting-decision"><span class="decision-badge">Yes</span></div>
</div>
<div class="voting-patterns-row">
	<div class="voting-cell voting-title"><a href="/votes/no-date/">No date</a></div>
</div>
<div class="contribution-group">
	<span class="topic-badge topic-badge-large">Finance</span>
	<span class="group-date">12 Mar 2024</span>
	<div class="conversation-subgroup">
		<span class="conversation-type-badge">Debate</span>
		<a class="conversation-title" href="/democracy-tools/hansard/tuesday-12th-march-2024-afternoon-sitting-12/#speech-4">FINANCE BILL</a>
		<div class="contribution-item">
			<a class="contribution-text-link" href="/democracy-tools/hansard/tuesday-12th-march-2024-afternoon-sitting-12/#speech-4"><p class="contribution-text">I support.</p></a>
		</div>
		<div class="contribution-item">
			<a class="contribution-text-link"><p class="contribution-text">No link</p></a>
		</div>
	</div>
</div>
</body></html>`

func billsPage(page int, name string) string {
	return fmt.Sprintf(`<html><body>
<div class="bill-item"><h3 class="bill-name">%s</h3></div>
<nav class="bills-pagination"><ul>
	<li class="active_number_box"><span>%d</span></li>
	<li><a href="?bills_page=3">Last</a></li>
</ul></nav>
</body></html>`, name, page)
}

const membersPage = `<html><body>
<a class="members-list--item" href="/mps-performance/national-assembly/13th-parliament/jane-doe/">
	<div class="members-list--name">Hon. Jane Doe</div>
	<p class="leader-role">Majority Whip</p>
	<div class="members-list--representation">Nairobi West</div>
</a>
<a class="members-list--item"><div class="members-list--name">No href</div></a>
<a class="senators-list--item" href="/mps-performance/senate/13th-parliament/john-roe/">
	<div class="senators-list--name">Sen. John Roe</div>
</a>
</body></html>`

func TestParseListings(t *testing.T) {
	recorder := telemetry.NewRecorder()
	listings, err := ParseListings(listingsPage(1), nil, recorder)
	require.NoError(t, err)

	expected := []hansard.Listing{
		{
			House:       hansard.NationalAssembly,
			Date:        hansard.Date{Year: 2025, Month: time.February, Day: 11},
			SessionType: "Afternoon Sitting",
			Url:         "/democracy-tools/hansard/tuesday-11th-february-2025-afternoon-sitting-1/",
			DisplayText: "Tuesday, 11th February, 2025 - Afternoon Sitting",
		},
		{
			House:       hansard.Senate,
			Date:        hansard.Date{Year: 2025, Month: time.February, Day: 12},
			SessionType: "Morning Sitting",
			Url:         "/democracy-tools/hansard/wednesday-12th-february-2025-morning-sitting-1/",
			DisplayText: "Wednesday, 12th February, 2025 - Morning Sitting",
		},
	}
	diff := cmp.Diff(expected, listings)
	if diff != "" {
		t.Fatal("unexpected listings:", diff)
	}
	require.True(t, recorder.Has("warning", report_parse_listings))
}

func TestParseListingsExtraBlocks(t *testing.T) {
	body := `<html><body>
<div class="split-docs"><div class="hansard-document"><h3><a href="/a/">Tuesday, 11th February, 2025 - Afternoon Sitting</a></h3></div></div>
<div class="split-docs"><div class="hansard-document"><h3><a href="/b/">Wednesday, 12th February, 2025 - Morning Sitting</a></h3></div></div>
<div class="split-docs"><div class="hansard-document"><h3><a href="/c/">Thursday, 13th February, 2025 - Afternoon Sitting</a></h3></div></div>
</body></html>`

	recorder := telemetry.NewRecorder()
	listings, err := ParseListings(body, nil, recorder)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	houses := []hansard.House{listings[0].House, listings[1].House, listings[2].House}
	require.Equal(t, []hansard.House{hansard.NationalAssembly, hansard.Senate, hansard.Senate}, houses)
	require.Empty(t, recorder.Reports("warning"))
}

func TestListingsHouseFilter(t *testing.T) {
	all, err := ParseListings(listingsPage(1), nil, telemetry.NewRecorder())
	require.NoError(t, err)

	var combined []hansard.Listing
	for _, house := range []hansard.House{hansard.NationalAssembly, hansard.Senate} {
		filtered, err := ParseListings(listingsPage(1), &house, telemetry.NewRecorder())
		require.NoError(t, err)
		require.NotEmpty(t, filtered)
		for _, l := range filtered {
			require.Equal(t, house, l.House)
		}
		combined = append(combined, filtered...)
	}
	require.ElementsMatch(t, all, combined)
}

func TestParsePageInfo(t *testing.T) {
	info, ok := ParseListPageInfo(listingsPage(2))
	require.True(t, ok)
	require.Equal(t, PageInfo{Current: 2, Total: 3}, info)

	_, ok = ParseListPageInfo(membersPage)
	require.False(t, ok)

	info, ok = ParseBillsPageInfo(profilePage)
	require.True(t, ok)
	require.Equal(t, PageInfo{Current: 1, Total: 3}, info)

	_, ok = ParseActivityPageInfo(profilePage)
	require.False(t, ok)
}

func TestPageCount(t *testing.T) {
	testCases := []struct {
		name     string
		info     PageInfo
		ok       bool
		items    int
		expected int
	}{
		{name: "widget", info: PageInfo{Current: 1, Total: 4}, ok: true, items: 10, expected: 4},
		{name: "no widget with items", items: 3, expected: 1},
		{name: "no widget without items", expected: 0},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, pageCount(test.info, test.ok, test.items))
		})
	}
}

func TestParseSittingOldLayout(t *testing.T) {
	link := "https://mzalendo.com/democracy-tools/hansard/thursday-12th-february-2026-afternoon-sitting-2438/"
	sitting, err := ParseSitting(oldSittingPage, link, hansard.DefaultBuilderOptions())
	require.NoError(t, err)

	require.Equal(t, hansard.NationalAssembly, sitting.House)
	require.Equal(t, hansard.Date{Year: 2026, Month: time.February, Day: 12}, sitting.Date)
	require.Equal(t, "thursday", sitting.DayOfWeek)
	require.Equal(t, "Afternoon Sitting", sitting.SessionType)
	require.Nil(t, sitting.StartTime)
	require.Empty(t, sitting.PdfUrl)

	expected := []hansard.Section{
		{Contributions: []hansard.Contribution{{Content: "The House met at 2.30 p.m."}}},
		{Type: "PRAYERS"},
		{
			Type: "QUESTIONS",
			Subsections: []hansard.Subsection{{
				Title: "Question No. 12",
				Contributions: []hansard.Contribution{
					{
						SpeakerName:     "Hon. Jane Doe",
						SpeakerUrl:      "/mps-performance/national-assembly/13th-parliament/jane-doe/",
						Content:         "Thank you.\n\nI ask. First Second",
						ProceduralNotes: []string{"(Applause)", "(Loud consultations)"},
					},
					{SpeakerName: "The Speaker"},
				},
			}},
		},
	}
	diff := cmp.Diff(expected, sitting.Sections, cmpopts.EquateEmpty())
	if diff != "" {
		t.Fatal("unexpected sections:", diff)
	}
}

func TestParseSittingSplitListFragments(t *testing.T) {
	options := hansard.DefaultBuilderOptions()
	options.MergeListFragments = false

	link := "https://mzalendo.com/democracy-tools/hansard/thursday-12th-february-2026-afternoon-sitting-2438/"
	sitting, err := ParseSitting(oldSittingPage, link, options)
	require.NoError(t, err)

	contributions := sitting.Sections[2].Subsections[0].Contributions
	require.Len(t, contributions, 3)
	require.Equal(t, "Thank you.\n\nI ask.", contributions[0].Content)
	require.Equal(t, hansard.Contribution{Content: "First Second"}, contributions[1])
}

func TestParseSittingNewLayout(t *testing.T) {
	link := "https://mzalendo.com/democracy-tools/hansard/some-slug/"
	sitting, err := ParseSitting(newSittingPage, link, hansard.DefaultBuilderOptions())
	require.NoError(t, err)

	require.Equal(t, hansard.Senate, sitting.House)
	require.Equal(t, hansard.Date{Year: 2025, Month: time.February, Day: 11}, sitting.Date)
	require.Equal(t, "Tuesday", sitting.DayOfWeek)
	require.Equal(t, "Afternoon Sitting", sitting.SessionType)
	require.Equal(t, &hansard.Clock{Hour: 14, Minute: 30}, sitting.StartTime)
	require.Equal(t, "The Senate debated roads.", sitting.Summary)
	require.Equal(t, "Mostly positive.", sitting.Sentiment)
	require.Equal(t, "https://mzalendo.com/media/hansard.pdf", sitting.PdfUrl)

	expected := []hansard.Section{{
		Type: "MOTIONS",
		Contributions: []hansard.Contribution{
			{
				SpeakerName: "Sen. John Roe",
				SpeakerUrl:  "/mps-performance/senate/13th-parliament/john-roe/",
				Content:     "I beg to move.",
			},
			{
				SpeakerName: "Sen. John Roe",
				SpeakerUrl:  "/mps-performance/senate/13th-parliament/john-roe/",
				Content:     "Seconded.",
			},
		},
	}}
	diff := cmp.Diff(expected, sitting.Sections, cmpopts.EquateEmpty())
	if diff != "" {
		t.Fatal("unexpected sections:", diff)
	}
}

func TestParseSittingWithoutTranscript(t *testing.T) {
	sitting, err := ParseSitting(
		`<html><body><span class="house">National Assembly</span></body></html>`,
		"https://mzalendo.com/democracy-tools/hansard/thursday-12th-february-2026-afternoon-sitting-2438/",
		hansard.DefaultBuilderOptions(),
	)
	require.NoError(t, err)
	require.Equal(t, hansard.NationalAssembly, sitting.House)
	require.Empty(t, sitting.Sections)

	_, err = ParseSitting(`<html></html>`, "https://mzalendo.com/democracy-tools/hansard/", hansard.DefaultBuilderOptions())
	require.ErrorIs(t, err, hansard.ErrInvalidValue)
}

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile(profilePage, profileLink)
	require.NoError(t, err)

	expected := hansard.Profile{
		Name:             "Hon. Jane Doe",
		Slug:             "jane-doe",
		Url:              profileLink,
		PhotoUrl:         "/media/jane.jpg",
		Biography:        "Jane is an MP.",
		PositionType:     "Member of National Assembly",
		Positions:        []string{"Member, Budget Committee", "Chairperson, Roads", "Whip"},
		Party:            "Orange Democratic Movement",
		Committees:       []string{"Budget", "Roads"},
		SpeechesLastYear: 12,
		SpeechesTotal:    340,
		BillsTotal:       3,
		Bills: []hansard.Bill{
			{Name: "The Roads Bill", Year: "2024", Status: "First Reading"},
		},
		BillsPages: 3,
		VoteRecords: []hansard.VoteRecord{
			{Date: "12 Mar 2024", Title: "Finance Bill", Url: "/votes/finance-bill/", Decision: "Yes"},
		},
		Activity: []hansard.Activity{{
			Date:             "12 Mar 2024",
			Topic:            "Finance",
			ContributionType: "Debate",
			SectionTitle:     "FINANCE BILL",
			SittingUrl:       "/democracy-tools/hansard/tuesday-12th-march-2024-afternoon-sitting-12/",
			TextPreview:      "I support.",
			Url:              "/democracy-tools/hansard/tuesday-12th-march-2024-afternoon-sitting-12/#speech-4",
		}},
		ActivityPages: 1,
	}
	diff := cmp.Diff(expected, profile, cmpopts.EquateEmpty())
	if diff != "" {
		t.Fatal("unexpected profile:", diff)
	}
}

func TestParseProfileSubpages(t *testing.T) {
	bills, err := ParseBills(billsPage(2, "The Housing Bill"))
	require.NoError(t, err)
	require.Equal(t, []hansard.Bill{{Name: "The Housing Bill"}}, bills)

	activity, err := ParseActivity(profilePage)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	require.Equal(t, "Finance", activity[0].Topic)
}

func TestParseProfileRequiredFields(t *testing.T) {
	_, err := ParseProfile(`<html><body></body></html>`, profileLink)
	require.ErrorIs(t, err, hansard.ErrMissingElement)

	_, err = ParseProfile(profilePage, "")
	require.ErrorIs(t, err, hansard.ErrInvalidValue)

	profile, err := ParseProfile(`<html><body><h1 class="page-heading">Someone</h1></body></html>`, profileLink)
	require.NoError(t, err)
	require.Equal(t, 0, profile.BillsPages)
	require.Equal(t, 0, profile.ActivityPages)
}

func TestParseMembers(t *testing.T) {
	members, err := ParseMembers(membersPage, hansard.NationalAssembly)
	require.NoError(t, err)

	expected := []hansard.Member{
		{
			Name:         "Hon. Jane Doe",
			Url:          "/mps-performance/national-assembly/13th-parliament/jane-doe/",
			House:        hansard.NationalAssembly,
			Role:         "Majority Whip",
			Constituency: "Nairobi West",
		},
		{
			Name:  "Sen. John Roe",
			Url:   "/mps-performance/senate/13th-parliament/john-roe/",
			House: hansard.NationalAssembly,
		},
	}
	diff := cmp.Diff(expected, members)
	if diff != "" {
		t.Fatal("unexpected members:", diff)
	}
}

func TestRankMembers(t *testing.T) {
	members, err := ParseMembers(membersPage, hansard.NationalAssembly)
	require.NoError(t, err)

	ranked := RankMembers(members, "jane  DOE", 0)
	require.Len(t, ranked, 2)
	require.Equal(t, "Hon. Jane Doe", ranked[0].Name)
	require.Equal(t, 1.0, ranked[0].Score)
	require.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)

	ranked = RankMembers(members, "Jane Doe", 1)
	require.Len(t, ranked, 1)
}
