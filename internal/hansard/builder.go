package hansard

import (
	"regexp"
	"strings"
)

type ElementKind int

const (
	MajorHeading ElementKind = iota
	MinorHeading
	SpeakerMarker
	SpeechBody
	Scene
	Paragraph
	ListFragment
)

func (k ElementKind) String() string {
	switch k {
	case MajorHeading:
		return "major_heading"
	case MinorHeading:
		return "minor_heading"
	case SpeakerMarker:
		return "speaker_marker"
	case SpeechBody:
		return "speech_body"
	case Scene:
		return "scene"
	case Paragraph:
		return "paragraph"
	case ListFragment:
		return "list_fragment"
	}
	return "unknown"
}

// Element is a single classified node of a transcript, which fields are used
// depends on Kind.
type Element struct {
	Kind ElementKind
	// heading, scene, paragraph and list fragment text
	Text string

	// SpeakerMarker
	Name string
	Role string
	Url  string

	// SpeechBody
	Paragraphs []string
	Notes      []string
}

const paragraphSeparator = "\n\n"

var (
	parliamentBannerRegex = regexp.MustCompile(`\bPARLIAMENT\b`)
	houseBannerRegex      = regexp.MustCompile(`^(THE\s+)?(SENATE|NATIONAL ASSEMBLY)$`)
)

// IsBanner returns true for headings that are the title of the whole document
// (ex. "THE PARLIAMENT OF KENYA", "THE SENATE") and not an agenda item. Agenda
// items that merely mention a house (ex. "MESSAGE FROM THE SENATE") are not banners.
func IsBanner(heading string) bool {
	upper := strings.ToUpper(strings.Join(strings.Fields(heading), " "))
	return parliamentBannerRegex.MatchString(upper) || houseBannerRegex.MatchString(upper)
}

type BuilderOptions struct {
	// ListFragmentSeparator joins a list fragment onto the content it continues,
	// defaults to a single space.
	ListFragmentSeparator string
	// MergeListFragments appends list fragments to the preceding contribution
	// when true, otherwise each fragment becomes its own speaker-less contribution.
	MergeListFragments bool
}

func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		ListFragmentSeparator: " ",
		MergeListFragments:    true,
	}
}

type pendingSpeaker struct {
	name string
	role string
	url  string
}

// Builder assembles the section tree of a sitting out of a stream of elements.
// A speaker marker stays pending until a speech body consumes it, anything that
// opens a new structure or another marker flushes it as an empty contribution.
// The zero value is not usable, create one with NewBuilder.
type Builder struct {
	options BuilderOptions

	sections   []Section
	section    *Section
	subsection *Subsection
	pending    *pendingSpeaker
}

func NewBuilder(options BuilderOptions) *Builder {
	if options.ListFragmentSeparator == "" {
		options.ListFragmentSeparator = " "
	}
	return &Builder{options: options}
}

// Build feeds every element to a new builder and returns the finished sections.
func Build(options BuilderOptions, elements []Element) []Section {
	b := NewBuilder(options)
	for _, e := range elements {
		b.Feed(e)
	}
	return b.Finish()
}

func (b *Builder) Feed(e Element) {
	switch e.Kind {
	case MajorHeading:
		// every major heading ends the open section, content after a banner or
		// an empty heading opens an implicit one
		b.flushPending()
		b.closeSection()
		text := strings.TrimSpace(e.Text)
		if text == "" || IsBanner(text) {
			return
		}
		b.section = &Section{Type: text}
	case MinorHeading:
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return
		}
		b.flushPending()
		b.closeSubsection()
		b.ensureSection()
		b.subsection = &Subsection{Title: text}
	case SpeakerMarker:
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return
		}
		b.flushPending()
		name, role := ResolveSpeaker(name, e.Role)
		b.pending = &pendingSpeaker{
			name: name,
			role: role,
			url:  strings.TrimSpace(e.Url),
		}
	case SpeechBody:
		b.speech(e)
	case Scene:
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return
		}
		last := b.lastContribution()
		if last != nil {
			last.ProceduralNotes = append(last.ProceduralNotes, text)
		}
	case Paragraph:
		b.appendText(e.Text, paragraphSeparator)
	case ListFragment:
		if b.options.MergeListFragments {
			b.appendText(e.Text, b.options.ListFragmentSeparator)
			return
		}
		text := strings.TrimSpace(e.Text)
		if text != "" {
			b.push(Contribution{Content: text})
		}
	}
}

// Finish flushes everything still open and returns the sections in source order.
func (b *Builder) Finish() []Section {
	b.flushPending()
	b.closeSection()
	sections := b.sections
	b.sections = nil
	return sections
}

func (b *Builder) speech(e Element) {
	var paragraphs []string
	for _, p := range e.Paragraphs {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	var notes []string
	for _, n := range e.Notes {
		n = strings.TrimSpace(n)
		if n != "" {
			notes = append(notes, n)
		}
	}

	if b.pending == nil {
		// a body without a speaker continues the last contribution
		for _, p := range paragraphs {
			b.appendText(p, paragraphSeparator)
		}
		last := b.lastContribution()
		if last != nil {
			last.ProceduralNotes = append(last.ProceduralNotes, notes...)
		}
		return
	}

	pending := b.pending
	b.pending = nil
	b.push(Contribution{
		SpeakerName:     pending.name,
		Role:            pending.role,
		SpeakerUrl:      pending.url,
		Content:         strings.Join(paragraphs, paragraphSeparator),
		ProceduralNotes: notes,
	})
}

func (b *Builder) appendText(text, separator string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	last := b.lastContribution()
	if last == nil {
		b.push(Contribution{Content: text})
		return
	}
	if last.Content == "" {
		last.Content = text
		return
	}
	last.Content += separator + text
}

func (b *Builder) flushPending() {
	if b.pending == nil {
		return
	}
	pending := b.pending
	b.pending = nil
	b.push(Contribution{
		SpeakerName: pending.name,
		Role:        pending.role,
		SpeakerUrl:  pending.url,
	})
}

// push adds a contribution to the innermost open structure.
func (b *Builder) push(c Contribution) {
	if b.subsection != nil {
		b.subsection.Contributions = append(b.subsection.Contributions, c)
		return
	}
	b.ensureSection()
	b.section.Contributions = append(b.section.Contributions, c)
}

// lastContribution returns the last contribution of the innermost open structure.
func (b *Builder) lastContribution() *Contribution {
	if b.subsection != nil {
		if n := len(b.subsection.Contributions); n > 0 {
			return &b.subsection.Contributions[n-1]
		}
		return nil
	}
	if b.section != nil {
		if n := len(b.section.Contributions); n > 0 {
			return &b.section.Contributions[n-1]
		}
	}
	return nil
}

func (b *Builder) ensureSection() {
	if b.section == nil {
		b.section = &Section{}
	}
}

func (b *Builder) closeSubsection() {
	if b.subsection == nil {
		return
	}
	b.ensureSection()
	b.section.Subsections = append(b.section.Subsections, *b.subsection)
	b.subsection = nil
}

func (b *Builder) closeSection() {
	b.closeSubsection()
	if b.section == nil {
		return
	}
	b.sections = append(b.sections, *b.section)
	b.section = nil
}
