package hansard

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// randomSwitch returns a function that outputs 0..len(weights)-1, each with a
// probability proportional to its weight.
func randomSwitch(weights ...int) func(rndm *rand.Rand) int {
	var sum int
	for _, w := range weights {
		sum += w
	}
	return func(rndm *rand.Rand) int {
		value := rndm.Intn(sum)
		threshold := 0
		for i, w := range weights {
			threshold += w
			if value < threshold {
				return i
			}
		}
		panic(fmt.Sprintf("random value generated was out of bounds: %d", value))
	}
}

func randomWord(rndm *rand.Rand) string {
	words := []string{"", " ", "motion", "THE SENATE", "Hon. Jane Doe", "Speaker", "(Applause)", "Mwala, UDA"}
	return words[rndm.Intn(len(words))]
}

var randomKind = randomSwitch(2, 2, 4, 4, 2, 3, 2)

func randomElements(rndm *rand.Rand, n int) []Element {
	elements := make([]Element, n)
	for i := range elements {
		kind := ElementKind(randomKind(rndm))
		e := Element{Kind: kind, Text: randomWord(rndm)}
		switch kind {
		case SpeakerMarker:
			e.Name = randomWord(rndm)
			e.Role = randomWord(rndm)
		case SpeechBody:
			e.Paragraphs = []string{randomWord(rndm), randomWord(rndm)}
			e.Notes = []string{randomWord(rndm)}
		}
		elements[i] = e
	}
	return elements
}

type elementCounts struct {
	sections    int
	subsections int
	speakers    int
}

func expectedCounts(elements []Element) elementCounts {
	var counts elementCounts
	for _, e := range elements {
		switch e.Kind {
		case MajorHeading:
			text := strings.TrimSpace(e.Text)
			if text != "" && !IsBanner(text) {
				counts.sections++
			}
		case MinorHeading:
			if strings.TrimSpace(e.Text) != "" {
				counts.subsections++
			}
		case SpeakerMarker:
			if strings.TrimSpace(e.Name) != "" {
				counts.speakers++
			}
		}
	}
	return counts
}

func actualCounts(sections []Section) elementCounts {
	var counts elementCounts
	count := func(list []Contribution) {
		for _, c := range list {
			if c.SpeakerName != "" {
				counts.speakers++
			}
		}
	}
	for _, s := range sections {
		if s.Type != "" {
			counts.sections++
		}
		counts.subsections += len(s.Subsections)
		count(s.Contributions)
		for _, sub := range s.Subsections {
			count(sub.Contributions)
		}
	}
	return counts
}

// FuzzBuilder checks that no heading or speaker is lost, whatever order the
// elements come in.
func FuzzBuilder(f *testing.F) {
	for seed := int64(0); seed < 16; seed++ {
		f.Add(seed, 40, true)
	}
	f.Fuzz(func(t *testing.T, seed int64, n int, merge bool) {
		if n < 0 || n > 500 {
			t.Skip()
		}
		rndm := rand.New(rand.NewSource(seed))
		elements := randomElements(rndm, n)

		options := DefaultBuilderOptions()
		options.MergeListFragments = merge
		sections := Build(options, elements)

		expected := expectedCounts(elements)
		actual := actualCounts(sections)
		if expected != actual {
			t.Fatalf("expected %+v, got %+v", expected, actual)
		}
		for _, s := range sections {
			if s.Type == "" && len(s.Contributions) == 0 && len(s.Subsections) == 0 {
				t.Fatal("empty implicit section")
			}
		}
	})
}
