package hansard

import (
	"encoding/json"
	"fmt"
	"hansard-scraper/lib/textutil"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Date is a calendar date without a time or a location, sittings are dated by the
// day they happened in Nairobi, not by an instant.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate fails if the given day does not exist (ex. 31st of February).
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, Invalid("date %04d-%02d-%02d", year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, Invalid("date format '%s', expected YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf is the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

func NewClock(hour, minute, second int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Clock{}, Invalid("time %02d:%02d:%02d", hour, minute, second)
	}
	return Clock{Hour: hour, Minute: minute, Second: second}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		return Invalid("time '%s'", s)
	}
	*c = Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
	return nil
}

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseMonth only accepts full english month names, case insensitive.
func ParseMonth(name string) (time.Month, error) {
	month, ok := months[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, Invalid("unknown month '%s'", name)
	}
	return month, nil
}

// ParseClock12h parses times like "2:30 PM".
func ParseClock12h(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	pos := strings.LastIndex(s, " ")
	if pos < 0 {
		return Clock{}, Invalid("time '%s'", s)
	}
	hm, ampm := s[:pos], strings.ToUpper(strings.TrimSpace(s[pos+1:]))

	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return Clock{}, Invalid("time format '%s'", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Clock{}, Invalid("hour '%s'", parts[0])
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Clock{}, Invalid("minute '%s'", parts[1])
	}

	switch ampm {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return Clock{}, Invalid("AM/PM marker '%s'", ampm)
	}
	return NewClock(hour, minute, 0)
}

// TitleDate is what can be recovered from a sitting title or slug.
type TitleDate struct {
	Date        Date
	DayOfWeek   string
	SessionType string
}

var titleDateRegex = regexp.MustCompile(`(?i)(\w+),\s+(\d+)\w*\s+(\w+),?\s+(\d{4})\s*[-–]\s*(.+)`)

// ParseTitleDate parses titles like "Thursday, 12th February, 2026 - Afternoon Sitting".
func ParseTitleDate(title string) (TitleDate, error) {
	groups := titleDateRegex.FindStringSubmatch(title)
	if groups == nil {
		return TitleDate{}, Invalid("could not match date pattern in '%s'", title)
	}

	day, err := strconv.Atoi(groups[2])
	if err != nil {
		return TitleDate{}, Invalid("day '%s'", groups[2])
	}
	month, err := ParseMonth(groups[3])
	if err != nil {
		return TitleDate{}, err
	}
	year, err := strconv.Atoi(groups[4])
	if err != nil {
		return TitleDate{}, Invalid("year '%s'", groups[4])
	}
	date, err := NewDate(year, month, day)
	if err != nil {
		return TitleDate{}, err
	}

	return TitleDate{
		Date:        date,
		DayOfWeek:   groups[1],
		SessionType: textutil.NormalizeWhitespace(groups[5]),
	}, nil
}

// LastPathSegment returns the final non-empty path segment of a url.
func LastPathSegment(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = strings.TrimRight(link[:i], "/")
	}
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// ParseSlugDate parses the last path segment of urls like
// ".../thursday-12th-february-2026-afternoon-sitting-2438/".
func ParseSlugDate(link string) (TitleDate, error) {
	slug := LastPathSegment(link)
	if slug == "" {
		return TitleDate{}, Invalid("url '%s' has no slug", link)
	}

	parts := strings.Split(slug, "-")
	if len(parts) < 5 {
		return TitleDate{}, Invalid("slug '%s' has too few parts", slug)
	}

	day, err := strconv.Atoi(strings.TrimRightFunc(parts[1], unicode.IsLetter))
	if err != nil {
		return TitleDate{}, Invalid("day '%s'", parts[1])
	}
	month, err := ParseMonth(parts[2])
	if err != nil {
		return TitleDate{}, err
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return TitleDate{}, Invalid("year '%s'", parts[3])
	}
	date, err := NewDate(year, month, day)
	if err != nil {
		return TitleDate{}, err
	}

	var words []string
	for _, p := range parts[4:] {
		if allDigits(p) {
			break
		}
		words = append(words, capitalize(p))
	}

	return TitleDate{
		Date:        date,
		DayOfWeek:   parts[0],
		SessionType: strings.Join(words, " "),
	}, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + word[size:]
}
