// Package datefmt renders due dates relative to the current day and names
// the academic semester, in Spanish or English.
package datefmt

import (
	"fmt"
	"math"
	"time"

	"tasku/internal/config"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type vocabulary struct {
	today, tomorrow, yesterday string
	weekdays                   [7]string // indexed by time.Weekday
	timeLayout, dateLayout     string
	firstSemester              string
	secondSemester             string
	summer                     string
}

// Spanish comes first so unmatched languages fall back to it.
var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

var vocabularies = []vocabulary{
	{
		today:          "Hoy",
		tomorrow:       "Mañana",
		yesterday:      "Ayer",
		weekdays:       [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		timeLayout:     "15:04",
		dateLayout:     "02/01/2006",
		firstSemester:  "Primer Semestre",
		secondSemester: "Segundo Semestre",
		summer:         "Verano",
	},
	{
		today:          "Today",
		tomorrow:       "Tomorrow",
		yesterday:      "Yesterday",
		weekdays:       [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
		timeLayout:     "03:04 PM",
		dateLayout:     "01/02/2006",
		firstSemester:  "First Semester",
		secondSemester: "Second Semester",
		summer:         "Summer",
	},
}

// Presenter formats instants for one language and timezone. It holds no
// clock; every method takes the instants it needs.
type Presenter struct {
	tag   language.Tag
	loc   *time.Location
	words vocabulary
}

// New creates a Presenter for the language tag lang (for example "es-CL" or
// "en") and the location loc. Unknown or malformed tags fall back to Spanish;
// a nil loc means UTC.
func New(lang string, loc *time.Location) *Presenter {
	if loc == nil {
		loc = time.UTC
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	_, index, _ := matcher.Match(tag)
	return &Presenter{
		tag:   supported[index],
		loc:   loc,
		words: vocabularies[index],
	}
}

// NewWithConfig creates a Presenter for the configured language and timezone.
func NewWithConfig(cfg *config.Config) (*Presenter, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Locale.Timezone, err)
	}
	return New(cfg.Locale.Language, loc), nil
}

// Language returns the matched base language.
func (p *Presenter) Language() language.Tag {
	return p.tag
}

// Location returns the timezone used for calendar fields.
func (p *Presenter) Location() *time.Location {
	return p.loc
}

// DiffDays returns ceil((date-now)/24h). The result counts elapsed 24-hour
// spans, not calendar days: a date two hours ahead is 1.
func DiffDays(date, now time.Time) int {
	days := math.Ceil(float64(date.Sub(now)) / float64(24*time.Hour))
	return int(days)
}

// FormatRelative renders date relative to now:
//
//	0       Today, 10:00
//	1       Tomorrow, 10:00
//	-1      Yesterday, 10:00
//	2..7    Wednesday, 10:00
//	other   03/01/2024, 10:00
func (p *Presenter) FormatRelative(date, now time.Time) string {
	clock := p.FormatTime(date)

	switch diff := DiffDays(date, now); {
	case diff == 0:
		return p.words.today + ", " + clock
	case diff == 1:
		return p.words.tomorrow + ", " + clock
	case diff == -1:
		return p.words.yesterday + ", " + clock
	case diff > 1 && diff <= 7:
		return p.Weekday(date) + ", " + clock
	default:
		return p.FormatDate(date) + ", " + clock
	}
}

// FormatTime renders the time of day of t.
func (p *Presenter) FormatTime(t time.Time) string {
	return t.In(p.loc).Format(p.words.timeLayout)
}

// FormatDate renders the calendar date of t.
func (p *Presenter) FormatDate(t time.Time) string {
	return t.In(p.loc).Format(p.words.dateLayout)
}

// FormatDateTime renders the calendar date and time of day of t.
func (p *Presenter) FormatDateTime(t time.Time) string {
	return p.FormatDate(t) + ", " + p.FormatTime(t)
}

// Weekday returns the capitalized weekday name of t.
func (p *Presenter) Weekday(t time.Time) string {
	name := p.words.weekdays[t.In(p.loc).Weekday()]
	return cases.Title(p.tag).String(name)
}

// Semester names the academic period containing now: March to July is the
// first semester, August to December the second, January and February summer.
func (p *Presenter) Semester(now time.Time) string {
	local := now.In(p.loc)
	year := local.Year()

	switch month := local.Month(); {
	case month >= time.March && month <= time.July:
		return fmt.Sprintf("%s %d", p.words.firstSemester, year)
	case month >= time.August:
		return fmt.Sprintf("%s %d", p.words.secondSemester, year)
	default:
		return fmt.Sprintf("%s %d", p.words.summer, year)
	}
}
