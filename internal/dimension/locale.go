package dimension

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Locale holds display names for weekdays, months and seasons.
// Locales are read-only and shared by every builder.
type Locale struct {
	tag      language.Tag
	weekdays [7]string // Monday first
	months   [12]string
	seasons  [4]string
}

var (
	// PortugueseBR is the default locale; names are plain ASCII lowercase
	PortugueseBR = &Locale{
		tag: language.BrazilianPortuguese,
		weekdays: [7]string{
			"segunda-feira", "terca-feira", "quarta-feira", "quinta-feira",
			"sexta-feira", "sabado", "domingo",
		},
		months: [12]string{
			"janeiro", "fevereiro", "marco", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		seasons: [4]string{"verao", "outono", "inverno", "primavera"},
	}

	// English uses lowercase English names
	English = &Locale{
		tag: language.English,
		weekdays: [7]string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		},
		months: [12]string{
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
		seasons: [4]string{"summer", "autumn", "winter", "spring"},
	}

	locales       = []*Locale{PortugueseBR, English}
	localeMatcher = language.NewMatcher([]language.Tag{PortugueseBR.tag, English.tag})
)

// LookupLocale returns the supported locale closest to the BCP 47 tag name
func LookupLocale(name string) (*Locale, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", name, err)
	}
	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return nil, fmt.Errorf("unsupported locale %q", name)
	}
	return locales[idx], nil
}

// Tag returns the locale's language tag
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// WeekdayName returns the name for a Monday-based weekday index (0-6)
func (l *Locale) WeekdayName(index int) string {
	return l.weekdays[index]
}

// MonthName returns the name of month
func (l *Locale) MonthName(month time.Month) string {
	return l.months[month-1]
}

// SeasonName returns the localized season label
func (l *Locale) SeasonName(s Season) string {
	return l.seasons[s]
}
