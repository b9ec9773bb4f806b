package dimension

import (
	"time"

	"github.com/username/calendar-dimension/pkg/dateutil"
)

// Season is a fixed-date southern-hemisphere season
type Season int

const (
	Summer Season = iota
	Autumn
	Winter
	Spring
)

func (s Season) String() string {
	switch s {
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	}
	return "unknown"
}

type monthDay struct {
	month time.Month
	day   int
}

func (md monthDay) onOrAfter(other monthDay) bool {
	if md.month != other.month {
		return md.month > other.month
	}
	return md.day >= other.day
}

// First day of each season. Summer starts in December and runs into the next year.
var (
	autumnStart = monthDay{time.March, 21}
	winterStart = monthDay{time.June, 21}
	springStart = monthDay{time.September, 23}
	summerStart = monthDay{time.December, 21}
)

// ClassifySeason returns the season d falls in. The windows partition the
// year; each boundary date belongs to the season starting on it.
func ClassifySeason(d dateutil.Date) Season {
	md := monthDay{d.Month, d.Day}
	switch {
	case md.onOrAfter(summerStart) || !md.onOrAfter(autumnStart):
		return Summer
	case !md.onOrAfter(winterStart):
		return Autumn
	case !md.onOrAfter(springStart):
		return Winter
	default:
		return Spring
	}
}
