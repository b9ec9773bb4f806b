package calendar

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/mo"
	"github.com/username/calendar-dimension/pkg/dateutil"
)

// Region identifies a holiday jurisdiction: the whole country or one state
type Region string

const (
	RegionNational Region = "BR"
	RegionRJ       Region = "RJ"
	RegionSP       Region = "SP"
	RegionES       Region = "ES"
	RegionMG       Region = "MG"
	RegionPR       Region = "PR"
	RegionSC       Region = "SC"
	RegionRS       Region = "RS"
)

// NumRegions is the number of supported regions
const NumRegions = 8

var regions = [NumRegions]Region{
	RegionNational, RegionRJ, RegionSP, RegionES, RegionMG, RegionPR, RegionSC, RegionRS,
}

// Regions returns all supported regions, national first
func Regions() []Region {
	return regions[:]
}

// Index returns the position of r in Regions(), or -1 if r is unknown
func (r Region) Index() int {
	return slices.Index(regions[:], r)
}

// IsNational reports whether r is the country-wide region
func (r Region) IsNational() bool {
	return r == RegionNational
}

// ParseRegion accepts region codes case-insensitively; "national" is an alias for BR
func ParseRegion(s string) (Region, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "NATIONAL" {
		return RegionNational, nil
	}
	r := Region(code)
	if r.Index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
	}
	return r, nil
}

var (
	// ErrUnknownRegion is returned for region codes outside Regions()
	ErrUnknownRegion = errors.New("unknown region")

	// ErrHolidayDataUnavailable is wrapped by every provider failure to
	// resolve a region/year pair
	ErrHolidayDataUnavailable = errors.New("holiday data unavailable")
)

// UnavailableError reports that a provider has no data for a region and year
type UnavailableError struct {
	Region Region
	Year   int
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("holiday data unavailable for region %s, year %d", e.Region, e.Year)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrHolidayDataUnavailable
}

// Provider supplies holiday reference data
type Provider interface {
	// Holidays returns the holidays observed in region during year. For a
	// state this includes the national holidays observed there.
	Holidays(region Region, year int) (*HolidaySet, error)
}

// CollisionPolicy decides the name kept when two holidays fall on the same date
type CollisionPolicy int

const (
	// CollisionJoin keeps every distinct name, joined with "; " in insertion order
	CollisionJoin CollisionPolicy = iota
	// CollisionFirst keeps the first name added
	CollisionFirst
	// CollisionLast keeps the last name added
	CollisionLast
)

// NameSeparator joins colliding names under CollisionJoin
const NameSeparator = "; "

// ParseCollisionPolicy parses "join", "first" or "last"
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "join":
		return CollisionJoin, nil
	case "first":
		return CollisionFirst, nil
	case "last":
		return CollisionLast, nil
	default:
		return CollisionJoin, fmt.Errorf("unknown collision policy %q, want join, first or last", s)
	}
}

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionFirst:
		return "first"
	case CollisionLast:
		return "last"
	default:
		return "join"
	}
}

// Holiday is a single dated holiday
type Holiday struct {
	Date dateutil.Date
	Name string
}

// HolidaySet maps dates to holiday names for one region and year.
// It is immutable once built and safe for concurrent reads.
type HolidaySet struct {
	region Region
	year   int
	names  map[dateutil.Date]string
	dates  []dateutil.Date
}

// NewHolidaySet builds a set from holidays, applying policy to same-date
// entries. Entries outside year are ignored.
func NewHolidaySet(region Region, year int, policy CollisionPolicy, holidays ...Holiday) *HolidaySet {
	hs := &HolidaySet{
		region: region,
		year:   year,
		names:  make(map[dateutil.Date]string, len(holidays)),
	}
	for _, h := range holidays {
		if h.Date.Year != year {
			continue
		}
		existing, ok := hs.names[h.Date]
		if !ok {
			hs.names[h.Date] = h.Name
			hs.dates = append(hs.dates, h.Date)
			continue
		}
		hs.names[h.Date] = policy.merge(existing, h.Name)
	}
	slices.SortFunc(hs.dates, func(a, b dateutil.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return hs
}

func (p CollisionPolicy) merge(existing, name string) string {
	switch p {
	case CollisionFirst:
		return existing
	case CollisionLast:
		return name
	}
	if slices.Contains(strings.Split(existing, NameSeparator), name) {
		return existing
	}
	return existing + NameSeparator + name
}

// Region returns the region the set was built for
func (hs *HolidaySet) Region() Region {
	return hs.region
}

// Year returns the year the set was built for
func (hs *HolidaySet) Year() int {
	return hs.year
}

// Lookup returns the holiday name for date, if any
func (hs *HolidaySet) Lookup(date dateutil.Date) mo.Option[string] {
	if name, ok := hs.names[date]; ok {
		return mo.Some(name)
	}
	return mo.None[string]()
}

// Contains reports whether date is a holiday
func (hs *HolidaySet) Contains(date dateutil.Date) bool {
	_, ok := hs.names[date]
	return ok
}

// Len returns the number of distinct holiday dates
func (hs *HolidaySet) Len() int {
	return len(hs.dates)
}

// Holidays returns the holidays in ascending date order
func (hs *HolidaySet) Holidays() []Holiday {
	out := make([]Holiday, len(hs.dates))
	for i, d := range hs.dates {
		out[i] = Holiday{Date: d, Name: hs.names[d]}
	}
	return out
}
