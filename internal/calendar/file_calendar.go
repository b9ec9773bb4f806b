package calendar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/username/calendar-dimension/pkg/dateutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileCalendar implements Provider using a local YAML or iCalendar file.
//
// YAML layout:
//
//	holidays:
//	  BR:
//	    - date: 2025-01-01
//	      name: Confraternização Universal
//	  RJ:
//	    - date: 2025-04-23
//	      name: Dia de São Jorge
//
// In an .ics file every VEVENT is a holiday on its DTSTART date, named by
// SUMMARY. CATEGORIES holds the region code; events without it are national.
type FileCalendar struct {
	filePath string
	policy   CollisionPolicy
	logger   *zap.Logger
	data     map[Region][]Holiday
	years    map[int]bool // years with at least one national entry
}

type yamlFile struct {
	Holidays map[string][]yamlHoliday `yaml:"holidays"`
}

type yamlHoliday struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, policy CollisionPolicy, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		policy:   policy,
		logger:   logger,
		data:     make(map[Region][]Holiday),
		years:    make(map[int]bool),
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(fc.filePath)); ext {
	case ".yaml", ".yml":
		err = fc.loadYAML(file)
	case ".ics", ".ical":
		err = fc.loadICS(file)
	default:
		err = fmt.Errorf("unsupported holiday file extension %q", ext)
	}
	if err != nil {
		return err
	}

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("regions", len(fc.data)),
		zap.Int("years", len(fc.years)))

	return nil
}

func (fc *FileCalendar) loadYAML(r io.Reader) error {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse holiday YAML: %w", err)
	}

	for code, entries := range doc.Holidays {
		region, err := ParseRegion(code)
		if err != nil {
			fc.logger.Warn("Skipping unknown region", zap.String("region", code))
			continue
		}
		for _, entry := range entries {
			date, err := dateutil.ParseDate(entry.Date)
			if err != nil {
				fc.logger.Warn("Failed to parse date",
					zap.String("date", entry.Date),
					zap.Error(err))
				continue
			}
			fc.add(region, Holiday{Date: date, Name: strings.TrimSpace(entry.Name)})
		}
	}
	return nil
}

func (fc *FileCalendar) loadICS(r io.Reader) error {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return fmt.Errorf("failed to parse iCalendar: %w", err)
	}

	for _, event := range cal.Events() {
		start, err := event.DateTimeStart(time.UTC)
		if err != nil {
			fc.logger.Warn("Skipping event without start date", zap.Error(err))
			continue
		}
		name, _ := event.Props.Text(ical.PropSummary)

		region := RegionNational
		if prop := event.Props.Get(ical.PropCategories); prop != nil {
			parsed, err := ParseRegion(prop.Value)
			if err != nil {
				fc.logger.Warn("Skipping event with unknown region",
					zap.String("region", prop.Value),
					zap.String("name", name))
				continue
			}
			region = parsed
		}
		fc.add(region, Holiday{Date: dateutil.NewDate(start), Name: strings.TrimSpace(name)})
	}
	return nil
}

func (fc *FileCalendar) add(region Region, h Holiday) {
	fc.data[region] = append(fc.data[region], h)
	if region.IsNational() {
		fc.years[h.Date.Year] = true
	}
}

// Holidays returns the file's national entries for year plus, for a state,
// the state's own entries. A year with no national entries is treated as
// not covered by the file.
func (fc *FileCalendar) Holidays(region Region, year int) (*HolidaySet, error) {
	if region.Index() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if !fc.years[year] {
		return nil, &UnavailableError{
			Region: region,
			Year:   year,
			Reason: fmt.Sprintf("year not covered by %s", fc.filePath),
		}
	}

	holidays := append([]Holiday(nil), fc.data[RegionNational]...)
	if !region.IsNational() {
		holidays = append(holidays, fc.data[region]...)
	}
	return NewHolidaySet(region, year, fc.policy, holidays...), nil
}
