package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/calendar-dimension/internal/calendar"
	"github.com/username/calendar-dimension/internal/config"
	"github.com/username/calendar-dimension/internal/dimension"
	"github.com/username/calendar-dimension/pkg/dateutil"
	"go.uber.org/zap"
)

// overrides are command-line values that take precedence over the config file
type overrides struct {
	year     int
	timezone string
	locale   string
	source   string
}

// register adds the override flags; withYear is false for commands whose
// arguments already select the year
func (o *overrides) register(cmd *cobra.Command, withYear bool) {
	if withYear {
		cmd.Flags().IntVarP(&o.year, "year", "y", 0, "Calendar year (default: calendar.year or current year)")
	}
	cmd.Flags().StringVar(&o.timezone, "timezone", "", "IANA timezone (default: calendar.timezone)")
	cmd.Flags().StringVar(&o.locale, "locale", "", "Locale for names, pt-BR or en (default: calendar.locale)")
	cmd.Flags().StringVar(&o.source, "source", "", "Holiday source: builtin, brasilapi or file (default: holidays.source)")
}

func (o *overrides) apply(cfg *config.Config) error {
	if o.year != 0 {
		cfg.Calendar.Year = o.year
	}
	if o.timezone != "" {
		cfg.Calendar.Timezone = o.timezone
	}
	if o.locale != "" {
		cfg.Calendar.Locale = o.locale
	}
	if o.source != "" {
		cfg.Holidays.Source = o.source
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// buildYear prepares year (0 = configured year) from the loaded config
func buildYear(year int) (*dimension.Year, error) {
	builder, err := newBuilder(cfg, logger)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = cfg.Calendar.GetYear(time.Now())
	}
	y, err := builder.Build(year, cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	return y, nil
}

func buildCmd() *cobra.Command {
	var o overrides
	var showDays bool
	var teeOutput string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the calendar dimension for a year and print a monthly summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			restore, err := mirrorOutput(teeOutput)
			if err != nil {
				return err
			}
			defer restore()
			if teeOutput != "" {
				outPrintf("📝 Output is mirrored to %s\n", teeOutput)
			}

			if err := o.apply(cfg); err != nil {
				return err
			}
			y, err := buildYear(0)
			if err != nil {
				return err
			}

			start := time.Now()
			records, err := y.Records(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("Calendar dimension built",
				zap.Int("year", y.Year()),
				zap.Int("records", len(records)),
				zap.Duration("took", time.Since(start)))

			if showDays {
				printDays(records)
			}
			printSummary(y, records)
			return nil
		},
	}

	o.register(cmd, true)
	cmd.Flags().BoolVar(&showDays, "days", false, "Print one line per day before the summary")
	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror output to file (empty to disable)")

	return cmd
}

func printDays(records []dimension.DayRecord) {
	outPrintln("  Date       | Weekday        | ISO week | Season     | Biz | Holidays")
	outPrintln("-------------+----------------+----------+------------+-----+----------------")
	for _, r := range records {
		outPrintf("  %s | %-14s | %d-W%02d | %-10s | %-3s | %s\n",
			r.Civil,
			r.WeekdayName,
			r.ISOYear,
			r.ISOWeek,
			r.SeasonName,
			yesNo(r.IsBusinessDay),
			holidayLabel(&r))
	}
	outPrintln()
}

func printSummary(y *dimension.Year, records []dimension.DayRecord) {
	monthNames := make(map[time.Month]string, 12)
	for _, r := range records {
		monthNames[time.Month(r.Month)] = r.MonthName
	}

	outPrintf("📊 Calendar %d (%s)\n", y.Year(), y.Location())
	outPrintln("═══════════════════════════════════════════════════════════════════════════")
	header := "  Month       | Days | Biz | Wknd | BR"
	for _, region := range calendar.Regions()[1:] {
		header += fmt.Sprintf(" | %s", region)
	}
	outPrintln(header)
	outPrintln("--------------+------+-----+------+----" + strings.Repeat("+----", len(calendar.Regions())-1))

	var total dimension.MonthSummary
	for _, s := range dimension.Summarize(records) {
		line := fmt.Sprintf("  %-11s | %4d | %3d | %4d | %2d",
			monthNames[s.Month], s.Days, s.BusinessDays, s.Weekends, s.NationalHolidays)
		for i := 1; i < calendar.NumRegions; i++ {
			line += fmt.Sprintf(" | %2d", s.HolidaysByRegion[i])
		}
		outPrintln(line)

		total.Days += s.Days
		total.BusinessDays += s.BusinessDays
		total.Weekends += s.Weekends
		total.NationalHolidays += s.NationalHolidays
		for i := range total.HolidaysByRegion {
			total.HolidaysByRegion[i] += s.HolidaysByRegion[i]
		}
	}

	line := fmt.Sprintf("  %-11s | %4d | %3d | %4d | %2d",
		"total", total.Days, total.BusinessDays, total.Weekends, total.NationalHolidays)
	for i := 1; i < calendar.NumRegions; i++ {
		line += fmt.Sprintf(" | %2d", total.HolidaysByRegion[i])
	}
	outPrintln(line)
}

func dayCmd() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Print every attribute of one day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.apply(cfg); err != nil {
				return err
			}

			var date dateutil.Date
			if len(args) == 1 {
				parsed, err := dateutil.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = parsed
			} else {
				loc, err := time.LoadLocation(cfg.Calendar.Timezone)
				if err != nil {
					return fmt.Errorf("failed to load timezone: %w", err)
				}
				date = dateutil.NewDate(time.Now().In(loc))
			}

			y, err := buildYear(date.Year)
			if err != nil {
				return err
			}
			r, ok := y.Day(date.Month, date.Day)
			if !ok {
				return fmt.Errorf("date %s is not in year %d", date, y.Year())
			}
			printRecord(&r)
			return nil
		},
	}

	o.register(cmd, false)
	return cmd
}

func printRecord(r *dimension.DayRecord) {
	outPrintf("📅 %s (%s, %s)\n", r.Civil, r.WeekdayName, r.TimezoneID)
	outPrintln("═══════════════════════════════════════════════════════")
	outPrintf("  Date:              %s (UTC%+.1f)\n", r.Date.Format(time.RFC3339), r.UTCOffsetHours)
	outPrintf("  Day of year:       %d (%d until year end, leap year: %s)\n", r.DayOfYear, r.DaysUntilYearEnd, yesNo(r.IsLeapYear))
	outPrintf("  Weekday:           %d %s (weekend: %s)\n", r.WeekdayIndex, r.WeekdayName, yesNo(r.IsWeekend))
	outPrintf("  Month:             %d %s (%d days)\n", r.Month, r.MonthName, r.DaysInMonth)
	outPrintf("  Quarter/Semester:  Q%d / S%d\n", r.Quarter, r.Semester)
	outPrintf("  Quadrimester:      %d, fortnight %d\n", r.Quadrimester, r.Fortnight)
	outPrintf("  ISO week:          %d-W%02d\n", r.ISOYear, r.ISOWeek)
	outPrintf("  Week of month:     %d\n", r.WeekOfMonth)
	outPrintf("  Month position:    %d since start, %d until end\n", r.DaysSinceMonthStart, r.DaysUntilMonthEnd)
	outPrintf("  Month range:       %s .. %s\n", r.MonthStartDate.Format("2006-01-02"), r.MonthEndDate.Format("2006-01-02"))
	outPrintf("  Week range:        %s .. %s\n", r.WeekStartDate.Format("2006-01-02"), r.WeekEndDate.Format("2006-01-02"))
	outPrintf("  Boundaries:        %s\n", boundaryLabel(r))
	outPrintf("  Progress:          year %.4f, month %.4f\n", r.YearProgress, r.MonthProgress)
	outPrintf("  Season:            %s\n", r.SeasonName)
	outPrintf("  Business day:      %s\n", yesNo(r.IsBusinessDay))
	outPrintln("  Holidays:")
	for _, region := range calendar.Regions() {
		name := r.HolidayName(region)
		if name == "" {
			name = "-"
		}
		outPrintf("    %-3s %s\n", region, name)
	}
}

func holidaysCmd() *cobra.Command {
	var o overrides
	var regionFlag string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List holidays of a region (or all regions) for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			regions := calendar.Regions()
			if !strings.EqualFold(regionFlag, "all") {
				region, err := calendar.ParseRegion(regionFlag)
				if err != nil {
					return err
				}
				regions = []calendar.Region{region}
			}

			if err := o.apply(cfg); err != nil {
				return err
			}
			y, err := buildYear(0)
			if err != nil {
				return err
			}

			for _, region := range regions {
				set := y.HolidaySet(region)
				outPrintf("\n🎉 %s %d: %d holiday(s)\n", region, y.Year(), set.Len())
				for _, h := range set.Holidays() {
					r, _ := y.Day(h.Date.Month, h.Date.Day)
					outPrintf("  %s  %-14s  %s\n", h.Date, r.WeekdayName, h.Name)
				}
			}
			return nil
		},
	}

	o.register(cmd, true)
	cmd.Flags().StringVarP(&regionFlag, "region", "r", string(calendar.RegionNational), "Region code (BR, RJ, SP, ES, MG, PR, SC, RS) or all")

	return cmd
}

func holidayLabel(r *dimension.DayRecord) string {
	var parts []string
	for _, region := range calendar.Regions() {
		if region.IsNational() {
			if name := r.HolidayName(region); name != "" {
				return fmt.Sprintf("%s: %s", region, name)
			}
			continue
		}
		if r.IsHoliday(region) {
			parts = append(parts, string(region))
		}
	}
	return strings.Join(parts, ",")
}

func boundaryLabel(r *dimension.DayRecord) string {
	flags := []struct {
		set   bool
		label string
	}{
		{r.IsYearStart, "year start"},
		{r.IsQuarterStart, "quarter start"},
		{r.IsMonthStart, "month start"},
		{r.IsMonthEnd, "month end"},
		{r.IsQuarterEnd, "quarter end"},
		{r.IsYearEnd, "year end"},
	}
	var labels []string
	for _, f := range flags {
		if f.set {
			labels = append(labels, f.label)
		}
	}
	if len(labels) == 0 {
		return "-"
	}
	return strings.Join(labels, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
