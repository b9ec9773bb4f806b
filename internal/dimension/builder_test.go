package dimension

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/calendar-dimension/internal/calendar"
	"go.uber.org/zap"
)

const saoPaulo = "America/Sao_Paulo"

type failingProvider struct {
	calendar.Provider
	region calendar.Region
}

func (p *failingProvider) Holidays(region calendar.Region, year int) (*calendar.HolidaySet, error) {
	if region == p.region {
		return nil, &calendar.UnavailableError{Region: region, Year: year, Reason: "source offline"}
	}
	return p.Provider.Holidays(region, year)
}

func newTestBuilder(opts ...Option) *Builder {
	return NewBuilder(calendar.NewBuiltinCalendar(calendar.CollisionJoin, zap.NewNop()), zap.NewNop(), opts...)
}

func buildRecords(t *testing.T, year int, tz string) []DayRecord {
	t.Helper()
	y, err := newTestBuilder().Build(year, tz)
	require.NoError(t, err)
	records, err := y.Records(context.Background())
	require.NoError(t, err)
	return records
}

func TestBuild_RecordCount(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{2023, 365},
		{2024, 366},
		{2025, 365},
		{1900, 365},
		{2000, 366},
		{1, 365},
		{4, 366},
		{1850, 365},
	}

	for _, tt := range tests {
		records := buildRecords(t, tt.year, saoPaulo)
		assert.Len(t, records, tt.want, "year %d", tt.year)
		assert.Equal(t, tt.year, records[0].Year)
		assert.Equal(t, tt.year, records[len(records)-1].Year)
	}
}

func TestBuild_YearWithoutHolidayRules(t *testing.T) {
	for _, year := range []int{1, 1850} {
		records := buildRecords(t, year, saoPaulo)
		for _, r := range records {
			assert.Equal(t, !r.IsWeekend, r.IsBusinessDay, r.Civil.String())
			for _, region := range calendar.Regions() {
				assert.False(t, r.IsHoliday(region), "%s %s", region, r.Civil)
			}
		}
	}
}

func TestBuild_BrasilAPIStatesFollowNational(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2025-01-01","name":"Confraternização mundial","type":"national"},
			{"date":"2025-03-04","name":"Carnaval","type":"national"},
			{"date":"2025-04-21","name":"Tiradentes","type":"national"},
			{"date":"2025-12-25","name":"Natal","type":"national"}
		]`)
	}))
	defer srv.Close()

	provider := calendar.NewBrasilAPICalendar(srv.URL+"/{year}", time.Hour, calendar.CollisionJoin, zap.NewNop())
	y, err := NewBuilder(provider, zap.NewNop()).Build(2025, saoPaulo)
	require.NoError(t, err)

	nationalDays := 0
	for r := range y.All() {
		if !r.IsNationalHoliday() {
			continue
		}
		nationalDays++
		for _, region := range calendar.Regions() {
			assert.True(t, r.IsHoliday(region), "%s %s", region, r.Civil)
		}
	}
	assert.Equal(t, 4, nationalDays)

	carnaval, _ := y.Day(time.March, 4)
	assert.Equal(t, "Carnaval", carnaval.HolidayName(calendar.RegionRJ))
	assert.False(t, carnaval.IsBusinessDay)

	tiradentes, _ := y.Day(time.April, 21)
	assert.Equal(t, "Tiradentes; Data Magna de Minas Gerais", tiradentes.HolidayName(calendar.RegionMG))

	saoPauloDay, _ := y.Day(time.July, 9)
	assert.True(t, saoPauloDay.IsHoliday(calendar.RegionSP))
	assert.False(t, saoPauloDay.IsNationalHoliday())
}

func TestBuild_Ordering(t *testing.T) {
	records := buildRecords(t, 2024, saoPaulo)

	for i, r := range records {
		assert.Equal(t, i+1, r.DayOfYear)
		assert.Equal(t, 2024, r.Year)
		if i > 0 {
			assert.True(t, records[i-1].Civil.Before(r.Civil))
			assert.True(t, records[i-1].Date.Before(r.Date))
		}
	}
	assert.True(t, records[0].IsYearStart)
	assert.True(t, records[len(records)-1].IsYearEnd)
}

func TestBuild_LeapDay(t *testing.T) {
	y, err := newTestBuilder().Build(2024, saoPaulo)
	require.NoError(t, err)

	r, ok := y.Day(time.February, 29)
	require.True(t, ok)
	assert.Equal(t, 60, r.DayOfYear)
	assert.True(t, r.IsLeapYear)
	assert.Equal(t, Summer, r.Season)
	assert.Equal(t, "verao", r.SeasonName)
	assert.Equal(t, "quinta-feira", r.WeekdayName)
	assert.Equal(t, 3, r.WeekdayIndex)
	assert.True(t, r.IsMonthEnd)
	assert.Equal(t, 29, r.DaysInMonth)
	assert.Equal(t, 0, r.DaysUntilMonthEnd)
	assert.Equal(t, 1.0, r.MonthProgress)

	_, ok = y.Day(time.February, 30)
	assert.False(t, ok)

	y2025, err := newTestBuilder().Build(2025, saoPaulo)
	require.NoError(t, err)
	_, ok = y2025.Day(time.February, 29)
	assert.False(t, ok)
}

func TestBuild_YearEdges(t *testing.T) {
	records := buildRecords(t, 2025, saoPaulo)
	first, last := records[0], records[len(records)-1]

	assert.InDelta(t, 1.0/365, first.YearProgress, 1e-12)
	assert.Equal(t, 364, first.DaysUntilYearEnd)
	assert.Equal(t, 1, first.ISOWeek)
	assert.Equal(t, 2025, first.ISOYear)

	assert.Equal(t, 1.0, last.YearProgress)
	assert.Equal(t, 0, last.DaysUntilYearEnd)
	assert.Equal(t, 1, last.ISOWeek)
	assert.Equal(t, 2026, last.ISOYear)
	assert.True(t, last.IsQuarterEnd)
	assert.Equal(t, 4, last.Quarter)
	assert.Equal(t, 2, last.Semester)
	assert.Equal(t, 3, last.Quadrimester)
	assert.Equal(t, 2, last.Fortnight)
}

func TestBuild_DateFields(t *testing.T) {
	y, err := newTestBuilder(WithLocale(English)).Build(2025, saoPaulo)
	require.NoError(t, err)

	r, ok := y.Day(time.March, 3)
	require.True(t, ok)

	loc := y.Location()
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), r.Date)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), r.MonthStartDate)
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, loc), r.MonthEndDate)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, loc), r.WeekStartDate)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, loc), r.WeekEndDate)

	assert.Equal(t, "monday", r.WeekdayName)
	assert.Equal(t, "march", r.MonthName)
	assert.Equal(t, 2, r.WeekOfMonth)
	assert.Equal(t, 2, r.DaysSinceMonthStart)
	assert.Equal(t, 28, r.DaysUntilMonthEnd)
	assert.Equal(t, saoPaulo, r.TimezoneID)
	assert.Equal(t, -3.0, r.UTCOffsetHours)
}

func TestBuild_UTCOffsetFollowsDST(t *testing.T) {
	y, err := newTestBuilder().Build(2018, saoPaulo)
	require.NoError(t, err)

	summer, _ := y.Day(time.January, 15)
	winter, _ := y.Day(time.July, 1)
	dstStart, _ := y.Day(time.November, 4)

	assert.Equal(t, -2.0, summer.UTCOffsetHours)
	assert.Equal(t, -3.0, winter.UTCOffsetHours)
	assert.Equal(t, 4, dstStart.Day)
	assert.Equal(t, 4, dstStart.Date.Day())
}

func TestBuild_Holidays(t *testing.T) {
	y, err := newTestBuilder().Build(2024, saoPaulo)
	require.NoError(t, err)

	newYear, _ := y.Day(time.January, 1)
	assert.True(t, newYear.IsNationalHoliday())
	assert.Equal(t, "Confraternização Universal", newYear.HolidayName(calendar.RegionNational))
	assert.False(t, newYear.IsBusinessDay)
	for _, region := range calendar.Regions() {
		assert.True(t, newYear.IsHoliday(region), "region %s", region)
	}

	tiradentes, _ := y.Day(time.April, 21)
	assert.Equal(t, "Tiradentes", tiradentes.HolidayName(calendar.RegionNational))
	assert.Equal(t, "Tiradentes; Data Magna de Minas Gerais", tiradentes.HolidayName(calendar.RegionMG))

	saoPauloDay, _ := y.Day(time.July, 9)
	assert.True(t, saoPauloDay.IsHoliday(calendar.RegionSP))
	assert.False(t, saoPauloDay.IsHoliday(calendar.RegionRJ))
	assert.False(t, saoPauloDay.IsNationalHoliday())
	assert.True(t, saoPauloDay.IsBusinessDay, "state holidays do not affect business days")

	ordinary, _ := y.Day(time.March, 5)
	assert.False(t, ordinary.IsHoliday(calendar.RegionSP))
	assert.Empty(t, ordinary.HolidayName(calendar.RegionSP))
	assert.Equal(t, HolidayFlag{}, ordinary.Holiday(calendar.Region("XX")))
}

func TestBuild_BusinessDayRule(t *testing.T) {
	records := buildRecords(t, 2024, saoPaulo)

	businessDays := 0
	for _, r := range records {
		assert.Equal(t, !r.IsWeekend && !r.IsNationalHoliday(), r.IsBusinessDay, r.Civil.String())
		assert.Equal(t, r.WeekdayIndex >= 5, r.IsWeekend, r.Civil.String())
		if r.IsBusinessDay {
			businessDays++
		}
	}
	// 262 weekdays in 2024, of which 6 are national holidays
	assert.Equal(t, 256, businessDays)
}

func TestBuild_Errors(t *testing.T) {
	t.Run("invalid year", func(t *testing.T) {
		_, err := newTestBuilder().Build(0, saoPaulo)
		var target *InvalidYearError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 0, target.Year)

		_, err = newTestBuilder().Build(-5, "not/a_zone")
		assert.ErrorAs(t, err, &target, "year is validated before timezone")
	})

	t.Run("invalid timezone", func(t *testing.T) {
		for _, tz := range []string{"", "Mars/Olympus_Mons"} {
			_, err := newTestBuilder().Build(2025, tz)
			var target *InvalidTimezoneError
			require.ErrorAs(t, err, &target, "timezone %q", tz)
			assert.Equal(t, tz, target.TimezoneID)
		}
	})

	t.Run("holiday data unavailable", func(t *testing.T) {
		provider := &failingProvider{
			Provider: calendar.NewBuiltinCalendar(calendar.CollisionJoin, zap.NewNop()),
			region:   calendar.RegionSC,
		}
		y, err := NewBuilder(provider, zap.NewNop()).Build(2025, saoPaulo)
		assert.Nil(t, y)

		var target *HolidayDataUnavailableError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, calendar.RegionSC, target.Region)
		assert.Equal(t, 2025, target.Year)
		assert.True(t, errors.Is(err, calendar.ErrHolidayDataUnavailable))
	})
}

func TestYear_AllMatchesRecords(t *testing.T) {
	y, err := newTestBuilder(WithWorkers(3)).Build(2024, saoPaulo)
	require.NoError(t, err)

	records, err := y.Records(context.Background())
	require.NoError(t, err)

	var streamed []DayRecord
	for r := range y.All() {
		streamed = append(streamed, r)
	}
	assert.Equal(t, records, streamed)

	again, err := y.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestYear_AllStopsEarly(t *testing.T) {
	y, err := newTestBuilder().Build(2025, saoPaulo)
	require.NoError(t, err)

	var got []DayRecord
	for r := range y.All() {
		got = append(got, r)
		if len(got) == 3 {
			break
		}
	}
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[2].DayOfYear)
}

func TestYear_RecordsCancelled(t *testing.T) {
	y, err := newTestBuilder(WithWorkers(1)).Build(2025, saoPaulo)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = y.Records(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	records := buildRecords(t, 2024, saoPaulo)
	summaries := Summarize(records)
	require.Len(t, summaries, 12)

	total := 0
	for i, s := range summaries {
		assert.Equal(t, time.Month(i+1), s.Month)
		total += s.Days
	}
	assert.Equal(t, 366, total)

	nov := summaries[time.November-1]
	assert.Equal(t, 30, nov.Days)
	assert.Equal(t, 3, nov.NationalHolidays)
	assert.Equal(t, 9, nov.Weekends)
	// Nov 2 is a Saturday; Nov 15 and 20 fall on weekdays
	assert.Equal(t, 19, nov.BusinessDays)
	assert.Equal(t, 3, nov.HolidaysByRegion[calendar.RegionSP.Index()])
	assert.Equal(t, 3, nov.HolidaysByRegion[calendar.RegionRJ.Index()])
	assert.Equal(t, 4, nov.HolidaysByRegion[calendar.RegionSC.Index()])

	assert.Empty(t, Summarize(nil))
}
