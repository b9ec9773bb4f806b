package dimension

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/calendar-dimension/pkg/dateutil"
)

func d(year int, month time.Month, day int) dateutil.Date {
	return dateutil.Date{Year: year, Month: month, Day: day}
}

func TestClassifySeason(t *testing.T) {
	tests := []struct {
		date dateutil.Date
		want Season
	}{
		{d(2025, time.January, 1), Summer},
		{d(2025, time.March, 20), Summer},
		{d(2025, time.March, 21), Autumn},
		{d(2025, time.June, 20), Autumn},
		{d(2025, time.June, 21), Winter},
		{d(2025, time.September, 22), Winter},
		{d(2025, time.September, 23), Spring},
		{d(2025, time.December, 20), Spring},
		{d(2025, time.December, 21), Summer},
		{d(2025, time.December, 31), Summer},
		{d(2024, time.February, 29), Summer},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeason(tt.date))
		})
	}
}

func TestClassifySeason_Partition(t *testing.T) {
	counts := map[Season]int{}
	for date := d(2023, time.January, 1); date.Year == 2023; date = date.AddDays(1) {
		counts[ClassifySeason(date)]++
	}
	assert.Len(t, counts, 4)
	assert.Equal(t, 365, counts[Summer]+counts[Autumn]+counts[Winter]+counts[Spring])
}

func TestBoundariesOf(t *testing.T) {
	tests := []struct {
		name string
		date dateutil.Date
		want Boundaries
	}{
		{
			name: "year start",
			date: d(2025, time.January, 1),
			want: Boundaries{
				IsMonthStart: true, IsQuarterStart: true, IsYearStart: true,
				MonthStart: d(2025, time.January, 1), MonthEnd: d(2025, time.January, 31),
				WeekStart: d(2024, time.December, 30), WeekEnd: d(2025, time.January, 5),
			},
		},
		{
			name: "quarter end",
			date: d(2025, time.June, 30),
			want: Boundaries{
				IsMonthEnd: true, IsQuarterEnd: true,
				MonthStart: d(2025, time.June, 1), MonthEnd: d(2025, time.June, 30),
				WeekStart: d(2025, time.June, 30), WeekEnd: d(2025, time.July, 6),
			},
		},
		{
			name: "month start not quarter start",
			date: d(2025, time.May, 1),
			want: Boundaries{
				IsMonthStart: true,
				MonthStart:   d(2025, time.May, 1), MonthEnd: d(2025, time.May, 31),
				WeekStart: d(2025, time.April, 28), WeekEnd: d(2025, time.May, 4),
			},
		},
		{
			name: "leap february end",
			date: d(2024, time.February, 29),
			want: Boundaries{
				IsMonthEnd: true,
				MonthStart: d(2024, time.February, 1), MonthEnd: d(2024, time.February, 29),
				WeekStart: d(2024, time.February, 26), WeekEnd: d(2024, time.March, 3),
			},
		},
		{
			name: "year end",
			date: d(2025, time.December, 31),
			want: Boundaries{
				IsMonthEnd: true, IsQuarterEnd: true, IsYearEnd: true,
				MonthStart: d(2025, time.December, 1), MonthEnd: d(2025, time.December, 31),
				WeekStart: d(2025, time.December, 29), WeekEnd: d(2026, time.January, 4),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundariesOf(tt.date))
		})
	}
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 1.0/365, YearProgress(d(2025, time.January, 1)), 1e-12)
	assert.InDelta(t, 1.0/366, YearProgress(d(2024, time.January, 1)), 1e-12)
	assert.Equal(t, 1.0, YearProgress(d(2024, time.December, 31)))
	assert.Equal(t, 1.0, YearProgress(d(2025, time.December, 31)))

	assert.InDelta(t, 1.0/28, MonthProgress(d(2025, time.February, 1)), 1e-12)
	assert.Equal(t, 1.0, MonthProgress(d(2024, time.February, 29)))
	assert.Equal(t, 0.5, MonthProgress(d(2025, time.April, 15)))
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(false, false))
	assert.False(t, IsBusinessDay(true, false))
	assert.False(t, IsBusinessDay(false, true))
	assert.False(t, IsBusinessDay(true, true))
}

func TestLookupLocale(t *testing.T) {
	tests := []struct {
		name    string
		want    *Locale
		wantErr bool
	}{
		{name: "pt-BR", want: PortugueseBR},
		{name: "pt", want: PortugueseBR},
		{name: "en", want: English},
		{name: "en-US", want: English},
		{name: "fr", wantErr: true},
		{name: "not a tag!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupLocale(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestLocaleNames(t *testing.T) {
	assert.Equal(t, "segunda-feira", PortugueseBR.WeekdayName(0))
	assert.Equal(t, "domingo", PortugueseBR.WeekdayName(6))
	assert.Equal(t, "marco", PortugueseBR.MonthName(time.March))
	assert.Equal(t, "verao", PortugueseBR.SeasonName(Summer))
	assert.Equal(t, "primavera", PortugueseBR.SeasonName(Spring))

	assert.Equal(t, "sunday", English.WeekdayName(6))
	assert.Equal(t, "december", English.MonthName(time.December))
	assert.Equal(t, Winter.String(), English.SeasonName(Winter))
}
