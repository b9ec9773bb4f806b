package dimension

// IsBusinessDay reports whether a day is neither a weekend nor a national
// holiday. State holidays do not affect it.
func IsBusinessDay(isWeekend, isNationalHoliday bool) bool {
	return !isWeekend && !isNationalHoliday
}
