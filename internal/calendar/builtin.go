package calendar

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/username/calendar-dimension/pkg/dateutil"
	"go.uber.org/zap"
)

// Brazilian public holidays. Rules before 1890 are not defined; earlier
// years resolve to an empty set.
const firstRuleYear = 1890

func fixed(name string, month time.Month, day, startYear int) *cal.Holiday {
	if startYear < firstRuleYear {
		startYear = firstRuleYear
	}
	return &cal.Holiday{
		Name:      name,
		Type:      cal.ObservancePublic,
		Month:     month,
		Day:       day,
		StartYear: startYear,
		Func:      cal.CalcDayOfMonth,
	}
}

func easterOffset(name string, offset, startYear int) *cal.Holiday {
	if startYear < firstRuleYear {
		startYear = firstRuleYear
	}
	return &cal.Holiday{
		Name:      name,
		Type:      cal.ObservancePublic,
		Offset:    offset,
		StartYear: startYear,
		Func:      cal.CalcEasterOffset,
	}
}

var nationalHolidays = []*cal.Holiday{
	fixed("Confraternização Universal", time.January, 1, 0),
	easterOffset("Sexta-feira Santa", -2, 0),
	fixed("Tiradentes", time.April, 21, 0),
	fixed("Dia do Trabalhador", time.May, 1, 1925),
	fixed("Independência do Brasil", time.September, 7, 0),
	fixed("Nossa Senhora Aparecida", time.October, 12, 1980),
	fixed("Finados", time.November, 2, 0),
	fixed("Proclamação da República", time.November, 15, 0),
	fixed("Dia Nacional de Zumbi e da Consciência Negra", time.November, 20, 2024),
	fixed("Natal", time.December, 25, 0),
}

var stateHolidays = map[Region][]*cal.Holiday{
	RegionRJ: {
		fixed("Dia de São Jorge", time.April, 23, 2008),
		fixed("Dia da Consciência Negra", time.November, 20, 2002),
	},
	RegionSP: {
		fixed("Revolução Constitucionalista de 1932", time.July, 9, 1997),
	},
	RegionES: {
		easterOffset("Nossa Senhora da Penha", 8, 2020),
	},
	RegionMG: {
		fixed("Data Magna de Minas Gerais", time.April, 21, 0),
	},
	RegionPR: {
		fixed("Emancipação Política do Paraná", time.December, 19, 0),
	},
	RegionSC: {
		fixed("Criação da Capitania, separando-se de SP", time.August, 11, 2004),
		fixed("Dia de Santa Catarina de Alexandria", time.November, 25, 2004),
	},
	RegionRS: {
		fixed("Revolução Farroupilha", time.September, 20, 0),
	},
}

// BuiltinCalendar computes holidays from the rule tables above
type BuiltinCalendar struct {
	policy CollisionPolicy
	logger *zap.Logger
}

// NewBuiltinCalendar creates a new BuiltinCalendar
func NewBuiltinCalendar(policy CollisionPolicy, logger *zap.Logger) *BuiltinCalendar {
	return &BuiltinCalendar{
		policy: policy,
		logger: logger,
	}
}

// Holidays returns the national holidays plus, for a state, its own holidays
func (bc *BuiltinCalendar) Holidays(region Region, year int) (*HolidaySet, error) {
	if region.Index() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	var holidays []Holiday
	holidays = appendCalculated(holidays, nationalHolidays, year)
	if !region.IsNational() {
		holidays = appendCalculated(holidays, stateHolidays[region], year)
	}

	set := NewHolidaySet(region, year, bc.policy, holidays...)
	bc.logger.Debug("Builtin holidays computed",
		zap.String("region", string(region)),
		zap.Int("year", year),
		zap.Int("count", set.Len()))

	return set, nil
}

func appendCalculated(out []Holiday, rules []*cal.Holiday, year int) []Holiday {
	for _, h := range rules {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, Holiday{Date: dateutil.NewDate(actual), Name: h.Name})
	}
	return out
}
