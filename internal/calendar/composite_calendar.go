package calendar

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CompositeCalendar implements Provider with fallback strategy.
// Primary: usually a remote or file source
// Fallback: usually the builtin rules
type CompositeCalendar struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Provider, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays tries the primary provider first and the fallback on failure.
// Unknown regions are not retried.
func (cc *CompositeCalendar) Holidays(region Region, year int) (*HolidaySet, error) {
	set, err := cc.primary.Holidays(region, year)
	if err == nil {
		return set, nil
	}
	if errors.Is(err, ErrUnknownRegion) {
		return nil, err
	}

	cc.logger.Warn("Primary holiday provider failed, falling back",
		zap.String("region", string(region)),
		zap.Int("year", year),
		zap.Error(err))

	set, fallbackErr := cc.fallback.Holidays(region, year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%w", err, fallbackErr)
	}
	return set, nil
}
