package main

import (
	"fmt"

	"github.com/username/calendar-dimension/internal/calendar"
	"github.com/username/calendar-dimension/internal/config"
	"github.com/username/calendar-dimension/internal/dimension"
	"go.uber.org/zap"
)

// newProvider builds the holiday provider selected by holidays.source.
// Remote and file sources are wrapped with the builtin rules as fallback
// unless holidays.fallback is "none".
func newProvider(cfg *config.Config, logger *zap.Logger) (calendar.Provider, error) {
	policy := cfg.Holidays.GetCollisionPolicy()
	builtin := calendar.NewBuiltinCalendar(policy, logger)

	var primary calendar.Provider
	switch cfg.Holidays.Source {
	case config.SourceBuiltin, "":
		logger.Info("Using builtin holiday rules")
		return builtin, nil
	case config.SourceBrasilAPI:
		logger.Info("Using BrasilAPI holiday source", zap.String("url", cfg.Holidays.APIURL))
		primary = calendar.NewBrasilAPICalendar(
			cfg.Holidays.APIURL,
			cfg.Holidays.GetCacheTTL(),
			policy,
			logger,
		)
	case config.SourceFile:
		logger.Info("Using holiday file", zap.String("file", cfg.Holidays.File))
		fc := calendar.NewFileCalendar(cfg.Holidays.File, policy, logger)
		if err := fc.Load(); err != nil {
			if cfg.Holidays.Fallback == config.FallbackNone {
				return nil, fmt.Errorf("failed to load holiday file: %w", err)
			}
			logger.Warn("Failed to load holiday file, using builtin rules", zap.Error(err))
			return builtin, nil
		}
		primary = fc
	default:
		return nil, fmt.Errorf("unknown holiday source %q", cfg.Holidays.Source)
	}

	if cfg.Holidays.Fallback == config.FallbackNone {
		return primary, nil
	}
	return calendar.NewCompositeCalendar(primary, builtin, logger), nil
}

// newBuilder wires provider, locale and workers from cfg
func newBuilder(cfg *config.Config, logger *zap.Logger) (*dimension.Builder, error) {
	provider, err := newProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	locale, err := dimension.LookupLocale(cfg.Calendar.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve locale: %w", err)
	}
	return dimension.NewBuilder(provider, logger,
		dimension.WithLocale(locale),
		dimension.WithWorkers(cfg.Calendar.Workers),
	), nil
}
