package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/username/calendar-dimension/internal/calendar"
	"github.com/username/calendar-dimension/internal/dimension"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CALDIM_CALENDAR_TIMEZONE
	EnvPrefix = "CALDIM"

	defaultTimezone = "America/Sao_Paulo"
	defaultLocale   = "pt-BR"
	defaultCacheTTL = 24 * time.Hour
)

// Holiday sources
const (
	SourceBuiltin   = "builtin"
	SourceBrasilAPI = "brasilapi"
	SourceFile      = "file"

	FallbackBuiltin = "builtin"
	FallbackNone    = "none"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig selects the year, timezone and locale of the dimension
type CalendarConfig struct {
	Year     int    `mapstructure:"year" validate:"gte=0"` // 0 = current year
	Timezone string `mapstructure:"timezone" validate:"required"`
	Locale   string `mapstructure:"locale" validate:"required"`
	Workers  int    `mapstructure:"workers" validate:"gte=0"` // 0 = GOMAXPROCS
}

// HolidaysConfig represents holiday provider configuration
type HolidaysConfig struct {
	Source    string `mapstructure:"source" validate:"oneof=builtin brasilapi file"`
	File      string `mapstructure:"file" validate:"required_if=Source file"`
	APIURL    string `mapstructure:"api_url" validate:"omitempty,url"`
	CacheTTL  string `mapstructure:"cache_ttl"`
	Fallback  string `mapstructure:"fallback" validate:"oneof=builtin none"`
	Collision string `mapstructure:"collision" validate:"oneof=join first last"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // empty = console
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.year", 0)
	v.SetDefault("calendar.timezone", defaultTimezone)
	v.SetDefault("calendar.locale", defaultLocale)
	v.SetDefault("calendar.workers", 0)
	v.SetDefault("holidays.source", SourceBuiltin)
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.api_url", calendar.DefaultBrasilAPIURL)
	v.SetDefault("holidays.cache_ttl", defaultCacheTTL.String())
	v.SetDefault("holidays.fallback", FallbackBuiltin)
	v.SetDefault("holidays.collision", calendar.CollisionJoin.String())
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file, environment and defaults.
// A missing config file is not an error when no explicit path is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-dim")
		v.AddConfigPath("/etc/calendar-dim")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks struct constraints and that timezone, locale, policy and
// cache TTL can be resolved. All problems are reported together.
func (c *Config) Validate() error {
	errs := &cerrors.M{}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs.Append(fmt.Errorf("%s: failed %q constraint", fieldPath(fe), fe.Tag()))
			}
		} else {
			errs.Append(err)
		}
	}

	if c.Calendar.Timezone != "" {
		if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
			errs.Append(fmt.Errorf("calendar.timezone: %w", err))
		}
	}
	if c.Calendar.Locale != "" {
		if _, err := dimension.LookupLocale(c.Calendar.Locale); err != nil {
			errs.Append(fmt.Errorf("calendar.locale: %w", err))
		}
	}
	if c.Holidays.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Holidays.CacheTTL); err != nil {
			errs.Append(fmt.Errorf("holidays.cache_ttl: %w", err))
		}
	}

	return errs.Err()
}

// fieldPath maps a validator namespace such as Config.Holidays.APIURL to the config key
func fieldPath(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.Namespace(), "Config.")
	section, _, _ := strings.Cut(ns, ".")
	keys := map[string]string{
		"Year": "year", "Timezone": "timezone", "Locale": "locale", "Workers": "workers",
		"Source": "source", "File": "file", "APIURL": "api_url", "CacheTTL": "cache_ttl",
		"Fallback": "fallback", "Collision": "collision", "Level": "level",
	}
	key, ok := keys[fe.StructField()]
	if !ok {
		return ns
	}
	return strings.ToLower(section) + "." + key
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return defaultCacheTTL
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return defaultCacheTTL
	}
	return duration
}

// GetCollisionPolicy returns the configured same-date policy, join by default
func (c *HolidaysConfig) GetCollisionPolicy() calendar.CollisionPolicy {
	policy, err := calendar.ParseCollisionPolicy(c.Collision)
	if err != nil {
		return calendar.CollisionJoin
	}
	return policy
}

// GetYear returns the configured year, or the current year in the configured timezone
func (c *CalendarConfig) GetYear(now time.Time) int {
	if c.Year > 0 {
		return c.Year
	}
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		now = now.In(loc)
	}
	return now.Year()
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
