package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/calendar-dimension/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	// DefaultBrasilAPIURL is the national holiday endpoint; {year} is substituted
	DefaultBrasilAPIURL = "https://brasilapi.com.br/api/feriados/v1/{year}"
	defaultHTTPTimeout  = 10 * time.Second
	defaultCacheTTL     = 24 * time.Hour
)

// BrasilAPICalendar implements Provider using the BrasilAPI service for national
// holidays. The API publishes no state holidays, so a state's set is the API's
// national holidays plus the builtin rules for that state.
type BrasilAPICalendar struct {
	apiURL     string
	httpClient *http.Client
	policy     CollisionPolicy
	logger     *zap.Logger
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// brasilAPIHoliday represents a single element of the API response
type brasilAPIHoliday struct {
	Date string `json:"date"` // "2025-01-01"
	Name string `json:"name"`
	Type string `json:"type"` // "national"
}

// NewBrasilAPICalendar creates a new BrasilAPICalendar instance
func NewBrasilAPICalendar(apiURL string, cacheTTL time.Duration, policy CollisionPolicy, logger *zap.Logger) *BrasilAPICalendar {
	if apiURL == "" {
		apiURL = DefaultBrasilAPIURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &BrasilAPICalendar{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		policy:   policy,
		logger:   logger,
		cache:    make(map[int]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the national holidays for year and, for a state, its own holidays
func (c *BrasilAPICalendar) Holidays(region Region, year int) (*HolidaySet, error) {
	if region.Index() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	holidays, err := c.national(year)
	if err != nil {
		return nil, &UnavailableError{Region: region, Year: year, Err: err}
	}
	if !region.IsNational() {
		holidays = appendCalculated(holidays, stateHolidays[region], year)
	}

	return NewHolidaySet(region, year, c.policy, holidays...), nil
}

// national returns the API holidays for year, from cache when fresh.
// The returned slice is a copy the caller may append to.
func (c *BrasilAPICalendar) national(year int) ([]Holiday, error) {
	c.cacheMu.RLock()
	if cached, ok := c.cache[year]; ok && time.Since(cached.fetchedAt) < c.cacheTTL {
		c.cacheMu.RUnlock()
		c.logger.Debug("Using cached holidays", zap.Int("year", year))
		return slices.Clone(cached.data), nil
	}
	c.cacheMu.RUnlock()

	holidays, err := c.fetchYear(year)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cache[year] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	return slices.Clone(holidays), nil
}

// fetchYear downloads the holiday list for year
func (c *BrasilAPICalendar) fetchYear(year int) ([]Holiday, error) {
	url := strings.ReplaceAll(c.apiURL, "{year}", strconv.Itoa(year))

	c.logger.Debug("Fetching holidays from BrasilAPI",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var payload []brasilAPIHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	holidays, err := c.parseResponse(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

func (c *BrasilAPICalendar) parseResponse(payload []brasilAPIHoliday) ([]Holiday, error) {
	holidays := make([]Holiday, 0, len(payload))
	for _, item := range payload {
		if item.Type != "" && item.Type != "national" {
			continue
		}
		date, err := dateutil.ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", item.Date, err)
		}
		holidays = append(holidays, Holiday{Date: date, Name: item.Name})
	}
	return holidays, nil
}

// ClearCache clears the cache
func (c *BrasilAPICalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[int]*cachedYear)
	c.logger.Info("Holiday cache cleared")
}
