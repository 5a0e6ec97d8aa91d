package holidayservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/portico-living/court-booking-service/internal/domain"
)

// Client клиент справочника публичных праздников.
// Фид опрашивается раз в год (per-year кэш); вручную поддерживаемый список
// из конфигурации дополняет фид и служит fallback-ом при его недоступности.
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	log         Logger

	// manual — даты из конфигурации ("YYYY-MM-DD")
	manual map[string]struct{}

	mu    sync.RWMutex
	cache map[int]map[string]struct{}
}

// NewClient создает новый экземпляр клиента справочника праздников.
// Некорректные даты в manualHolidays логируются и пропускаются.
func NewClient(baseURL, countryCode string, timeout time.Duration, manualHolidays []string, log Logger) *Client {
	manual := make(map[string]struct{}, len(manualHolidays))
	for _, d := range manualHolidays {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			log.Warn("holidayservice: skipping malformed manual holiday %q: %v", d, err)
			continue
		}
		manual[d] = struct{}{}
	}

	return &Client{
		baseURL:     baseURL,
		countryCode: countryCode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:    log,
		manual: manual,
		cache:  make(map[int]map[string]struct{}),
	}
}

// IsHoliday сообщает, является ли дата публичным праздником.
// При недоступности фида применяется graceful degradation: используется
// только ручной список, ошибка наверх не отдается — корректность admission
// не должна зависеть от внешнего фида.
func (c *Client) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	key := date.Format(domain.DateFormat)

	if _, ok := c.manual[key]; ok {
		return true, nil
	}

	year := date.Year()

	c.mu.RLock()
	dates, cached := c.cache[year]
	c.mu.RUnlock()

	if !cached {
		fetched, err := c.fetchYear(ctx, year)
		if err != nil {
			c.log.Error("holidayservice: feed unavailable for year %d, falling back to manual list: %v", year, err)
			return false, nil
		}

		dates = fetched
		c.mu.Lock()
		c.cache[year] = dates
		c.mu.Unlock()
	}

	_, ok := dates[key]
	return ok, nil
}

// fetchYear загружает список праздников на год из фида
func (c *Client) fetchYear(ctx context.Context, year int) (map[string]struct{}, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNoContent:
		// Для страны нет данных — считаем, что праздников нет
		return map[string]struct{}{}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	dates := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		dates[h.Date] = struct{}{}
	}

	c.log.Info("holidayservice: loaded %d public holidays for %d/%s", len(dates), year, c.countryCode)
	return dates, nil
}
