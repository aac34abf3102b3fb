package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client клиент для работы с каталогом услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу каталога по ID.
// Неактивная услуга считается отсутствующей: по ней нельзя ни построить
// расписание, ни создать бронирование.
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	requestURL := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, requestURL, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	if !service.Active {
		c.log.Info("Service %d is inactive, treating as not found", serviceID)
		return nil, ErrServiceNotFound
	}

	return &service, nil
}

// GetAddons получает дополнительные опции по списку ID.
// Пустой список - валидный случай, запрос в каталог не выполняется.
// Если каталог вернул меньше опций, чем запрошено, или среди них есть
// неактивные - ErrAddonNotFound.
func (c *Client) GetAddons(ctx context.Context, addonIDs []int64) ([]*Addon, error) {
	if len(addonIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(addonIDs))
	for _, id := range addonIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	requestURL := fmt.Sprintf("%s/internal/addons?ids=%s", c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var addons []*Addon
	if err := c.getJSON(ctx, requestURL, &addons, ErrAddonNotFound); err != nil {
		return nil, err
	}

	if len(addons) != len(addonIDs) {
		return nil, fmt.Errorf("%w: requested %d addons, catalog returned %d", ErrAddonNotFound, len(addonIDs), len(addons))
	}

	for _, addon := range addons {
		if !addon.Active {
			c.log.Info("Addon %d is inactive, treating as not found", addon.ID)
			return nil, fmt.Errorf("%w: addon %d is inactive", ErrAddonNotFound, addon.ID)
		}
	}

	return addons, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
