package profileservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStylist получает профиль стилиста
func (c *Client) GetStylist(ctx context.Context, stylistID int64) (*Stylist, error) {
	url := fmt.Sprintf("%s/internal/stylists/%d", c.baseURL, stylistID)

	var stylist Stylist
	if err := c.getJSON(ctx, url, &stylist, ErrStylistNotFound); err != nil {
		return nil, err
	}

	return &stylist, nil
}

// GetClient получает профиль клиента
func (c *Client) GetClient(ctx context.Context, clientID int64) (*ClientProfile, error) {
	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)

	var profile ClientProfile
	if err := c.getJSON(ctx, url, &profile, ErrClientNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
