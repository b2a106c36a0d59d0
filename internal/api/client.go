package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/miracura/booking_widget/internal/model"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client REST-клиент бэкенда бронирования.
type Client struct {
	baseURL    string
	businessID string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент API.
func NewClient(baseURL, businessID string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		businessID: businessID,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// GuestLogin выдаёт анонимный гостевой токен.
func (c *Client) GuestLogin(ctx context.Context) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/login", "", loginRequest{Provider: "GUEST"}, &out)
	if err != nil {
		return "", fmt.Errorf("guest login: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("guest login: empty access token")
	}
	return out.AccessToken, nil
}

// AvailableSlots возвращает окна доступности услуги в интервале [From, To).
func (c *Client) AvailableSlots(ctx context.Context, q SlotQuery) ([]SlotWindow, error) {
	params := url.Values{}
	params.Set("from", strconv.FormatInt(q.From, 10))
	params.Set("to", strconv.FormatInt(q.To, 10))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.ProviderID != "" {
		params.Set("providerId", q.ProviderID)
	}

	path := fmt.Sprintf("/v1/businesses/%s/services/%s/available-slots?%s",
		url.PathEscape(c.businessID), url.PathEscape(q.ServiceID), params.Encode())

	var out itemsEnvelope[SlotWindow]
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("available slots: %w", err)
	}
	return out.list(), nil
}

// Providers возвращает исполнителей, оказывающих услугу.
func (c *Client) Providers(ctx context.Context, serviceID string, limit int) ([]model.Provider, error) {
	params := url.Values{}
	params.Set("serviceId", serviceID)
	params.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/v1/businesses/%s/providers?%s",
		url.PathEscape(c.businessID), params.Encode())

	var out itemsEnvelope[model.Provider]
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("providers: %w", err)
	}
	return out.list(), nil
}

// GetBusiness возвращает конфигурацию бизнеса: блоки форм и способы оплаты.
func (c *Client) GetBusiness(ctx context.Context) (*model.Business, error) {
	path := fmt.Sprintf("/v1/businesses/%s", url.PathEscape(c.businessID))

	var out model.Business
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &out, nil
}

// UpdateProfilePhone сохраняет телефон профиля, сервер отправляет код подтверждения.
func (c *Client) UpdateProfilePhone(ctx context.Context, token, phoneNumber string) error {
	body := updatePhoneRequest{
		PhoneNumber:  phoneNumber,
		PhoneNumbers: []string{},
		Addresses:    []string{},
	}
	if err := c.do(ctx, http.MethodPut, "/v1/users/update", token, body, nil); err != nil {
		return fmt.Errorf("update phone: %w", err)
	}
	return nil
}

// ConfirmPhoneNumber проверяет код подтверждения телефона.
func (c *Client) ConfirmPhoneNumber(ctx context.Context, token, phoneNumber, code string) error {
	body := confirmPhoneRequest{PhoneNumber: phoneNumber, Code: code}
	if err := c.do(ctx, http.MethodPut, "/v1/users/confirm/phone-number", token, body, nil); err != nil {
		return fmt.Errorf("confirm phone: %w", err)
	}
	return nil
}

// CreateReservation отправляет все накопленные части одним запросом.
func (c *Client) CreateReservation(ctx context.Context, token string, req ReservationRequest) (*ReservationResult, error) {
	if req.Blocks == nil {
		req.Blocks = []model.Block{}
	}

	var out ReservationResult
	if err := c.do(ctx, http.MethodPost, "/v1/reservations", token, req, &out); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return &out, nil
}

// CheckoutOrder оформляет заказ интернет-магазина.
func (c *Client) CheckoutOrder(ctx context.Context, token string, req OrderRequest) (*OrderResult, error) {
	path := fmt.Sprintf("/v1/businesses/%s/orders/checkout", url.PathEscape(req.BusinessID))

	var out OrderResult
	if err := c.do(ctx, http.MethodPost, path, token, req, &out); err != nil {
		return nil, fmt.Errorf("checkout order: %w", err)
	}
	return &out, nil
}

// do выполняет запрос и декодирует JSON-ответ.
// Тело не-2xx ответа возвращается как текст ошибки.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(msg) == 0 {
			msg = []byte(resp.Status)
		}
		return fmt.Errorf("%s", msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
