// Файл: internal/fintablo/client.go
package fintablo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"pizzabot/internal/models"
)

// Client — клиент REST API FinTablo с Bearer-авторизацией.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient создаёт клиент FinTablo. baseURL уже содержит /v1.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// itemsEnvelope — стандартный конверт ответов FinTablo.
type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ошибка подготовки запроса FinTablo: %w", err)
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса FinTablo %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotence-Key", uuid.New().String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса FinTablo %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа FinTablo: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("FinTablo %s вернул статус %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

// ListPnlItems возвращает записи статьи за месяц (date в формате MM.YYYY).
func (c *Client) ListPnlItems(ctx context.Context, date string, categoryID, directionID int64) ([]models.PnlItem, error) {
	params := url.Values{}
	params.Set("date", date)
	params.Set("categoryId", strconv.FormatInt(categoryID, 10))
	if directionID != 0 {
		params.Set("directionId", strconv.FormatInt(directionID, 10))
	}

	body, err := c.do(ctx, "GET", "/pnl-item", params, nil)
	if err != nil {
		return nil, err
	}
	var envelope itemsEnvelope[models.PnlItem]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора списка записей FinTablo: %w", err)
	}
	return envelope.Items, nil
}

// CreatePnlItem создаёт запись статьи и возвращает её ID.
func (c *Client) CreatePnlItem(ctx context.Context, payload models.LedgerPayload) (int64, error) {
	request := map[string]interface{}{
		"categoryId": payload.CategoryID,
		"value":      payload.Value,
		"date":       payload.Month,
		"comment":    payload.Comment,
	}
	if payload.DirectionID != 0 {
		request["directionId"] = payload.DirectionID
	}

	body, err := c.do(ctx, "POST", "/pnl-item", nil, request)
	if err != nil {
		return 0, err
	}
	var envelope itemsEnvelope[models.PnlItem]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа создания записи FinTablo: %w", err)
	}
	if len(envelope.Items) == 0 {
		return 0, nil
	}
	return envelope.Items[0].ID, nil
}

// DeletePnlItem удаляет запись статьи по ID.
func (c *Client) DeletePnlItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, "DELETE", fmt.Sprintf("/pnl-item/%d", itemID), nil, nil)
	return err
}

// ListPnlCategories возвращает статьи доходов/расходов.
func (c *Client) ListPnlCategories(ctx context.Context) ([]models.PnlCategory, error) {
	body, err := c.do(ctx, "GET", "/pnl-category", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope itemsEnvelope[models.PnlCategory]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора статей FinTablo: %w", err)
	}
	return envelope.Items, nil
}

// ListDirections возвращает направления деятельности.
func (c *Client) ListDirections(ctx context.Context) ([]models.Direction, error) {
	body, err := c.do(ctx, "GET", "/direction", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope itemsEnvelope[models.Direction]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора направлений FinTablo: %w", err)
	}
	return envelope.Items, nil
}
