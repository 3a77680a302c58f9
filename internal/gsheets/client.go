// Файл: internal/gsheets/client.go
package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client — обёртка над Google Sheets API с сервисным аккаунтом.
type Client struct {
	spreadsheetID string
	service       *sheets.Service
}

// NewClient создаёт клиент Google Sheets по файлу сервисного аккаунта.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("не задан ID таблицы Google Sheets")
	}
	if credentialsFile == "" {
		return nil, fmt.Errorf("не задан файл учётных данных Google")
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Google Sheets: %w", err)
	}
	return &Client{spreadsheetID: spreadsheetID, service: service}, nil
}

// ReadRange читает значения диапазона в нотации A1.
func (c *Client) ReadRange(ctx context.Context, rangeA1 string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения диапазона '%s': %w", rangeA1, err)
	}
	return resp.Values, nil
}

// WriteRange записывает значения в диапазон в нотации A1.
func (c *Client) WriteRange(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, rangeA1, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ошибка записи диапазона '%s': %w", rangeA1, err)
	}
	return nil
}

// ClearRange очищает значения диапазона в нотации A1.
func (c *Client) ClearRange(ctx context.Context, rangeA1 string) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, rangeA1, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ошибка очистки диапазона '%s': %w", rangeA1, err)
	}
	return nil
}
