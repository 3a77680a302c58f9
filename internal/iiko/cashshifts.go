// Файл: internal/iiko/cashshifts.go
package iiko

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

type cashShiftJSON struct {
	ID        string  `json:"id"`
	OpenDate  string  `json:"openDate"`
	CloseDate string  `json:"closeDate"`
	PayOrders float64 `json:"payOrders"`
}

// CashShifts возвращает кассовые смены за период.
func (c *Client) CashShifts(ctx context.Context, from, to time.Time) ([]models.CashShift, error) {
	params := url.Values{}
	params.Set("openDateFrom", from.Format("2006-01-02"))
	params.Set("openDateTo", to.Format("2006-01-02"))
	params.Set("status", "ANY")

	body, _, err := c.get(ctx, "/resto/api/v2/cashshifts/list", params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения кассовых смен: %w", err)
	}

	var parsed []cashShiftJSON
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON кассовых смен: %w", err)
	}

	shifts := make([]models.CashShift, 0, len(parsed))
	for _, s := range parsed {
		shift := models.CashShift{ID: s.ID, PayOrders: s.PayOrders}
		if s.OpenDate != "" {
			if t, err := parseIikoTime(s.OpenDate); err == nil {
				shift.OpenDate = t
			}
		}
		if s.CloseDate != "" {
			if t, err := parseIikoTime(s.CloseDate); err == nil {
				shift.CloseDate = t
			}
		}
		shifts = append(shifts, shift)
	}
	log.Printf("Загружено %d кассовых смен", len(shifts))
	return shifts, nil
}

// PresetOrders возвращает заказы (время закрытия и сумма со скидкой)
// из сохранённого OLAP-отчёта iiko.
func (c *Client) PresetOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	token, err := c.AuthToken(ctx)
	if err != nil {
		return nil, err
	}
	params.Set("key", token)

	body, _, err := c.get(ctx, "/resto/api/v2/reports/olap/byPresetId/"+constants.PresetOrdersReportID, params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения preset-отчёта заказов: %w", err)
	}

	var parsed struct {
		Data []struct {
			CloseTime          string  `json:"CloseTime"`
			DishDiscountSumInt float64 `json:"DishDiscountSumInt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON preset-отчёта: %w", err)
	}

	var orders []models.Order
	for _, item := range parsed.Data {
		if item.CloseTime == "" {
			continue
		}
		closeTime, err := parseIikoTime(item.CloseTime)
		if err != nil {
			continue
		}
		orders = append(orders, models.Order{CloseTime: closeTime, Sum: item.DishDiscountSumInt})
	}
	log.Printf("Получено %d заказов из preset-отчёта", len(orders))
	return orders, nil
}
