// Файл: internal/gsheets/positions.go
package gsheets

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

// PositionSheetName — лист с условиями оплаты должностей, который правят менеджеры.
const PositionSheetName = "Ставки и условия оплат"

// Синонимы заголовков листа: допускаются русские и технические имена колонок.
var positionHeaderMap = map[string]string{
	"position_name":      "position_name",
	"должность":          "position_name",
	"payment_type":       "payment_type",
	"тип оплаты":         "payment_type",
	"fixed_rate":         "fixed_rate",
	"ставка":             "fixed_rate",
	"ставка оплаты":      "fixed_rate",
	"commission_percent": "commission_percent",
	"процент":            "commission_percent",
	"commission_type":    "commission_type",
	"тип процента":       "commission_type",
}

var paymentTypeMap = map[string]string{
	"hourly":      constants.PAYMENT_TYPE_HOURLY,
	"почасовая":   constants.PAYMENT_TYPE_HOURLY,
	"per_shift":   constants.PAYMENT_TYPE_PER_SHIFT,
	"посменная":   constants.PAYMENT_TYPE_PER_SHIFT,
	"сменная":     constants.PAYMENT_TYPE_PER_SHIFT,
	"monthly":     constants.PAYMENT_TYPE_MONTHLY,
	"ежемесячная": constants.PAYMENT_TYPE_MONTHLY,
	"оклад":       constants.PAYMENT_TYPE_MONTHLY,
}

var commissionTypeMap = map[string]string{
	"sales":        constants.COMMISSION_TYPE_SALES,
	"от продаж":    constants.COMMISSION_TYPE_SALES,
	"writeoff":     constants.COMMISSION_TYPE_WRITEOFF,
	"от накладных": constants.COMMISSION_TYPE_WRITEOFF,
}

// LoadPositionSettings читает условия оплаты должностей с листа таблицы.
// Ключи результата приводятся к нижнему регистру для поиска без учёта регистра.
func (c *Client) LoadPositionSettings(ctx context.Context, sheetName string) (map[string]models.PositionSettings, error) {
	if sheetName == "" {
		sheetName = PositionSheetName
	}
	values, err := c.ReadRange(ctx, fmt.Sprintf("'%s'!A:Z", sheetName))
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("лист '%s' пуст", sheetName)
	}

	colIndex := make(map[string]int)
	for idx, cell := range values[0] {
		header := strings.ToLower(strings.TrimSpace(cellString(cell)))
		if canonical, ok := positionHeaderMap[header]; ok {
			header = canonical
		}
		if _, exists := colIndex[header]; !exists {
			colIndex[header] = idx
		}
	}
	for _, required := range []string{"position_name", "payment_type", "commission_percent", "commission_type"} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("на листе '%s' отсутствует колонка '%s'", sheetName, required)
		}
	}

	cell := func(row []interface{}, col string) string {
		idx, ok := colIndex[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(cellString(row[idx]))
	}

	result := make(map[string]models.PositionSettings)
	for _, row := range values[1:] {
		positionName := cell(row, "position_name")
		if positionName == "" {
			continue
		}

		paymentRaw := strings.ToLower(cell(row, "payment_type"))
		paymentType, ok := paymentTypeMap[paymentRaw]
		if !ok {
			paymentType = constants.PAYMENT_TYPE_HOURLY
		}

		var fixedRate *float64
		if _, hasRate := colIndex["fixed_rate"]; hasRate {
			fixedRate = parseSheetFloat(cell(row, "fixed_rate"))
		}

		commissionPercent := 0.0
		if v := parseSheetFloat(cell(row, "commission_percent")); v != nil {
			commissionPercent = *v
		}

		commissionRaw := strings.ToLower(cell(row, "commission_type"))
		commissionType, ok := commissionTypeMap[commissionRaw]
		if !ok {
			commissionType = constants.COMMISSION_TYPE_SALES
		}

		result[strings.ToLower(positionName)] = models.PositionSettings{
			PositionName:      positionName,
			PaymentType:       paymentType,
			FixedRate:         fixedRate,
			CommissionPercent: commissionPercent,
			CommissionType:    commissionType,
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("на листе '%s' нет строк с должностями", sheetName)
	}

	log.Printf("Загружены условия оплаты для %d должностей с листа '%s'", len(result), sheetName)
	return result, nil
}

// parseSheetFloat разбирает число из ячейки: пробелы убираются,
// запятая трактуется как десятичный разделитель. nil для пустых значений.
func parseSheetFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return nil
	}
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
