// Файл: internal/services/revenue_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/models"
)

func salesRow(payType, place, discountSum, fullSum, cost string) models.ReportRow {
	r := models.ReportRow{
		"PayTypes":     models.StringValue(payType),
		"CookingPlace": models.StringValue(place),
	}
	if discountSum != "" {
		r[colDishDiscountSum] = models.ParseValue(discountSum)
	}
	if fullSum != "" {
		r[colDishSum] = models.ParseValue(fullSum)
	}
	if cost != "" {
		r[colProductCost] = models.ParseValue(cost)
	}
	return r
}

func TestCalculateRevenueSegments(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	rows := []models.ReportRow{
		salesRow("Наличные", "Бар", "1000", "1100", "300"),
		salesRow("Оплата картой Сбербанк", "Кухня", "2000", "2100", "700"),
		salesRow("Оплата в приложении (Loyalhub)", "Кухня", "500", "550", "150"),
		salesRow("Яндекс.оплата", "Кухня", "900", "1000", "250"),
		salesRow("(без оплаты)", "Бар", "400", "400", "100"),
	}

	result, err := CalculateRevenue(rows, from, to, 36.5)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if !result.BarRevenue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("BarRevenue = %s, ожидалось 1000", result.BarRevenue)
	}
	if !result.KitchenRevenue.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("KitchenRevenue = %s, ожидалось 2000", result.KitchenRevenue)
	}
	if !result.AppRevenue.Equal(decimal.NewFromInt(500)) {
		t.Errorf("AppRevenue = %s, ожидалось 500", result.AppRevenue)
	}
	// Доставка считается по сумме без скидки
	if !result.YandexGross.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("YandexGross = %s, ожидалось 1000", result.YandexGross)
	}
	if !result.YandexCommission.Equal(decimal.NewFromInt(365)) {
		t.Errorf("YandexCommission = %s, ожидалось 365", result.YandexCommission)
	}
	if !result.YandexNet.Equal(decimal.NewFromInt(635)) {
		t.Errorf("YandexNet = %s, ожидалось 635", result.YandexNet)
	}
	if result.RowsExcluded != 1 {
		t.Errorf("RowsExcluded = %d, ожидалось 1 (строка без оплаты)", result.RowsExcluded)
	}
	// Себестоимость доставки входит в кухонную
	if !result.KitchenTotalCost().Equal(decimal.NewFromInt(950)) {
		t.Errorf("KitchenTotalCost = %s, ожидалось 950", result.KitchenTotalCost())
	}
	if !result.TotalRevenue().Equal(decimal.NewFromInt(4135)) {
		t.Errorf("TotalRevenue = %s, ожидалось 4135", result.TotalRevenue())
	}
	if !result.TotalCost().Equal(decimal.NewFromInt(1400)) {
		t.Errorf("TotalCost = %s, ожидалось 1400", result.TotalCost())
	}
}

func TestCalculateRevenueZeroDelivery(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	rows := []models.ReportRow{
		salesRow("Наличные", "Бар", "1000", "1100", "300"),
	}

	result, err := CalculateRevenue(rows, from, to, 36.5)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !result.YandexCommission.IsZero() || !result.YandexNet.IsZero() {
		t.Errorf("без доставки комиссия и нетто должны быть нулевыми: %s / %s",
			result.YandexCommission, result.YandexNet)
	}
}

func TestCalculateRevenueMissingMeasureColumn(t *testing.T) {
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Строки с измерениями, но без колонок-мер: отчёт с изменённой схемой
	// должен давать ошибку, а не нулевую выручку.
	rows := []models.ReportRow{
		{
			"PayTypes":     models.StringValue("Наличные"),
			"CookingPlace": models.StringValue("Бар"),
			"DishCategory": models.StringValue("Кофе"),
		},
	}

	result, err := CalculateRevenue(rows, from, to, 36.5)
	if err == nil {
		t.Fatalf("ожидалась ошибка про отсутствующую колонку-меру, получено BarRevenue=%s", result.BarRevenue)
	}
	if !strings.Contains(err.Error(), colDishSum) && !strings.Contains(err.Error(), colDishDiscountSum) {
		t.Errorf("ошибка должна называть отсутствующую колонку, получено: %v", err)
	}
}

func TestCalculateRevenueEmptyReport(t *testing.T) {
	result, err := CalculateRevenue(nil,
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), 36.5)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !result.TotalRevenue().IsZero() {
		t.Errorf("пустой отчёт должен давать нулевую выручку, получено %s", result.TotalRevenue())
	}
}
