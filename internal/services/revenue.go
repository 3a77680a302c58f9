// Файл: internal/services/revenue.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// Колонки-меры отчёта продаж
const (
	colDishSum         = "DishSumInt"
	colDishDiscountSum = "DishDiscountSumInt"
	colProductCost     = "ProductCostBase.ProductCost"
)

// FetchRevenueRows запрашивает OLAP-отчёт продаж за период с фильтрами
// по типам оплат и категориям, с отсечением удалённых заказов на стороне iiko.
func FetchRevenueRows(ctx context.Context, client *iiko.Client, from, to time.Time) ([]models.ReportRow, error) {
	filters := [][2]string{
		{"DeletedWithWriteoff", "NOT_DELETED"},
		{"OrderDeleted", "NOT_DELETED"},
	}
	for _, payType := range constants.RequestedPayTypes {
		filters = append(filters, [2]string{"PayTypes", payType})
	}
	for category := range constants.BarAllowedCategories {
		filters = append(filters, [2]string{"DishCategory", category})
	}

	rows, err := client.Olap(ctx, iiko.OlapQuery{
		Report:    "SALES",
		From:      from,
		To:        to,
		GroupRows: []string{"CookingPlaceType", "PayTypes", "DishCategory", "DishName", "DeletedWithWriteoff", "OrderDeleted"},
		Agrs:      []string{colDishSum, colDishDiscountSum, colProductCost},
		Filters:   filters,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчёта продаж: %w", err)
	}
	log.Printf("Отчёт продаж %s - %s: %d строк", from.Format("02.01.2006"), to.Format("02.01.2006"), len(rows))
	return rows, nil
}

// CalculateRevenue распределяет строки отчёта по сегментам и считает выручку
// и себестоимость. Бар и кухня — по сумме со скидкой, доставка — по сумме
// без скидки, комиссия площадки вычитается из неё.
func CalculateRevenue(rows []models.ReportRow, from, to time.Time, yandexPercent float64) (models.RevenueResult, error) {
	result := models.RevenueResult{From: from, To: to, YandexPercent: yandexPercent, RowsTotal: len(rows)}

	classifier, err := NewClassifier(rows)
	if err != nil {
		return result, err
	}

	// Состав колонок одинаков во всех строках ответа OLAP,
	// поэтому колонки-меры проверяются по первой строке.
	if len(rows) > 0 {
		for _, col := range []string{colDishSum, colDishDiscountSum, colProductCost} {
			if !rows[0].Has(col) {
				return result, fmt.Errorf("в отчёте продаж отсутствует колонка %s", col)
			}
		}
	}

	for _, row := range rows {
		switch classifier.Classify(row) {
		case SegmentBar:
			result.BarRevenue = result.BarRevenue.Add(row.Dec(colDishDiscountSum))
			result.BarCost = result.BarCost.Add(row.Dec(colProductCost))
		case SegmentKitchen:
			result.KitchenRevenue = result.KitchenRevenue.Add(row.Dec(colDishDiscountSum))
			result.KitchenCost = result.KitchenCost.Add(row.Dec(colProductCost))
		case SegmentApp:
			result.AppRevenue = result.AppRevenue.Add(row.Dec(colDishDiscountSum))
			result.AppCost = result.AppCost.Add(row.Dec(colProductCost))
		case SegmentDelivery:
			result.YandexGross = result.YandexGross.Add(row.Dec(colDishSum))
			result.YandexCost = result.YandexCost.Add(row.Dec(colProductCost))
		default:
			result.RowsExcluded++
		}
	}

	feeRate := decimal.NewFromFloat(yandexPercent).Div(decimal.NewFromInt(100))
	result.YandexCommission = result.YandexGross.Mul(feeRate)
	result.YandexNet = result.YandexGross.Sub(result.YandexCommission)

	return result, nil
}

// GetRevenueResult собирает полный результат выручки за период: отчёт продаж,
// процент комиссии из настроек и итоги расходных накладных.
func GetRevenueResult(ctx context.Context, client *iiko.Client, from, to time.Time, defaultYandexPercent float64) (models.RevenueResult, error) {
	rows, err := FetchRevenueRows(ctx, client, from, to)
	if err != nil {
		return models.RevenueResult{}, err
	}

	yandexPercent, err := db.GetFloatSetting(constants.SETTING_YANDEX_COMMISSION, defaultYandexPercent)
	if err != nil {
		log.Printf("Предупреждение: не удалось прочитать комиссию Яндекса из настроек: %v. Используется %.1f.", err, defaultYandexPercent)
		yandexPercent = defaultYandexPercent
	}

	result, err := CalculateRevenue(rows, from, to, yandexPercent)
	if err != nil {
		return result, err
	}

	// Итоги расходных накладных: выручка из документов, себестоимость из OLAP
	writeoffRevenue, writeoffCost, err := GetWriteoffTotals(ctx, client, from, to)
	if err != nil {
		log.Printf("Предупреждение: не удалось получить расходные накладные: %v", err)
	} else {
		result.WriteoffRevenue = writeoffRevenue
		result.WriteoffCost = writeoffCost
	}

	return result, nil
}
