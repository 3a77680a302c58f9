// Файл: internal/services/consolidated.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/db"
	"pizzabot/internal/gsheets"
	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// ConsolidatedData — сводный P&L за месяц до вчерашнего дня.
type ConsolidatedData struct {
	From               time.Time
	To                 time.Time
	RevenueCore        decimal.Decimal
	WriteoffRevenue    decimal.Decimal
	TotalRevenue       decimal.Decimal
	KitchenCost        decimal.Decimal
	KitchenCostPercent *float64
	KitchenPlanPercent *float64
	BarCost            decimal.Decimal
	BarCostPercent     *float64
	BarPlanPercent     *float64
	CostTotal          decimal.Decimal
	PurchaseTotal      decimal.Decimal
	PurchaseKitchen    decimal.Decimal
	PurchaseBar        decimal.Decimal
	PurchaseSupplies   decimal.Decimal
	PurchaseTmc        decimal.Decimal
	SuppliesTotal      decimal.Decimal
	FotTotal           decimal.Decimal
	DeptSalaries       map[string]float64
	ResultCostBased    decimal.Decimal
	ResultPurchase     decimal.Decimal
}

// ResolveMonthPeriod возвращает период сводного отчёта: с первого числа
// по вчерашний день. Первого числа данных за месяц ещё нет.
func ResolveMonthPeriod(today time.Time) (time.Time, time.Time, error) {
	today = dateOnly(today)
	if today.Day() == 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("за текущий месяц ещё нет данных, запросите отчёт завтра")
	}
	to := today.AddDate(0, 0, -1)
	from := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	return from, to, nil
}

// BuildConsolidatedReport собирает сводный отчёт за период: выручку,
// себестоимость, закупки, ФОТ по отделам и два варианта результата.
func BuildConsolidatedReport(ctx context.Context, client *iiko.Client, sheetsClient *gsheets.Client, from, to time.Time, defaultYandexPercent float64) (*ConsolidatedData, error) {
	revenue, err := GetRevenueResult(ctx, client, from, to, defaultYandexPercent)
	if err != nil {
		return nil, err
	}

	summary, err := FetchPurchaseSummary(ctx, client, from, to)
	if err != nil {
		log.Printf("Предупреждение: закупки для сводного отчёта недоступны: %v", err)
		summary = models.NewPurchaseSummary()
	}

	writeoffs, err := GetSegmentWriteoffs(ctx, client, from, to)
	if err != nil {
		log.Printf("Предупреждение: списания для сводного отчёта недоступны: %v", err)
	}

	lines, err := GetPayrollLines(ctx, client, sheetsClient, from, to)
	if err != nil {
		log.Printf("Предупреждение: зарплаты для сводного отчёта недоступны: %v", err)
	}
	deptSalaries := salariesByDepartment(lines)

	data := &ConsolidatedData{
		From:             from,
		To:               to,
		WriteoffRevenue:  revenue.WriteoffRevenue,
		PurchaseKitchen:  summary.StoreTotals["Кухня Пиццерия"],
		PurchaseBar:      summary.StoreTotals["Бар Пиццерия"],
		PurchaseSupplies: summary.StoreTotals["Хоз. товары Пиццерия"],
		PurchaseTmc:      summary.StoreTotals["ТМЦ Пиццерия"],
		PurchaseTotal:    summary.TotalAmount,
		DeptSalaries:     deptSalaries,
	}

	data.RevenueCore = revenue.BarRevenue.Add(revenue.KitchenRevenue).Add(revenue.AppRevenue).Add(revenue.YandexNet)
	data.TotalRevenue = data.RevenueCore.Add(data.WriteoffRevenue)
	data.SuppliesTotal = data.PurchaseSupplies.Add(data.PurchaseTmc)

	// Фактическая себестоимость сегментов со списаниями
	data.KitchenCost = revenue.KitchenTotalCost().Add(revenue.WriteoffCost).Add(writeoffs.Kitchen)
	data.BarCost = revenue.BarCost.Add(writeoffs.Bar)
	data.CostTotal = data.KitchenCost.Add(data.BarCost)
	data.KitchenCostPercent = percentOf(data.KitchenCost, data.TotalRevenue)
	data.BarCostPercent = percentOf(data.BarCost, data.TotalRevenue)

	plans, err := GetCostPlanSummary(from, to)
	if err != nil {
		log.Printf("Предупреждение: планы себестоимости недоступны: %v", err)
	} else {
		data.KitchenPlanPercent = plans.Aggregated["kitchen"]
		data.BarPlanPercent = plans.Aggregated["bar"]
	}

	for _, v := range deptSalaries {
		data.FotTotal = data.FotTotal.Add(decimal.NewFromFloat(v))
	}

	purchaseKitchenBar := data.PurchaseKitchen.Add(data.PurchaseBar)
	data.ResultCostBased = data.TotalRevenue.Sub(data.CostTotal).Sub(data.FotTotal).Sub(data.SuppliesTotal)
	data.ResultPurchase = data.TotalRevenue.Sub(purchaseKitchenBar).Sub(data.FotTotal).Sub(data.SuppliesTotal)

	return data, nil
}

// salariesByDepartment агрегирует итоги зарплат по отделам.
// Должности без привязки к отделу попадают в "не указан".
func salariesByDepartment(lines []models.PayrollLine) map[string]float64 {
	departments, err := db.GetPositionDepartments()
	if err != nil {
		log.Printf("Предупреждение: справочник отделов недоступен: %v", err)
		departments = map[string]string{}
	}

	result := make(map[string]float64)
	for _, line := range lines {
		dept, ok := departments[strings.ToLower(line.PositionName)]
		if !ok || dept == "" {
			dept = "не указан"
		}
		result[dept] += line.Total
	}
	return result
}

// percentOf возвращает долю amount от base в процентах, nil при нулевой базе.
func percentOf(amount, base decimal.Decimal) *float64 {
	if base.IsZero() {
		return nil
	}
	v, _ := amount.Div(base).Mul(decimal.NewFromInt(100)).Float64()
	return &v
}
