// Файл: internal/formatters/report_formatters.go
package formatters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"pizzabot/internal/models"
	"pizzabot/internal/services"
	"pizzabot/internal/utils"
)

// FormatRevenueReport форматирует отчёт по выручке и себестоимости для Telegram.
func FormatRevenueReport(result models.RevenueResult) string {
	var b strings.Builder
	b.WriteString("💰 *ОТЧЁТ ПО ВЫРУЧКЕ*\n")
	b.WriteString("Период: " + utils.FormatPeriod(result.From, result.To) + "\n\n")

	b.WriteString("🍹 *БАР*\n")
	b.WriteString("  Выручка: " + utils.FormatMoney(result.BarRevenue) + "\n")
	b.WriteString("  Себестоимость: " + utils.FormatMoney(result.BarCost) + "\n\n")

	b.WriteString("🍕 *КУХНЯ* (Кухня + Пицца)\n")
	b.WriteString("  Выручка: " + utils.FormatMoney(result.KitchenRevenue) + "\n")
	b.WriteString("  Себестоимость: " + utils.FormatMoney(result.KitchenCost) + "\n\n")

	b.WriteString("📱 *ПРИЛОЖЕНИЕ*\n")
	b.WriteString("  Выручка: " + utils.FormatMoney(result.AppRevenue) + "\n")
	b.WriteString("  Себестоимость: " + utils.FormatMoney(result.AppCost) + "\n\n")

	b.WriteString("🚗 *ДОСТАВКА* (Яндекс)\n")
	b.WriteString("  Выручка до вычета: " + utils.FormatMoney(result.YandexGross) + "\n")
	b.WriteString(fmt.Sprintf("  Комиссия (%.1f%%): -%s\n", result.YandexPercent, utils.FormatMoney(result.YandexCommission)))
	b.WriteString("  Выручка после вычета: " + utils.FormatMoney(result.YandexNet) + "\n\n")

	if !result.WriteoffRevenue.IsZero() || !result.WriteoffCost.IsZero() {
		b.WriteString("📦 *РАСХОДНЫЕ НАКЛАДНЫЕ*\n")
		b.WriteString("  Реализация: " + utils.FormatMoney(result.WriteoffRevenue) + "\n")
		b.WriteString("  Себестоимость: " + utils.FormatMoney(result.WriteoffCost) + "\n\n")
	}

	b.WriteString("💵 *ИТОГО ВЫРУЧКА*\n")
	b.WriteString("  " + utils.FormatMoney(result.TotalRevenue()) + "\n")
	b.WriteString("📦 *ИТОГО СЕБЕСТОИМОСТЬ*\n")
	b.WriteString("  " + utils.FormatMoney(result.TotalCost()) + "\n")
	return b.String()
}

// FormatPurchasesReport форматирует сверку закупок: итоги по складам,
// поставщикам и отклонения от фактической себестоимости.
func FormatPurchasesReport(summary *models.PurchaseSummary, insights *models.PurchaseInsights, from, to string) string {
	var b strings.Builder
	b.WriteString("🛒 *ЗАКУПКИ*\n")
	b.WriteString("Период: " + from + " — " + to + "\n\n")

	if summary == nil || summary.RowsCount == 0 {
		b.WriteString("Закупок за период не найдено.\n")
		if summary != nil && summary.DeletedRows > 0 {
			b.WriteString(fmt.Sprintf("Отфильтровано удалённых документов: %d\n", summary.DeletedRows))
		}
		return b.String()
	}

	b.WriteString("*По складам:*\n")
	for _, store := range sortedKeys(summary.StoreTotals) {
		b.WriteString(fmt.Sprintf("  • %s: %s\n", store, utils.FormatMoney(summary.StoreTotals[store])))
	}

	if len(summary.SupplierTotals) > 0 {
		b.WriteString("\n*Крупнейшие поставщики:*\n")
		suppliers := sortedKeys(summary.SupplierTotals)
		sort.Slice(suppliers, func(i, j int) bool {
			return summary.SupplierTotals[suppliers[i]].GreaterThan(summary.SupplierTotals[suppliers[j]])
		})
		if len(suppliers) > 10 {
			suppliers = suppliers[:10]
		}
		for _, supplier := range suppliers {
			b.WriteString(fmt.Sprintf("  • %s: %s\n", supplier, utils.FormatMoney(summary.SupplierTotals[supplier])))
		}
	}

	b.WriteString("\n*Итого закуп:* " + utils.FormatMoney(summary.TotalAmount) + "\n")
	if summary.DeletedRows > 0 {
		b.WriteString(fmt.Sprintf("Отфильтровано удалённых документов: %d\n", summary.DeletedRows))
	}

	if insights != nil && len(insights.Deviation) > 0 {
		b.WriteString("\n📐 *Отклонение закупа от себестоимости:*\n")
		labels := map[string]string{"kitchen": "Кухня", "bar": "Бар"}
		for _, key := range []string{"kitchen", "bar"} {
			dev, ok := insights.Deviation[key]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: закуп %.1f%%, себестоимость %.1f%%, отклонение %+.1f п.п.\n",
				labels[key], dev.PurchasePercent, dev.CostPercent, dev.Deviation))
		}
	}
	return b.String()
}

// FormatSalaryReport форматирует расчёт зарплаты, сгруппированный по должностям.
// totalRevenue — выручка кассовых смен за период, nil если недоступна.
func FormatSalaryReport(lines []models.PayrollLine, from, to string, totalRevenue *float64) string {
	if len(lines) == 0 {
		return "⚠️ Нет данных по зарплатам за указанный период"
	}

	byPosition := make(map[string][]models.PayrollLine)
	for _, line := range lines {
		byPosition[line.PositionName] = append(byPosition[line.PositionName], line)
	}
	positions := make([]string, 0, len(byPosition))
	for position := range byPosition {
		positions = append(positions, position)
	}
	sort.Strings(positions)

	var b strings.Builder
	b.WriteString("💰 *Отчёт по зарплатам*\n")
	b.WriteString("📅 Период: " + from + " — " + to + "\n")
	if totalRevenue != nil {
		b.WriteString("💰 Общая выручка за период: " + utils.FormatMoneyFloat(*totalRevenue) + "\n")
	}

	totalSum := 0.0
	for _, position := range positions {
		b.WriteString("\n👥 *" + position + "*\n")
		positionTotal := 0.0

		group := byPosition[position]
		sort.Slice(group, func(i, j int) bool { return group[i].EmployeeName < group[j].EmployeeName })
		for _, line := range group {
			b.WriteString("  • " + line.EmployeeName + "\n")
			b.WriteString(fmt.Sprintf("    ⏱ Часы: %.1f ч (%d дн.)\n", line.Hours, line.WorkDays))
			b.WriteString("    💵 Оплата: " + utils.FormatMoneyFloat(line.BasePay) + "\n")
			if line.Bonus > 0 {
				b.WriteString(fmt.Sprintf("    📈 Бонус: +%s (база: %s)\n",
					utils.FormatMoneyFloat(line.Bonus), utils.FormatMoneyFloat(line.Revenue)))
			}
			if line.Penalty > 0 {
				b.WriteString("    ⚠️ Штрафы: -" + utils.FormatMoneyFloat(line.Penalty) + "\n")
			}
			b.WriteString("    ✅ *Итого: " + utils.FormatMoneyFloat(line.Total) + "*\n")

			positionTotal += line.Total
			totalSum += line.Total
		}
		b.WriteString("  💼 *Итого по должности: " + utils.FormatMoneyFloat(positionTotal) + "*\n")
	}

	b.WriteString("\n💰 *ИТОГО К ВЫПЛАТЕ: " + utils.FormatMoneyFloat(totalSum) + "*\n")
	return b.String()
}

// planNote дописывает к фактическому проценту себестоимости плановый
// и отклонение в процентных пунктах, если план на период задан.
func planNote(actual, plan *float64) string {
	if plan == nil {
		return ""
	}
	note := fmt.Sprintf(", план %.1f%%", *plan)
	if actual != nil {
		note += fmt.Sprintf(", %+.1f п.п.", *actual-*plan)
	}
	return note
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FormatConsolidatedReport форматирует сводный P&L для Telegram.
func FormatConsolidatedReport(data *services.ConsolidatedData) string {
	percent := func(amount decimal.Decimal) string {
		if data.TotalRevenue.IsZero() {
			return "—"
		}
		v, _ := amount.Div(data.TotalRevenue).Mul(decimal.NewFromInt(100)).Float64()
		return fmt.Sprintf("%.1f%%", v)
	}

	var b strings.Builder
	b.WriteString("📊 *Сводный отчёт*\n")
	b.WriteString("Период: " + utils.FormatPeriod(data.From, data.To) + "\n\n")

	b.WriteString("💰 *Выручка*: " + utils.FormatMoney(data.TotalRevenue) + "\n")
	b.WriteString("  • Основная (бар + кухня + приложение + доставка): " + utils.FormatMoney(data.RevenueCore) + "\n")
	b.WriteString("  • Расходные накладные: " + utils.FormatMoney(data.WriteoffRevenue) + "\n\n")

	b.WriteString("📉 *Расходы*\n")
	b.WriteString(fmt.Sprintf("• Себестоимость (кухня + бар): %s (%s)\n", utils.FormatMoney(data.CostTotal), percent(data.CostTotal)))
	b.WriteString(fmt.Sprintf("  Кухня: %s (%s%s)\n", utils.FormatMoney(data.KitchenCost),
		utils.FormatPercent(data.KitchenCostPercent), planNote(data.KitchenCostPercent, data.KitchenPlanPercent)))
	b.WriteString(fmt.Sprintf("  Бар: %s (%s%s)\n", utils.FormatMoney(data.BarCost),
		utils.FormatPercent(data.BarCostPercent), planNote(data.BarCostPercent, data.BarPlanPercent)))
	b.WriteString(fmt.Sprintf("• ФОТ (суммарно): %s (%s)\n", utils.FormatMoney(data.FotTotal), percent(data.FotTotal)))
	b.WriteString(fmt.Sprintf("• ТМЦ + хознужды: %s (%s)\n", utils.FormatMoney(data.SuppliesTotal), percent(data.SuppliesTotal)))

	purchaseKitchenBar := data.PurchaseKitchen.Add(data.PurchaseBar)
	b.WriteString(fmt.Sprintf("• Закуп (Кухня + Бар): %s (%s)\n", utils.FormatMoney(purchaseKitchenBar), percent(purchaseKitchenBar)))
	b.WriteString(fmt.Sprintf("  Всего закуп по складам: %s (%s)\n", utils.FormatMoney(data.PurchaseTotal), percent(data.PurchaseTotal)))

	var suppliesParts []string
	if !data.PurchaseSupplies.IsZero() {
		suppliesParts = append(suppliesParts, "хозы "+utils.FormatMoney(data.PurchaseSupplies))
	}
	if !data.PurchaseTmc.IsZero() {
		suppliesParts = append(suppliesParts, "ТМЦ "+utils.FormatMoney(data.PurchaseTmc))
	}
	if len(suppliesParts) > 0 {
		b.WriteString("  " + strings.Join(suppliesParts, " / ") + "\n")
	}

	b.WriteString("\n🧮 *Результат*\n")
	b.WriteString("• Выручка − себестоимость − ФОТ − ТМЦ/хозы: " + utils.FormatMoney(data.ResultCostBased) + "\n")
	b.WriteString("• Выручка − закуп (Кухня+Бар) − ФОТ − ТМЦ/хозы: " + utils.FormatMoney(data.ResultPurchase) + "\n")
	return b.String()
}
