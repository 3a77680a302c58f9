// Файл: internal/services/insights.go
package services

import (
	"context"
	"log"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// FetchPurchaseSummary возвращает итоги закупок по складам пиццерии
// (тип счёта INVENTORY_ASSETS).
func FetchPurchaseSummary(ctx context.Context, client *iiko.Client, from, to time.Time) (*models.PurchaseSummary, error) {
	return GetPurchaseSummary(ctx, client, from, to, PurchaseFilter{
		StoreNames:   constants.PurchaseStoreNames,
		AccountTypes: constants.PurchaseAccountTypes,
	})
}

// CalculatePurchaseInsights считает доли закупок от базы выручки и отклонения
// от фактической себестоимости по сегментам. База кухни включает доставку и
// реализацию по накладным, база бара — только выручку бара.
// nil означает отсутствие закупок за период.
func CalculatePurchaseInsights(summary *models.PurchaseSummary, revenue models.RevenueResult, writeoffs models.SegmentWriteoffs) *models.PurchaseInsights {
	kitchenPurchase := summary.StoreTotals["Кухня Пиццерия"].InexactFloat64()
	barPurchase := summary.StoreTotals["Бар Пиццерия"].InexactFloat64()
	suppliesPurchase := summary.StoreTotals["Хоз. товары Пиццерия"].InexactFloat64()
	tmcPurchase := summary.StoreTotals["ТМЦ Пиццерия"].InexactFloat64()

	if kitchenPurchase == 0 && barPurchase == 0 && suppliesPurchase == 0 && tmcPurchase == 0 {
		return nil
	}

	barRevenue := revenue.BarRevenue.InexactFloat64()
	kitchenRevenue := revenue.KitchenRevenue.InexactFloat64()
	deliveryRevenue := revenue.YandexNet.InexactFloat64()
	writeoffRevenue := revenue.WriteoffRevenue.InexactFloat64()
	totalBase := barRevenue + kitchenRevenue + deliveryRevenue + writeoffRevenue

	kitchenBase := kitchenRevenue + deliveryRevenue + writeoffRevenue
	barBase := barRevenue

	share := make(map[string]float64)
	registerShare := func(key string, purchase, base float64) {
		if purchase == 0 {
			return
		}
		share[key+"_purchase"] = purchase
		share[key+"_base"] = base
		if base != 0 {
			share[key+"_percent"] = purchase / base * 100.0
		}
	}
	registerShare("kitchen", kitchenPurchase, kitchenBase)
	registerShare("bar", barPurchase, barBase)
	registerShare("supplies", suppliesPurchase, totalBase)
	registerShare("tmc", tmcPurchase, totalBase)
	registerShare("total", kitchenPurchase+barPurchase+suppliesPurchase+tmcPurchase, totalBase)

	if len(share) == 0 {
		return nil
	}

	insights := &models.PurchaseInsights{Share: share, Deviation: make(map[string]models.SegmentDeviation)}

	// Фактическая себестоимость сегмента: кухня с доставкой и накладными,
	// бар со списаниями бара. Отклонение считается в процентных пунктах.
	kitchenCost := revenue.KitchenTotalCost().InexactFloat64() +
		revenue.WriteoffCost.InexactFloat64() +
		writeoffs.Kitchen.InexactFloat64()
	barCost := revenue.BarCost.InexactFloat64() + writeoffs.Bar.InexactFloat64()

	registerDeviation := func(key string, costValue float64) {
		base := share[key+"_base"]
		purchasePercent, ok := share[key+"_percent"]
		if base == 0 || !ok {
			return
		}
		costPercent := costValue / base * 100.0
		insights.Deviation[key] = models.SegmentDeviation{
			PurchasePercent: purchasePercent,
			CostPercent:     costPercent,
			Deviation:       purchasePercent - costPercent,
			CostValue:       costValue,
		}
	}
	registerDeviation("kitchen", kitchenCost)
	registerDeviation("bar", barCost)

	if len(insights.Deviation) == 0 && len(insights.Share) == 0 {
		return nil
	}
	log.Printf("Аналитика закупок: %d долей, %d отклонений", len(insights.Share), len(insights.Deviation))
	return insights
}
