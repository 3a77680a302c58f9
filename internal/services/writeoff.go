// Файл: internal/services/writeoff.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// GetWriteoffTotals возвращает итоги расходных накладных за период:
// выручку из проведённых документов и себестоимость из OLAP по проводкам
// (тип транзакции OUTGOING_INVOICE).
func GetWriteoffTotals(ctx context.Context, client *iiko.Client, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	documents, err := client.OutgoingInvoices(ctx, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	revenue := decimal.Zero
	for _, doc := range documents {
		revenue = revenue.Add(doc.Sum)
	}

	cost, err := getWriteoffCostOlap(ctx, client, from, to)
	if err != nil {
		log.Printf("Предупреждение: не удалось получить себестоимость накладных: %v", err)
		cost = decimal.Zero
	}
	return revenue, cost, nil
}

// getWriteoffCostOlap возвращает себестоимость расходных накладных
// из OLAP-отчёта по проводкам.
func getWriteoffCostOlap(ctx context.Context, client *iiko.Client, from, to time.Time) (decimal.Decimal, error) {
	rows, err := client.Olap(ctx, iiko.OlapQuery{
		Report:    "TRANSACTIONS",
		From:      from,
		To:        to,
		GroupRows: []string{"TransactionType"},
		Agrs:      []string{"Sum"},
		Filters:   [][2]string{{"TransactionType", "OUTGOING_INVOICE"}},
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка OLAP по проводкам накладных: %w", err)
	}

	for _, row := range rows {
		if row.Str("TransactionType") == "OUTGOING_INVOICE" {
			return row.Dec("Sum"), nil
		}
	}
	return decimal.Zero, nil
}

// GetSegmentWriteoffs возвращает суммы списаний продуктов по сегментам
// (бар и кухня). Документы и позиции, относящиеся к учредителям, исключаются.
// Название склада берётся из локального справочника, при его отсутствии —
// из полей документа.
func GetSegmentWriteoffs(ctx context.Context, client *iiko.Client, from, to time.Time) (models.SegmentWriteoffs, error) {
	var totals models.SegmentWriteoffs

	docs, err := client.WriteoffDocuments(ctx, from, to)
	if err != nil {
		return totals, err
	}

	storeNames, err := db.GetStoreNames()
	if err != nil {
		log.Printf("Предупреждение: справочник складов недоступен, используем названия из документов: %v", err)
		storeNames = map[string]string{}
	}

	skippedFounders := 0
	for _, doc := range docs {
		if isFounders(doc.AccountName, doc.Comment) {
			skippedFounders++
			continue
		}

		label := strings.ToLower(strings.TrimSpace(doc.StoreName))
		if name, ok := storeNames[doc.StoreID]; ok && name != "" {
			label = strings.ToLower(strings.TrimSpace(name))
		}

		docSum := decimal.Zero
		for _, item := range doc.Items {
			if isFounders(item.Comment) {
				skippedFounders++
				continue
			}
			docSum = docSum.Add(item.Cost)
		}

		switch {
		case strings.Contains(label, constants.BarStoreMarker):
			totals.Bar = totals.Bar.Add(docSum)
		case strings.Contains(label, constants.KitchenStoreMarker), strings.Contains(label, constants.PizzaStoreMarker):
			totals.Kitchen = totals.Kitchen.Add(docSum)
		}
	}

	log.Printf("Списания продуктов: бар %s, кухня %s (пропущено по учредителям: %d)",
		totals.Bar.StringFixed(2), totals.Kitchen.StringFixed(2), skippedFounders)
	return totals, nil
}

// isFounders определяет, относится ли документ или позиция к учредителям.
func isFounders(fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), constants.FounderStoreMarker) {
			return true
		}
	}
	return false
}
