// Файл: internal/models/purchase.go
package models

import "github.com/shopspring/decimal"

// StoreSupplierPair — ключ агрегации закупок склад+поставщик.
type StoreSupplierPair struct {
	Store    string
	Supplier string
}

// PurchaseSummary — итоги приходных накладных за период.
type PurchaseSummary struct {
	StoreTotals    map[string]decimal.Decimal
	SupplierTotals map[string]decimal.Decimal
	PairTotals     map[StoreSupplierPair]decimal.Decimal
	TotalAmount    decimal.Decimal
	RowsCount      int
	DeletedRows    int
}

// NewPurchaseSummary создаёт пустой итог с инициализированными картами.
func NewPurchaseSummary() *PurchaseSummary {
	return &PurchaseSummary{
		StoreTotals:    make(map[string]decimal.Decimal),
		SupplierTotals: make(map[string]decimal.Decimal),
		PairTotals:     make(map[StoreSupplierPair]decimal.Decimal),
	}
}

// SegmentDeviation — сравнение доли закупок и доли себестоимости сегмента.
type SegmentDeviation struct {
	PurchasePercent float64
	CostPercent     float64
	Deviation       float64 // процентные пункты, закупки минус себестоимость
	CostValue       float64
}

// PurchaseInsights — аналитика закупок: доли от базы выручки и отклонения.
type PurchaseInsights struct {
	Share     map[string]float64 // kitchen_percent, bar_percent, supplies_percent, tmc_percent, total_percent и их базы
	Deviation map[string]SegmentDeviation
}
