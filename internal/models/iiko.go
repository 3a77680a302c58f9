// Файл: internal/models/iiko.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store — склад из справочника iiko.
type Store struct {
	ID   string
	Name string
	Type string
}

// CashShift — кассовая смена: границы и выручка по заказам.
type CashShift struct {
	ID        string
	OpenDate  time.Time
	CloseDate time.Time
	PayOrders float64
}

// Order — заказ из сохранённого OLAP-отчёта: время закрытия и сумма со скидкой.
type Order struct {
	CloseTime time.Time
	Sum       float64
}

// WriteoffDocument — проведённая расходная накладная.
type WriteoffDocument struct {
	ID     string
	Number string
	Date   time.Time
	Status string
	Sum    decimal.Decimal
}

// WriteoffProductDoc — акт списания продуктов со склада.
type WriteoffProductDoc struct {
	ID      string
	Date    time.Time
	StoreID string
	Sum     decimal.Decimal
}

// SegmentWriteoffs — списания продуктов, распределённые по сегментам.
type SegmentWriteoffs struct {
	Bar     decimal.Decimal
	Kitchen decimal.Decimal
}
