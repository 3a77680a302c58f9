// Файл: internal/models/revenue.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueResult — итоги выручки и себестоимости за период по сегментам.
// Бар и кухня считаются по DishDiscountSumInt (со скидками), доставка Яндекс —
// по DishSumInt (без скидок), так как комиссия площадки берётся с полной суммы.
type RevenueResult struct {
	From time.Time
	To   time.Time

	BarRevenue decimal.Decimal
	BarCost    decimal.Decimal

	KitchenRevenue decimal.Decimal
	KitchenCost    decimal.Decimal

	AppRevenue decimal.Decimal
	AppCost    decimal.Decimal

	YandexGross      decimal.Decimal // сумма доставки до вычета комиссии
	YandexCommission decimal.Decimal
	YandexNet        decimal.Decimal
	YandexCost       decimal.Decimal
	YandexPercent    float64 // применённый процент комиссии

	WriteoffRevenue decimal.Decimal // расходные накладные (реализация)
	WriteoffCost    decimal.Decimal

	RowsTotal    int
	RowsExcluded int
}

// TotalRevenue — бар + кухня + приложение + доставка за вычетом комиссии.
func (r RevenueResult) TotalRevenue() decimal.Decimal {
	return r.BarRevenue.Add(r.KitchenRevenue).Add(r.AppRevenue).Add(r.YandexNet)
}

// KitchenTotalCost — себестоимость кухни вместе с доставкой: готовит кухня.
func (r RevenueResult) KitchenTotalCost() decimal.Decimal {
	return r.KitchenCost.Add(r.YandexCost)
}

// TotalCost — полная себестоимость периода.
func (r RevenueResult) TotalCost() decimal.Decimal {
	return r.BarCost.Add(r.KitchenCost).Add(r.AppCost).Add(r.YandexCost)
}
