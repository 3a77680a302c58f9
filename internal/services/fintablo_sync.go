// Файл: internal/services/fintablo_sync.go
package services

import (
	"context"
	"log"
	"time"

	"pizzabot/internal/fintablo"
	"pizzabot/internal/iiko"
)

// SyncRevenueToLedger отправляет выручку и себестоимость месяца во внешнюю
// книгу в дельта-режиме. Окно синхронизации: с 1-го числа по вчерашний день.
func SyncRevenueToLedger(ctx context.Context, client *iiko.Client, ledger fintablo.Ledger, today time.Time, defaultYandexPercent float64) error {
	from, to, ok := fintablo.MonthWindowToYesterday(today)
	if !ok {
		log.Println("Первый день месяца: синхронизация выручки пропущена.")
		return nil
	}

	result, err := GetRevenueResult(ctx, client, from, to, defaultYandexPercent)
	if err != nil {
		return err
	}

	products, err := GetSegmentWriteoffs(ctx, client, from, to)
	if err != nil {
		log.Printf("Предупреждение: списания продуктов недоступны, синхронизируем без них: %v", err)
	}

	payloads := fintablo.BuildRevenuePayloads(result, products)
	if len(payloads) == 0 {
		log.Println("Нет ненулевых значений для отправки во внешнюю книгу.")
		return nil
	}
	return fintablo.SyncPayloads(ctx, ledger, payloads)
}
