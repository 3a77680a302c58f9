// Файл: internal/fintablo/sync.go
package fintablo

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

// Ledger — операции внешней книги, нужные для дельта-синхронизации.
type Ledger interface {
	ListPnlItems(ctx context.Context, date string, categoryID, directionID int64) ([]models.PnlItem, error)
	CreatePnlItem(ctx context.Context, payload models.LedgerPayload) (int64, error)
	DeletePnlItem(ctx context.Context, itemID int64) error
}

// VerifyRefs сверяет используемые статьи и направления со справочниками
// внешней книги. Отсутствующие ID означают, что синхронизация будет падать.
func (c *Client) VerifyRefs(ctx context.Context) error {
	categories, err := c.ListPnlCategories(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения справочника статей: %w", err)
	}
	knownCategories := make(map[int64]bool, len(categories))
	for _, category := range categories {
		knownCategories[category.ID] = true
	}
	for _, id := range []int64{
		constants.FT_CATEGORY_BAR, constants.FT_CATEGORY_KITCHEN, constants.FT_CATEGORY_APP,
		constants.FT_CATEGORY_YANDEX, constants.FT_CATEGORY_PRODUCTION, constants.FT_CATEGORY_COST,
		constants.FT_CATEGORY_WRITE_OFF_PRODUCTS,
	} {
		if !knownCategories[id] {
			log.Printf("Предупреждение: статья FinTablo %d не найдена в справочнике", id)
		}
	}

	directions, err := c.ListDirections(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения справочника направлений: %w", err)
	}
	knownDirections := make(map[int64]bool, len(directions))
	for _, direction := range directions {
		knownDirections[direction.ID] = true
	}
	for _, id := range []int64{constants.FT_DIRECTION_KLIN, constants.FT_DIRECTION_PRODUCTION} {
		if !knownDirections[id] {
			log.Printf("Предупреждение: направление FinTablo %d не найдено в справочнике", id)
		}
	}
	return nil
}

// BuildRevenuePayloads собирает целевые записи месяца по итогам выручки.
// Нулевые значения отбрасываются, чтобы не плодить пустые записи.
func BuildRevenuePayloads(result models.RevenueResult, products models.SegmentWriteoffs) []models.LedgerPayload {
	month := result.To.Format("01.2006")
	commentRange := fmt.Sprintf("%s–%s", result.From.Format("02.01"), result.To.Format("02.01"))

	// Общая себестоимость основной точки: бар + кухня (доставка входит в кухню)
	klinCost := result.BarCost.Add(result.KitchenTotalCost()).Add(result.AppCost)

	entries := []models.LedgerPayload{
		{
			CategoryID:  constants.FT_CATEGORY_BAR,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(result.BarRevenue.InexactFloat64()),
			Comment:     "Бар: выручка " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_KITCHEN,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(result.KitchenRevenue.InexactFloat64()),
			Comment:     "Кухня: выручка " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_APP,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(result.AppRevenue.InexactFloat64()),
			Comment:     "Приложение: выручка " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_YANDEX,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(result.YandexNet.InexactFloat64()),
			Comment:     "Яндекс: выручка " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_PRODUCTION,
			DirectionID: constants.FT_DIRECTION_PRODUCTION,
			Month:       month,
			Value:       round2(result.WriteoffRevenue.InexactFloat64()),
			Comment:     "Производство: расходные накладные " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_COST,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(klinCost.InexactFloat64()),
			Comment:     "Сырьевая себестоимость (Клиническая) " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_COST,
			DirectionID: constants.FT_DIRECTION_PRODUCTION,
			Month:       month,
			Value:       round2(result.WriteoffCost.InexactFloat64()),
			Comment:     "Себестоимость расходных накладных " + commentRange,
		},
		{
			CategoryID:  constants.FT_CATEGORY_WRITE_OFF_PRODUCTS,
			DirectionID: constants.FT_DIRECTION_KLIN,
			Month:       month,
			Value:       round2(products.Bar.Add(products.Kitchen).InexactFloat64()),
			Comment:     "Списания продуктов (бар+кухня) " + commentRange,
		},
	}

	payloads := make([]models.LedgerPayload, 0, len(entries))
	for _, e := range entries {
		if e.Value != 0 {
			payloads = append(payloads, e)
		}
	}
	return payloads
}

// AdjustDelta сравнивает целевые записи с уже существующими за месяц.
// Если во внешней книге сумма больше целевой, записи месяца удаляются и
// целевая отправляется заново. При совпадении (допуск 0.01) запись
// пропускается, иначе отправляется только разница с пометкой в комментарии.
func AdjustDelta(ctx context.Context, ledger Ledger, payloads []models.LedgerPayload) ([]models.LedgerPayload, error) {
	var adjusted []models.LedgerPayload
	for _, payload := range payloads {
		existing, err := ledger.ListPnlItems(ctx, payload.Month, payload.CategoryID, payload.DirectionID)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения записей '%s': %w", payload.Comment, err)
		}

		existingSum := 0.0
		for _, item := range existing {
			existingSum += item.Value
		}

		if existingSum-payload.Value > 0.01 {
			log.Printf("Сброс '%s': во внешней книге %.2f больше целевых %.2f, удаляем и пишем заново",
				payload.Comment, existingSum, payload.Value)
			for _, item := range existing {
				if item.ID == 0 {
					continue
				}
				if errDel := ledger.DeletePnlItem(ctx, item.ID); errDel != nil {
					log.Printf("Не удалось удалить запись id=%d: %v", item.ID, errDel)
				}
			}
			adjusted = append(adjusted, payload)
			continue
		}

		diff := round2(payload.Value - existingSum)
		if math.Abs(diff) < 0.01 {
			log.Printf("Пропуск '%s': значение актуально (%.2f)", payload.Comment, existingSum)
			continue
		}

		delta := payload
		delta.Value = diff
		delta.Comment = fmt.Sprintf("%s (дельта до %.2f)", payload.Comment, payload.Value)
		adjusted = append(adjusted, delta)
	}
	return adjusted, nil
}

// SyncPayloads применяет дельта-режим и отправляет получившиеся записи.
// Ошибка отправки одной записи не прерывает остальные.
func SyncPayloads(ctx context.Context, ledger Ledger, payloads []models.LedgerPayload) error {
	adjusted, err := AdjustDelta(ctx, ledger, payloads)
	if err != nil {
		return err
	}
	if len(adjusted) == 0 {
		log.Println("Все записи внешней книги в актуальном значении, отправка не требуется.")
		return nil
	}

	var lastErr error
	for _, payload := range adjusted {
		id, errCreate := ledger.CreatePnlItem(ctx, payload)
		if errCreate != nil {
			log.Printf("Не удалось отправить '%s': %v", payload.Comment, errCreate)
			lastErr = errCreate
			continue
		}
		log.Printf("Отправлено '%s' %.2f за %s (id=%d)", payload.Comment, payload.Value, payload.Month, id)
	}
	return lastErr
}

// MonthWindowToYesterday возвращает окно с 1-го числа месяца по вчера.
// В первый день месяца окно пустое, ok == false.
func MonthWindowToYesterday(today time.Time) (time.Time, time.Time, bool) {
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	end := today.AddDate(0, 0, -1)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, today.Location())
	if end.Before(start) {
		return start, end, false
	}
	return start, end, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
