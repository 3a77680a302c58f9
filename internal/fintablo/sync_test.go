// Файл: internal/fintablo/sync_test.go
package fintablo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

// fakeLedger хранит записи в памяти и фиксирует вызовы.
type fakeLedger struct {
	items   []models.PnlItem
	created []models.LedgerPayload
	deleted []int64
}

func (f *fakeLedger) ListPnlItems(_ context.Context, _ string, categoryID, directionID int64) ([]models.PnlItem, error) {
	var result []models.PnlItem
	for _, item := range f.items {
		if item.CategoryID == categoryID && item.DirectionID == directionID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeLedger) CreatePnlItem(_ context.Context, payload models.LedgerPayload) (int64, error) {
	f.created = append(f.created, payload)
	return int64(len(f.created)), nil
}

func (f *fakeLedger) DeletePnlItem(_ context.Context, itemID int64) error {
	f.deleted = append(f.deleted, itemID)
	return nil
}

func payload(value float64) models.LedgerPayload {
	return models.LedgerPayload{
		CategoryID:  constants.FT_CATEGORY_BAR,
		DirectionID: constants.FT_DIRECTION_KLIN,
		Month:       "06.2026",
		Value:       value,
		Comment:     "Бар: выручка 01.06–15.06",
	}
}

func TestAdjustDeltaSkipsUpToDate(t *testing.T) {
	ledger := &fakeLedger{items: []models.PnlItem{
		{ID: 1, CategoryID: constants.FT_CATEGORY_BAR, DirectionID: constants.FT_DIRECTION_KLIN, Value: 300},
	}}

	adjusted, err := AdjustDelta(context.Background(), ledger, []models.LedgerPayload{payload(300)})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(adjusted) != 0 {
		t.Errorf("ожидалась пустая дельта, получено %d записей", len(adjusted))
	}
	if len(ledger.deleted) != 0 {
		t.Errorf("удаления не ожидались, удалено %d", len(ledger.deleted))
	}
}

func TestAdjustDeltaTopUp(t *testing.T) {
	ledger := &fakeLedger{items: []models.PnlItem{
		{ID: 1, CategoryID: constants.FT_CATEGORY_BAR, DirectionID: constants.FT_DIRECTION_KLIN, Value: 224.50},
	}}

	adjusted, err := AdjustDelta(context.Background(), ledger, []models.LedgerPayload{payload(300)})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(adjusted) != 1 {
		t.Fatalf("ожидалась 1 запись дельты, получено %d", len(adjusted))
	}
	if adjusted[0].Value != 75.50 {
		t.Errorf("дельта = %.2f, ожидалось 75.50", adjusted[0].Value)
	}
	if len(ledger.deleted) != 0 {
		t.Errorf("удаления не ожидались, удалено %d", len(ledger.deleted))
	}
}

func TestAdjustDeltaResetsWhenLedgerAhead(t *testing.T) {
	ledger := &fakeLedger{items: []models.PnlItem{
		{ID: 1, CategoryID: constants.FT_CATEGORY_BAR, DirectionID: constants.FT_DIRECTION_KLIN, Value: 200},
		{ID: 2, CategoryID: constants.FT_CATEGORY_BAR, DirectionID: constants.FT_DIRECTION_KLIN, Value: 150},
	}}

	adjusted, err := AdjustDelta(context.Background(), ledger, []models.LedgerPayload{payload(300)})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(ledger.deleted) != 2 {
		t.Fatalf("ожидалось удаление 2 записей, удалено %d", len(ledger.deleted))
	}
	if len(adjusted) != 1 || adjusted[0].Value != 300 {
		t.Fatalf("после сброса ожидалась полная запись 300, получено %+v", adjusted)
	}
}

func TestSyncPayloadsCreatesDelta(t *testing.T) {
	ledger := &fakeLedger{}
	if err := SyncPayloads(context.Background(), ledger, []models.LedgerPayload{payload(300)}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(ledger.created) != 1 || ledger.created[0].Value != 300 {
		t.Fatalf("ожидалась отправка полной записи 300, получено %+v", ledger.created)
	}
}

func TestBuildRevenuePayloadsSkipsZero(t *testing.T) {
	result := models.RevenueResult{
		From:       time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		BarRevenue: decimal.NewFromFloat(1500.50),
	}

	payloads := BuildRevenuePayloads(result, models.SegmentWriteoffs{})
	if len(payloads) != 1 {
		t.Fatalf("ожидалась только запись бара, получено %d", len(payloads))
	}
	p := payloads[0]
	if p.CategoryID != constants.FT_CATEGORY_BAR || p.Value != 1500.50 || p.Month != "06.2026" {
		t.Errorf("неожиданная запись: %+v", p)
	}
}

func TestMonthWindowToYesterday(t *testing.T) {
	from, to, ok := MonthWindowToYesterday(time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("ожидалось непустое окно")
	}
	if from.Day() != 1 || to.Day() != 14 {
		t.Errorf("окно %s - %s, ожидалось 1-14 июня", from, to)
	}

	if _, _, ok := MonthWindowToYesterday(time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)); ok {
		t.Error("первого числа окно должно быть пустым")
	}
}
