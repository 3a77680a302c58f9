// Файл: internal/scheduler/scheduler_test.go
package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestSyncRevenueSkipsWithoutLedger(t *testing.T) {
	// Без токена FinTablo ledger остаётся nil: задача должна
	// пропускаться, а не падать при обращении к справочникам.
	s := New(nil, nil, nil, 36.5)
	if err := s.syncRevenue(context.Background()); err != nil {
		t.Errorf("без клиента FinTablo ожидался пропуск без ошибки, получено: %v", err)
	}
}

func TestNextRunAt(t *testing.T) {
	now := time.Date(2026, time.June, 10, 2, 0, 0, 0, time.UTC)

	next := nextRunAt(now, 3, 20)
	want := time.Date(2026, time.June, 10, 3, 20, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("nextRunAt = %s, ожидалось %s (сегодня)", next, want)
	}

	next = nextRunAt(now, 1, 0)
	want = time.Date(2026, time.June, 11, 1, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("nextRunAt = %s, ожидалось %s (завтра)", next, want)
	}
}
