// Файл: internal/services/consolidated_test.go
package services

import (
	"testing"
	"time"
)

func TestResolveMonthPeriod(t *testing.T) {
	from, to, err := ResolveMonthPeriod(time.Date(2026, time.August, 15, 13, 45, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if from.Day() != 1 || from.Month() != time.August {
		t.Errorf("from = %s, ожидалось 1 августа", from)
	}
	if to.Day() != 14 || to.Month() != time.August {
		t.Errorf("to = %s, ожидалось 14 августа", to)
	}

	if _, _, err := ResolveMonthPeriod(time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)); err == nil {
		t.Error("первого числа ожидалась ошибка: данных за месяц ещё нет")
	}
}
