// Файл: internal/utils/formatters_test.go
package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "0.00 ₽"},
		{999, "999.00 ₽"},
		{1234.5, "1 234.50 ₽"},
		{1234567.89, "1 234 567.89 ₽"},
		{-12345, "-12 345.00 ₽"},
	}
	for _, tc := range cases {
		if got := FormatMoney(decimal.NewFromFloat(tc.value)); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, ожидалось %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(nil); got != "—" {
		t.Errorf("FormatPercent(nil) = %q, ожидался прочерк", got)
	}
	v := 36.54
	if got := FormatPercent(&v); got != "36.5%" {
		t.Errorf("FormatPercent(36.54) = %q, ожидалось 36.5%%", got)
	}
}

func TestFormatPeriod(t *testing.T) {
	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatPeriod(from, to); got != "01.08.2026 — 15.08.2026" {
		t.Errorf("FormatPeriod = %q", got)
	}
}

func TestValidateDate(t *testing.T) {
	got, err := ValidateDate("01.08.2026")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.Day() != 1 || got.Month() != time.August || got.Year() != 2026 {
		t.Errorf("разобрано %s", got)
	}

	got, err = ValidateDate("2026-08-15")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.Day() != 15 {
		t.Errorf("разобрано %s", got)
	}

	got, err = ValidateDate("15.08")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got.Year() != time.Now().Year() {
		t.Errorf("для ДД.ММ ожидался текущий год, получен %d", got.Year())
	}

	if _, err := ValidateDate("вчера"); err == nil {
		t.Error("ожидалась ошибка разбора")
	}
	if _, err := ValidateDate(""); err == nil {
		t.Error("ожидалась ошибка для пустого ввода")
	}
}

func TestValidatePeriod(t *testing.T) {
	from := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	if err := ValidatePeriod(from, to); err == nil {
		t.Error("ожидалась ошибка для перевёрнутого периода")
	}
	if err := ValidatePeriod(to, from); err != nil {
		t.Errorf("неожиданная ошибка: %v", err)
	}
	if err := ValidatePeriod(to, to.AddDate(2, 0, 0)); err == nil {
		t.Error("ожидалась ошибка для периода больше года")
	}
}

func TestEscapeTelegramMarkdown(t *testing.T) {
	if got := EscapeTelegramMarkdown("a_b*c`d[e"); got != "a\\_b\\*c\\`d\\[e" {
		t.Errorf("EscapeTelegramMarkdown = %q", got)
	}
}
