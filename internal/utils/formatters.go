// Файл: internal/utils/formatters.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney форматирует сумму с пробелами между разрядами: "1 234 567.89 ₽".
func FormatMoney(value decimal.Decimal) string {
	return groupDigits(value.StringFixed(2)) + " ₽"
}

// FormatMoneyFloat форматирует float64 как денежную сумму.
func FormatMoneyFloat(value float64) string {
	return FormatMoney(decimal.NewFromFloat(value))
}

func groupDigits(s string) string {
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	result := b.String() + fracPart
	if negative {
		return "-" + result
	}
	return result
}

// FormatPercent форматирует процент с одним знаком, nil выводится как прочерк.
func FormatPercent(value *float64) string {
	if value == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *value)
}

// FormatDate выводит дату в привычном виде ДД.ММ.ГГГГ.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatPeriod выводит период отчёта.
func FormatPeriod(from, to time.Time) string {
	return FormatDate(from) + " — " + FormatDate(to)
}

// EscapeTelegramMarkdown экранирует спецсимволы обычного Markdown.
func EscapeTelegramMarkdown(text string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(text)
}

var russianMonths = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

// RussianMonthName возвращает русское название месяца.
func RussianMonthName(month time.Month) string {
	return russianMonths[month]
}
