// Файл: internal/utils/validators.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"02.01.2006", "2006-01-02", "02.01.06", "02.01"}

// ValidateDate разбирает дату из пользовательского ввода. Допускаются форматы
// ДД.ММ.ГГГГ, ГГГГ-ММ-ДД, ДД.ММ.ГГ и ДД.ММ (текущий год).
func ValidateDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("дата не указана")
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		if layout == "02.01" {
			t = time.Date(time.Now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("не удалось разобрать дату '%s'. Укажите в формате ДД.ММ.ГГГГ", input)
}

// ValidatePeriod проверяет границы периода отчёта.
func ValidatePeriod(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("дата конца периода раньше даты начала")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return fmt.Errorf("период не может превышать год")
	}
	return nil
}
