// Файл: internal/gsheets/positions_test.go
package gsheets

import (
	"testing"
	"time"
)

func TestParseSheetFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want *float64
	}{
		{"", nil},
		{"-", nil},
		{"250", f(250)},
		{"2 500,50", f(2500.50)},
		{"1 200", f(1200)}, // неразрывный пробел из таблицы
		{"3.5", f(3.5)},
		{"abc", nil},
	}

	for _, tc := range cases {
		got := parseSheetFloat(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("parseSheetFloat(%q) = %v, ожидался nil", tc.raw, *got)
		case tc.want != nil && got == nil:
			t.Errorf("parseSheetFloat(%q) = nil, ожидалось %v", tc.raw, *tc.want)
		case tc.want != nil && got != nil && *got != *tc.want:
			t.Errorf("parseSheetFloat(%q) = %v, ожидалось %v", tc.raw, *got, *tc.want)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestCellString(t *testing.T) {
	if got := cellString("Бариста"); got != "Бариста" {
		t.Errorf("cellString(string) = %q", got)
	}
	if got := cellString(float64(250)); got != "250" {
		t.Errorf("cellString(float64) = %q, ожидалось 250", got)
	}
	if got := cellString(nil); got != "" {
		t.Errorf("cellString(nil) = %q, ожидалась пустая строка", got)
	}
}

func TestFotSheetTitle(t *testing.T) {
	if got := FotSheetTitle(2026, time.August); got != "ФОТ Август 2026" {
		t.Errorf("FotSheetTitle = %q, ожидалось 'ФОТ Август 2026'", got)
	}
	if got := FotSheetTitle(2027, time.January); got != "ФОТ Январь 2027" {
		t.Errorf("FotSheetTitle = %q, ожидалось 'ФОТ Январь 2027'", got)
	}
}
