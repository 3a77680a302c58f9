// Файл: internal/services/purchase_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"pizzabot/internal/models"
)

func TestIsDeletedValue(t *testing.T) {
	cases := []struct {
		name string
		v    models.Value
		want bool
	}{
		{"null не удалён", models.Value{}, false},
		{"NOT_DELETED", models.StringValue("NOT_DELETED"), false},
		{"русский маркер", models.StringValue("не удалён"), false},
		{"булева истина", models.StringValue("TRUE"), true},
		{"DELETED", models.StringValue("DELETED"), true},
		{"DELETED_WITH_WRITEOFF", models.StringValue("DELETED_WITH_WRITEOFF"), true},
		{"черновик", models.StringValue("DRAFT"), true},
		{"ACTIVE", models.StringValue("ACTIVE"), false},
		{"числовой ноль", models.IntValue(0), false},
		{"числовая единица", models.IntValue(1), true},
		{"ненулевое дробное", models.DecimalValue(decimal.NewFromFloat(1.0)), true},
		{"неизвестный статус", models.StringValue("SOMETHING"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDeletedValue(tc.v); got != tc.want {
				t.Errorf("isDeletedValue(%v) = %v, ожидалось %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestFilterDeletedRows(t *testing.T) {
	rows := []models.ReportRow{
		{"DocumentStatus": models.StringValue("NOT_DELETED"), "Sum.Incoming": models.IntValue(100)},
		{"DocumentStatus": models.StringValue("DELETED"), "Sum.Incoming": models.IntValue(200)},
		{"DocumentStatus": models.StringValue("CONFIRMED"), "Sum.Incoming": models.IntValue(300)},
	}

	filtered, removed := filterDeletedRows(rows)
	if removed != 1 {
		t.Errorf("removed = %d, ожидалось 1", removed)
	}
	if len(filtered) != 2 {
		t.Errorf("осталось %d строк, ожидалось 2", len(filtered))
	}
}

func TestFilterDeletedRowsWithoutStatusColumns(t *testing.T) {
	rows := []models.ReportRow{
		{"Sum.Incoming": models.IntValue(100)},
	}
	filtered, removed := filterDeletedRows(rows)
	if removed != 0 || len(filtered) != 1 {
		t.Errorf("без статусных колонок строки должны сохраняться: removed=%d, len=%d", removed, len(filtered))
	}
}

func TestResolveField(t *testing.T) {
	rows := []models.ReportRow{
		{"Store": models.StringValue("Бар Пиццерия")},
		{"Account.Name": models.StringValue("Кухня Пиццерия")},
	}

	if got := resolveField(rows, storeFieldCandidates, "Account.Name"); got != "Account.Name" {
		t.Errorf("resolveField = %s, ожидалось Account.Name (первый кандидат, найденный в строках)", got)
	}
	if got := resolveField(rows, []string{"Missing"}, "Fallback"); got != "Fallback" {
		t.Errorf("resolveField = %s, ожидался Fallback", got)
	}
}
