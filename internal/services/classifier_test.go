// Файл: internal/services/classifier_test.go
package services

import (
	"testing"

	"pizzabot/internal/models"
)

func row(pairs map[string]string) models.ReportRow {
	r := models.ReportRow{}
	for k, v := range pairs {
		r[k] = models.StringValue(v)
	}
	return r
}

func TestNewClassifierResolvesComboColumns(t *testing.T) {
	rows := []models.ReportRow{row(map[string]string{
		"PayTypes.Combo": "Наличные",
		"CookingPlace":   "Бар",
	})}
	c, err := NewClassifier(rows)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if c.PayField != "PayTypes.Combo" {
		t.Errorf("PayField = %s, ожидалось PayTypes.Combo", c.PayField)
	}
	if c.PlaceField != "CookingPlace" {
		t.Errorf("PlaceField = %s, ожидалось CookingPlace", c.PlaceField)
	}
}

func TestNewClassifierMissingPayColumn(t *testing.T) {
	rows := []models.ReportRow{row(map[string]string{"CookingPlace": "Бар"})}
	if _, err := NewClassifier(rows); err == nil {
		t.Error("ожидалась ошибка про отсутствующую колонку оплаты")
	}
}

func TestClassifySegments(t *testing.T) {
	c := &Classifier{PayField: "PayTypes", PlaceField: "CookingPlace"}

	cases := []struct {
		name string
		row  models.ReportRow
		want Segment
	}{
		{
			name: "бар с наличными",
			row:  row(map[string]string{"PayTypes": "Наличные", "CookingPlace": "Бар", "DishCategory": "Кофе"}),
			want: SegmentBar,
		},
		{
			name: "кухня с картой",
			row:  row(map[string]string{"PayTypes": "Оплата картой Сбербанк", "CookingPlace": "Кухня", "DishCategory": "Пицца"}),
			want: SegmentKitchen,
		},
		{
			name: "яндекс перекрывает место приготовления",
			row:  row(map[string]string{"PayTypes": "Яндекс.оплата", "CookingPlace": "Кухня", "DishCategory": "Пицца"}),
			want: SegmentDelivery,
		},
		{
			name: "приложение",
			row:  row(map[string]string{"PayTypes": "Оплата в приложении (Loyalhub)", "CookingPlace": "Кухня", "DishCategory": "Пицца"}),
			want: SegmentApp,
		},
		{
			name: "без оплаты исключается",
			row:  row(map[string]string{"PayTypes": "(без оплаты)", "CookingPlace": "Бар"}),
			want: SegmentExcluded,
		},
		{
			name: "удалённый заказ исключается",
			row:  row(map[string]string{"PayTypes": "Наличные", "CookingPlace": "Бар", "DeletedWithWriteoff": "DELETED_WITH_WRITEOFF"}),
			want: SegmentExcluded,
		},
		{
			name: "недопустимая категория бара исключается",
			row:  row(map[string]string{"PayTypes": "Наличные", "CookingPlace": "Бар", "DishCategory": "Модификаторы"}),
			want: SegmentExcluded,
		},
		{
			name: "служебная категория исключается и из доставки",
			row:  row(map[string]string{"PayTypes": "Яндекс.оплата", "CookingPlace": "Кухня", "DishCategory": "Питание персонала"}),
			want: SegmentExcluded,
		},
		{
			name: "неизвестное место приготовления исключается",
			row:  row(map[string]string{"PayTypes": "Наличные", "CookingPlace": "Склад"}),
			want: SegmentExcluded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.row); got != tc.want {
				t.Errorf("Classify = %s, ожидалось %s", got, tc.want)
			}
		})
	}
}

func TestClassifyNotDeletedMarkerPasses(t *testing.T) {
	c := &Classifier{PayField: "PayTypes", PlaceField: "CookingPlace"}
	r := row(map[string]string{
		"PayTypes":            "Наличные",
		"CookingPlace":        "Бар",
		"DeletedWithWriteoff": "NOT_DELETED",
		"OrderDeleted":        "NOT_DELETED",
	})
	if got := c.Classify(r); got != SegmentBar {
		t.Errorf("Classify = %s, ожидалось bar", got)
	}
}
