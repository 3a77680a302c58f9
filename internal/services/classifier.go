// Файл: internal/services/classifier.go
package services

import (
	"fmt"
	"strings"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

// Segment — сегмент выручки, к которому отнесена строка отчёта продаж.
// Каждая строка попадает ровно в один сегмент.
type Segment int

const (
	SegmentExcluded Segment = iota
	SegmentBar
	SegmentKitchen
	SegmentDelivery
	SegmentApp
)

// String возвращает название сегмента для логов.
func (s Segment) String() string {
	switch s {
	case SegmentBar:
		return "bar"
	case SegmentKitchen:
		return "kitchen"
	case SegmentDelivery:
		return "delivery"
	case SegmentApp:
		return "app"
	default:
		return "excluded"
	}
}

// Classifier относит строки отчёта продаж к сегментам. Имена колонок
// оплаты и места приготовления разрешаются один раз по первой строке:
// iiko отдаёт "PayTypes.Combo" либо "PayTypes" и "CookingPlace" либо
// "CookingPlaceType" в зависимости от версии.
type Classifier struct {
	PayField   string
	PlaceField string
}

// NewClassifier разрешает имена колонок по строкам отчёта.
// Отсутствие обеих колонок-кандидатов — ошибка с именем колонки.
func NewClassifier(rows []models.ReportRow) (*Classifier, error) {
	if len(rows) == 0 {
		return &Classifier{PayField: "PayTypes", PlaceField: "CookingPlaceType"}, nil
	}
	first := rows[0]

	payField, ok := first.FirstField("PayTypes.Combo", "PayTypes")
	if !ok {
		return nil, fmt.Errorf("в отчёте отсутствует колонка оплаты (PayTypes.Combo / PayTypes)")
	}
	placeField, ok := first.FirstField("CookingPlace", "CookingPlaceType")
	if !ok {
		return nil, fmt.Errorf("в отчёте отсутствует колонка места приготовления (CookingPlace / CookingPlaceType)")
	}
	return &Classifier{PayField: payField, PlaceField: placeField}, nil
}

// Classify относит строку к сегменту. Порядок проверок фиксирован:
// сначала исключения (удалённые заказы, служебные категории, без оплаты),
// затем доставка Яндекс (перекрывает место приготовления), затем
// приложение, бар и кухня.
func (c *Classifier) Classify(row models.ReportRow) Segment {
	if deleted(row) {
		return SegmentExcluded
	}

	if constants.ExcludedDishCategories[strings.TrimSpace(row.Str("DishCategory"))] {
		return SegmentExcluded
	}

	pay := strings.TrimSpace(row.Str(c.PayField))
	payLower := strings.ToLower(pay)
	if strings.Contains(payLower, constants.UnpaidPaymentType) {
		return SegmentExcluded
	}
	if strings.Contains(payLower, constants.YandexPaymentMarker) {
		return SegmentDelivery
	}

	if constants.AppPayTypes[pay] && categoryAllowed(row, constants.KitchenAllowedCategories) {
		return SegmentApp
	}

	place := strings.ToLower(strings.TrimSpace(row.Str(c.PlaceField)))
	switch {
	case constants.BarCookingPlaces[place]:
		if payAllowed(row, c.PayField) && categoryAllowed(row, constants.BarAllowedCategories) {
			return SegmentBar
		}
	case constants.KitchenCookingPlaces[place]:
		if payAllowed(row, c.PayField) && categoryAllowed(row, constants.KitchenAllowedCategories) {
			return SegmentKitchen
		}
	}
	return SegmentExcluded
}

// deleted отсекает строки удалённых заказов: значение, отличное от
// NOT_DELETED в любом из флагов, исключает строку.
func deleted(row models.ReportRow) bool {
	for _, field := range []string{"DeletedWithWriteoff", "OrderDeleted"} {
		if !row.Has(field) {
			continue
		}
		v := row[field]
		if v.IsNull() {
			continue
		}
		if v.String() != "NOT_DELETED" {
			return true
		}
	}
	return false
}

// payAllowed пропускает строки без типа оплаты и с оплатой из списка
// допустимых для бара и кухни.
func payAllowed(row models.ReportRow, payField string) bool {
	v := row[payField]
	if v.IsNull() || strings.TrimSpace(v.String()) == "" {
		return true
	}
	return constants.AllowedPayTypes[strings.TrimSpace(v.String())]
}

// categoryAllowed пропускает строки без категории и с категорией из списка.
func categoryAllowed(row models.ReportRow, allowed map[string]bool) bool {
	if !row.Has("DishCategory") {
		return true
	}
	v := row["DishCategory"]
	if v.IsNull() || strings.TrimSpace(v.String()) == "" {
		return true
	}
	return allowed[strings.TrimSpace(v.String())]
}
