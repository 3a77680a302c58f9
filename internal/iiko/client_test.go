// Файл: internal/iiko/client_test.go
package iiko

import (
	"testing"

	"github.com/shopspring/decimal"

	"pizzabot/internal/models"
)

func TestParseOlapResponseJSON(t *testing.T) {
	body := []byte(`{"data":[
		{"PayTypes":"Наличные","DishDiscountSumInt":"1250.50","UniqOrderId.OrdersCount":3,"DishCategory":null}
	]}`)

	rows, err := ParseOlapResponse(body, "application/json; charset=utf-8")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ожидалась 1 строка, получено %d", len(rows))
	}
	row := rows[0]

	if got := row.Str("PayTypes"); got != "Наличные" {
		t.Errorf("PayTypes = %q", got)
	}
	if !row.Dec("DishDiscountSumInt").Equal(decimal.NewFromFloat(1250.50)) {
		t.Errorf("DishDiscountSumInt = %s, ожидалось 1250.5", row.Dec("DishDiscountSumInt"))
	}
	if row["UniqOrderId.OrdersCount"].Kind != models.ValueInt {
		t.Errorf("счётчик заказов должен быть целым, получено %v", row["UniqOrderId.OrdersCount"].Kind)
	}
	if !row["DishCategory"].IsNull() {
		t.Error("null из JSON должен давать отсутствующее значение")
	}
}

func TestParseOlapResponseXML(t *testing.T) {
	body := []byte(`<report>
		<r><PayTypes>Наличные</PayTypes><DishDiscountSumInt>500</DishDiscountSumInt></r>
		<r><PayTypes>Яндекс.оплата</PayTypes><DishDiscountSumInt>700.25</DishDiscountSumInt></r>
	</report>`)

	rows, err := ParseOlapResponse(body, "application/xml")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ожидались 2 строки, получено %d", len(rows))
	}
	if got := rows[1].Str("PayTypes"); got != "Яндекс.оплата" {
		t.Errorf("PayTypes = %q", got)
	}
	if !rows[0].Dec("DishDiscountSumInt").Equal(decimal.NewFromInt(500)) {
		t.Errorf("DishDiscountSumInt = %s, ожидалось 500", rows[0].Dec("DishDiscountSumInt"))
	}
}

func TestParseOlapResponseUnknownContentType(t *testing.T) {
	if _, err := ParseOlapResponse([]byte("hello"), "text/html"); err == nil {
		t.Error("ожидалась ошибка для неизвестного Content-Type")
	}
}
