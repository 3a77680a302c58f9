// Файл: internal/models/value.go
package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind описывает тип значения ячейки OLAP-отчёта.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueInt
	ValueDecimal
	ValueString
)

// Value — значение ячейки OLAP-отчёта после приведения типов на границе API.
// Числовые строки приводятся к int или decimal один раз при разборе ответа,
// дальше по коду значения уже типизированы.
type Value struct {
	Kind ValueKind
	Int  int64
	Dec  decimal.Decimal
	Str  string
}

// ParseValue приводит сырое строковое значение из отчёта: целое число,
// иначе десятичное, иначе строка с обрезанными пробелами.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{Kind: ValueNull}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: ValueInt, Int: i}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return Value{Kind: ValueDecimal, Dec: d}
	}
	return Value{Kind: ValueString, Str: s}
}

// IntValue создаёт целочисленное значение.
func IntValue(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// DecimalValue создаёт десятичное значение.
func DecimalValue(d decimal.Decimal) Value { return Value{Kind: ValueDecimal, Dec: d} }

// StringValue создаёт строковое значение.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// Decimal возвращает значение как decimal; строки и null дают ноль.
func (v Value) Decimal() decimal.Decimal {
	switch v.Kind {
	case ValueInt:
		return decimal.NewFromInt(v.Int)
	case ValueDecimal:
		return v.Dec
	default:
		return decimal.Zero
	}
}

// String возвращает значение как строку для сравнения меток.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueDecimal:
		return v.Dec.String()
	case ValueString:
		return v.Str
	default:
		return ""
	}
}

// IsNull сообщает, что значение отсутствовало в отчёте.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

// ReportRow — строка OLAP-отчёта: имя колонки -> значение.
type ReportRow map[string]Value

// Has сообщает, присутствует ли колонка в строке.
func (r ReportRow) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Str возвращает строковое значение колонки; отсутствующая колонка даёт "".
func (r ReportRow) Str(field string) string {
	return r[field].String()
}

// Dec возвращает числовое значение колонки; отсутствующая колонка даёт ноль.
func (r ReportRow) Dec(field string) decimal.Decimal {
	return r[field].Decimal()
}

// FirstField возвращает первую из колонок-кандидатов, присутствующую в строке.
func (r ReportRow) FirstField(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if r.Has(c) {
			return c, true
		}
	}
	return "", false
}
