// Файл: internal/services/costplan_test.go
package services

import (
	"math"
	"testing"
	"time"

	"pizzabot/internal/models"
)

func monthPlan(year int, month time.Month, segment string, value float64) models.CostPlan {
	return models.CostPlan{
		PeriodMonth: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Segment:     segment,
		PlanValue:   value,
	}
}

func TestAggregateCostPlansSingleMonth(t *testing.T) {
	plans := []models.CostPlan{
		monthPlan(2026, time.June, "kitchen", 25),
		monthPlan(2026, time.June, "bar", 18),
	}
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	got := aggregateCostPlans(plans, from, to)
	if got["kitchen"] == nil || *got["kitchen"] != 25 {
		t.Errorf("kitchen = %v, ожидалось 25", got["kitchen"])
	}
	if got["bar"] == nil || *got["bar"] != 18 {
		t.Errorf("bar = %v, ожидалось 18", got["bar"])
	}
}

func TestAggregateCostPlansWeightsByCoveredDays(t *testing.T) {
	plans := []models.CostPlan{
		monthPlan(2026, time.June, "kitchen", 20),
		monthPlan(2026, time.July, "kitchen", 30),
	}
	// Июнь покрыт целиком (вес 1), июль на 10 из 31 дня.
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	got := aggregateCostPlans(plans, from, to)
	if got["kitchen"] == nil {
		t.Fatal("kitchen = nil, ожидалось значение")
	}
	share := 10.0 / 31.0
	want := (20*1 + 30*share) / (1 + share)
	if math.Abs(*got["kitchen"]-want) > 1e-9 {
		t.Errorf("kitchen = %f, ожидалось %f", *got["kitchen"], want)
	}
	if got["bar"] != nil {
		t.Errorf("bar = %v, план для бара не задан", *got["bar"])
	}
}

func TestAggregateCostPlansIgnoresUncoveredMonth(t *testing.T) {
	plans := []models.CostPlan{
		monthPlan(2026, time.May, "bar", 15),
	}
	from := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	got := aggregateCostPlans(plans, from, to)
	if got["bar"] != nil {
		t.Errorf("bar = %v, месяц вне периода не должен учитываться", *got["bar"])
	}
}

func TestCostPlanSummaryHasData(t *testing.T) {
	empty := CostPlanSummary{Aggregated: map[string]*float64{"bar": nil, "kitchen": nil}}
	if empty.HasData() {
		t.Error("пустой агрегат не должен сообщать о данных")
	}
	v := 22.5
	filled := CostPlanSummary{Aggregated: map[string]*float64{"bar": &v, "kitchen": nil}}
	if !filled.HasData() {
		t.Error("агрегат с планом для бара должен сообщать о данных")
	}
}
