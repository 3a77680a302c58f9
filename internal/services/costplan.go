// Файл: internal/services/costplan.go
package services

import (
	"time"

	"pizzabot/internal/db"
	"pizzabot/internal/models"
)

// CostPlanSummary — планы себестоимости за период: помесячная разбивка и
// агрегат по сегментам, взвешенный долей месяца в периоде.
type CostPlanSummary struct {
	Monthly    []models.CostPlan
	Aggregated map[string]*float64 // bar, kitchen; nil при отсутствии плана
}

// HasData сообщает, задан ли план хотя бы для одного сегмента.
func (s CostPlanSummary) HasData() bool {
	for _, v := range s.Aggregated {
		if v != nil {
			return true
		}
	}
	return false
}

// GetCostPlanSummary возвращает планы себестоимости для периода.
// План месяца входит в агрегат с весом, равным доле покрытых периодом дней.
func GetCostPlanSummary(from, to time.Time) (CostPlanSummary, error) {
	summary := CostPlanSummary{Aggregated: map[string]*float64{"bar": nil, "kitchen": nil}}
	if to.Before(from) {
		from, to = to, from
	}

	plans, err := db.GetCostPlans(from, to)
	if err != nil {
		return summary, err
	}
	summary.Monthly = plans
	summary.Aggregated = aggregateCostPlans(plans, from, to)
	return summary, nil
}

// aggregateCostPlans взвешивает помесячные планы долей покрытых периодом дней.
func aggregateCostPlans(plans []models.CostPlan, from, to time.Time) map[string]*float64 {
	aggregated := map[string]*float64{"bar": nil, "kitchen": nil}

	weighted := map[string]float64{}
	coverage := map[string]float64{}
	for _, plan := range plans {
		monthStart := plan.PeriodMonth
		monthEnd := monthStart.AddDate(0, 1, -1)

		coverFrom := maxDate(dateOnly(from), monthStart)
		coverTo := minDate(dateOnly(to), monthEnd)
		if coverTo.Before(coverFrom) {
			continue
		}
		share := float64(calendarDays(coverFrom, coverTo)) / float64(calendarDays(monthStart, monthEnd))

		weighted[plan.Segment] += plan.PlanValue * share
		coverage[plan.Segment] += share
	}

	for segment, cov := range coverage {
		if cov > 0 {
			value := weighted[segment] / cov
			aggregated[segment] = &value
		}
	}
	return aggregated
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
