// Файл: internal/db/cost_plan_ops.go
package db

import (
	"fmt"
	"time"

	"pizzabot/internal/models"
)

// UpsertCostPlan сохраняет плановый процент себестоимости сегмента на месяц.
func UpsertCostPlan(periodMonth time.Time, segment string, planValue float64) error {
	month := time.Date(periodMonth.Year(), periodMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
	_, err := DB.Exec(`
        INSERT INTO cost_plans (period_month, segment, plan_value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (period_month, segment) DO UPDATE SET
            plan_value = EXCLUDED.plan_value,
            updated_at = NOW()`,
		month, segment, planValue)
	if err != nil {
		return fmt.Errorf("ошибка сохранения плана себестоимости %s %s: %w",
			segment, month.Format("01.2006"), err)
	}
	return nil
}

// GetCostPlans возвращает планы себестоимости за месяцы, попадающие в период.
func GetCostPlans(from, to time.Time) ([]models.CostPlan, error) {
	fromMonth := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	toMonth := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows, err := DB.Query(`
        SELECT period_month, segment, plan_value, updated_at
        FROM cost_plans
        WHERE period_month BETWEEN $1 AND $2
        ORDER BY period_month, segment`,
		fromMonth, toMonth)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения планов себестоимости: %w", err)
	}
	defer rows.Close()

	var plans []models.CostPlan
	for rows.Next() {
		var p models.CostPlan
		if err := rows.Scan(&p.PeriodMonth, &p.Segment, &p.PlanValue, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки плана себестоимости: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
