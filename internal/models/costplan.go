// Файл: internal/models/costplan.go
package models

import "time"

// CostPlan — плановый процент себестоимости сегмента на месяц.
type CostPlan struct {
	PeriodMonth time.Time // первое число месяца
	Segment     string    // bar или kitchen
	PlanValue   float64
	UpdatedAt   time.Time
}
