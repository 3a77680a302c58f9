// Файл: internal/models/payroll.go
package models

import "time"

// Employee — сотрудник из справочника iiko.
type Employee struct {
	ID       string
	Name     string
	RoleCode string
	RoleName string
	Deleted  bool
}

// AttendancePeriod — явка сотрудника с начислением и штрафом.
type AttendancePeriod struct {
	EmployeeID     string
	From           time.Time
	To             time.Time
	RegularPayment float64
	Penalty        float64
}

// Hours возвращает длительность явки в часах.
func (a AttendancePeriod) Hours() float64 {
	if a.To.Before(a.From) {
		return 0
	}
	return a.To.Sub(a.From).Hours()
}

// PositionHistoryEntry — период работы сотрудника на должности.
// ValidTo == nil означает открытый период (должность действует сейчас).
type PositionHistoryEntry struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	PositionName string
	ValidFrom    time.Time
	ValidTo      *time.Time
}

// PositionSettings — условия оплаты для должности.
type PositionSettings struct {
	PositionName      string
	PaymentType       string // hourly, per_shift, monthly
	FixedRate         *float64
	CommissionPercent float64
	CommissionType    string // sales, writeoff
}

// PayrollLine — строка расчёта зарплаты: сотрудник на должности за подпериод.
type PayrollLine struct {
	EmployeeID   string
	EmployeeName string
	PositionName string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	PaymentType  string
	Hours        float64
	WorkDays     int
	BasePay      float64
	Revenue      float64 // база комиссии (продажи или накладные)
	Bonus        float64
	Penalty      float64
	Total        float64
}
