// Файл: internal/services/salary_test.go
package services

import (
	"testing"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func TestCalculatePayrollHourly(t *testing.T) {
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)

	in := PayrollInput{
		From:      from,
		To:        to,
		Employees: []models.Employee{{ID: "e1", Name: "Анна", RoleName: "Бариста"}},
		Attendance: []models.AttendancePeriod{
			{EmployeeID: "e1", From: date(2026, time.June, 2).Add(10 * time.Hour), To: date(2026, time.June, 2).Add(18 * time.Hour), RegularPayment: 1600},
			{EmployeeID: "e1", From: date(2026, time.June, 3).Add(10 * time.Hour), To: date(2026, time.June, 3).Add(14 * time.Hour), RegularPayment: 800, Penalty: 200},
		},
		Settings: map[string]models.PositionSettings{
			"бариста": {PositionName: "Бариста", PaymentType: constants.PAYMENT_TYPE_HOURLY},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 1 {
		t.Fatalf("ожидалась 1 строка, получено %d", len(lines))
	}
	line := lines[0]
	if line.BasePay != 2400 {
		t.Errorf("BasePay = %.2f, ожидалось 2400", line.BasePay)
	}
	if line.Hours != 12 {
		t.Errorf("Hours = %.1f, ожидалось 12", line.Hours)
	}
	if line.WorkDays != 2 {
		t.Errorf("WorkDays = %d, ожидалось 2", line.WorkDays)
	}
	if line.Total != 2200 {
		t.Errorf("Total = %.2f, ожидалось 2200 (2400 - 200 штрафа)", line.Total)
	}
}

func TestCalculatePayrollPerShift(t *testing.T) {
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)

	in := PayrollInput{
		From:      from,
		To:        to,
		Employees: []models.Employee{{ID: "e1", Name: "Борис", RoleName: "Пиццамейкер"}},
		Attendance: []models.AttendancePeriod{
			{EmployeeID: "e1", From: date(2026, time.June, 5).Add(9 * time.Hour), To: date(2026, time.June, 5).Add(21 * time.Hour)},
			{EmployeeID: "e1", From: date(2026, time.June, 6).Add(9 * time.Hour), To: date(2026, time.June, 6).Add(21 * time.Hour)},
			{EmployeeID: "e1", From: date(2026, time.June, 7).Add(9 * time.Hour), To: date(2026, time.June, 7).Add(21 * time.Hour)},
		},
		Settings: map[string]models.PositionSettings{
			"пиццамейкер": {PositionName: "Пиццамейкер", PaymentType: constants.PAYMENT_TYPE_PER_SHIFT, FixedRate: floatPtr(3000)},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 1 {
		t.Fatalf("ожидалась 1 строка, получено %d", len(lines))
	}
	if lines[0].BasePay != 9000 {
		t.Errorf("BasePay = %.2f, ожидалось 9000 (3 смены по 3000)", lines[0].BasePay)
	}
}

func TestCalculatePayrollMonthlyProration(t *testing.T) {
	// Июнь: 30 дней. 10 дней из оклада 30000 дают ровно 10000.
	in := PayrollInput{
		From:      date(2026, time.June, 1),
		To:        date(2026, time.June, 10),
		Employees: []models.Employee{{ID: "e1", Name: "Вера", RoleName: "Управляющий"}},
		Settings: map[string]models.PositionSettings{
			"управляющий": {PositionName: "Управляющий", PaymentType: constants.PAYMENT_TYPE_MONTHLY, FixedRate: floatPtr(30000)},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 1 {
		t.Fatalf("ожидалась 1 строка, получено %d", len(lines))
	}
	if lines[0].BasePay != 10000 {
		t.Errorf("BasePay = %.2f, ожидалось 10000", lines[0].BasePay)
	}
}

func TestCalculatePayrollMonthlyRoundsAtEnd(t *testing.T) {
	// 100000 * 7 / 30 = 23333.333..., округление в самом конце даёт 23333.33
	in := PayrollInput{
		From:      date(2026, time.June, 1),
		To:        date(2026, time.June, 7),
		Employees: []models.Employee{{ID: "e1", Name: "Глеб", RoleName: "Шеф"}},
		Settings: map[string]models.PositionSettings{
			"шеф": {PositionName: "Шеф", PaymentType: constants.PAYMENT_TYPE_MONTHLY, FixedRate: floatPtr(100000)},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 1 {
		t.Fatalf("ожидалась 1 строка, получено %d", len(lines))
	}
	if lines[0].BasePay != 23333.33 {
		t.Errorf("BasePay = %.2f, ожидалось 23333.33", lines[0].BasePay)
	}
}

func TestCalculatePayrollSalesCommissionNoDoubleCount(t *testing.T) {
	// Заказ попадает в явки обоих сотрудников, но засчитывается только первому
	// по алфавиту.
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)
	shiftStart := date(2026, time.June, 5).Add(10 * time.Hour)
	shiftEnd := date(2026, time.June, 5).Add(22 * time.Hour)

	in := PayrollInput{
		From: from,
		To:   to,
		Employees: []models.Employee{
			{ID: "e2", Name: "Борис", RoleName: "Бариста"},
			{ID: "e1", Name: "Анна", RoleName: "Бариста"},
		},
		Attendance: []models.AttendancePeriod{
			{EmployeeID: "e1", From: shiftStart, To: shiftEnd},
			{EmployeeID: "e2", From: shiftStart, To: shiftEnd},
		},
		Orders: []models.Order{
			{CloseTime: shiftStart.Add(2 * time.Hour), Sum: 1000},
		},
		Settings: map[string]models.PositionSettings{
			"бариста": {
				PositionName:      "Бариста",
				PaymentType:       constants.PAYMENT_TYPE_PER_SHIFT,
				FixedRate:         floatPtr(2000),
				CommissionPercent: 5,
				CommissionType:    constants.COMMISSION_TYPE_SALES,
			},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 2 {
		t.Fatalf("ожидались 2 строки, получено %d", len(lines))
	}
	if lines[0].EmployeeName != "Анна" {
		t.Fatalf("первой ожидалась Анна, получен %s", lines[0].EmployeeName)
	}
	if lines[0].Bonus != 50 {
		t.Errorf("бонус Анны = %.2f, ожидалось 50 (5%% от 1000)", lines[0].Bonus)
	}
	if lines[1].Bonus != 0 {
		t.Errorf("бонус Бориса = %.2f, ожидалось 0: заказ уже распределён", lines[1].Bonus)
	}
}

func TestCalculatePayrollSkipsNonMonthlyWithoutShifts(t *testing.T) {
	in := PayrollInput{
		From:      date(2026, time.June, 1),
		To:        date(2026, time.June, 30),
		Employees: []models.Employee{{ID: "e1", Name: "Дина", RoleName: "Бариста"}},
		Settings: map[string]models.PositionSettings{
			"бариста": {PositionName: "Бариста", PaymentType: constants.PAYMENT_TYPE_HOURLY},
		},
	}

	if lines := CalculatePayroll(in); len(lines) != 0 {
		t.Errorf("ожидался пустой расчёт без явок, получено %d строк", len(lines))
	}
}

func TestCalculatePayrollSplitsByPositionHistory(t *testing.T) {
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)
	mid := date(2026, time.June, 15)
	next := date(2026, time.June, 16)

	in := PayrollInput{
		From:      from,
		To:        to,
		Employees: []models.Employee{{ID: "e1", Name: "Егор", RoleName: "Пиццамейкер"}},
		Attendance: []models.AttendancePeriod{
			{EmployeeID: "e1", From: date(2026, time.June, 10).Add(9 * time.Hour), To: date(2026, time.June, 10).Add(18 * time.Hour), RegularPayment: 1800},
			{EmployeeID: "e1", From: date(2026, time.June, 20).Add(9 * time.Hour), To: date(2026, time.June, 20).Add(18 * time.Hour)},
		},
		Settings: map[string]models.PositionSettings{
			"бариста":     {PositionName: "Бариста", PaymentType: constants.PAYMENT_TYPE_HOURLY},
			"пиццамейкер": {PositionName: "Пиццамейкер", PaymentType: constants.PAYMENT_TYPE_PER_SHIFT, FixedRate: floatPtr(3500)},
		},
		History: map[string][]models.PositionHistoryEntry{
			"e1": {
				{EmployeeID: "e1", PositionName: "Бариста", ValidFrom: date(2026, time.January, 1), ValidTo: &mid},
				{EmployeeID: "e1", PositionName: "Пиццамейкер", ValidFrom: next},
			},
		},
	}

	lines := CalculatePayroll(in)
	if len(lines) != 2 {
		t.Fatalf("ожидались 2 строки по двум должностям, получено %d", len(lines))
	}
	if lines[0].PositionName != "Бариста" || lines[0].BasePay != 1800 {
		t.Errorf("первая строка: %s %.2f, ожидалось Бариста 1800", lines[0].PositionName, lines[0].BasePay)
	}
	if lines[1].PositionName != "Пиццамейкер" || lines[1].BasePay != 3500 {
		t.Errorf("вторая строка: %s %.2f, ожидалось Пиццамейкер 3500", lines[1].PositionName, lines[1].BasePay)
	}
}

func TestCalculatePayrollSyntheticEntryMatchesFullRangeHistory(t *testing.T) {
	// Одна непрерывная запись истории на весь период даёт тот же расчёт,
	// что и синтезированная запись по текущей роли без истории.
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)

	input := func() PayrollInput {
		return PayrollInput{
			From:      from,
			To:        to,
			Employees: []models.Employee{{ID: "e1", Name: "Жанна", RoleName: "Бариста"}},
			Attendance: []models.AttendancePeriod{
				{EmployeeID: "e1", From: date(2026, time.June, 4).Add(10 * time.Hour), To: date(2026, time.June, 4).Add(18 * time.Hour), RegularPayment: 1600},
				{EmployeeID: "e1", From: date(2026, time.June, 12).Add(10 * time.Hour), To: date(2026, time.June, 12).Add(18 * time.Hour), RegularPayment: 1600, Penalty: 100},
			},
			Orders: []models.Order{
				{CloseTime: date(2026, time.June, 4).Add(12 * time.Hour), Sum: 2000},
			},
			Settings: map[string]models.PositionSettings{
				"бариста": {
					PositionName:      "Бариста",
					PaymentType:       constants.PAYMENT_TYPE_HOURLY,
					CommissionPercent: 5,
					CommissionType:    constants.COMMISSION_TYPE_SALES,
				},
			},
		}
	}

	synthesized := CalculatePayroll(input())

	withHistory := input()
	withHistory.History = map[string][]models.PositionHistoryEntry{
		"e1": {{EmployeeID: "e1", EmployeeName: "Жанна", PositionName: "Бариста", ValidFrom: from, ValidTo: &to}},
	}
	explicit := CalculatePayroll(withHistory)

	if len(synthesized) != 1 || len(explicit) != 1 {
		t.Fatalf("ожидалось по 1 строке, получено %d и %d", len(synthesized), len(explicit))
	}
	if synthesized[0] != explicit[0] {
		t.Errorf("расчёты расходятся:\nбез истории: %+v\nс историей:  %+v", synthesized[0], explicit[0])
	}
}

func TestClampPeriod(t *testing.T) {
	from := date(2026, time.June, 1)
	to := date(2026, time.June, 30)
	mid := date(2026, time.June, 10)

	entry := models.PositionHistoryEntry{ValidFrom: date(2026, time.May, 1), ValidTo: &mid}
	subFrom, subTo, ok := clampPeriod(entry, from, to)
	if !ok {
		t.Fatal("ожидалось пересечение периодов")
	}
	if !subFrom.Equal(from) || !subTo.Equal(mid) {
		t.Errorf("период %s - %s, ожидалось %s - %s", subFrom, subTo, from, mid)
	}

	past := date(2026, time.April, 30)
	entry = models.PositionHistoryEntry{ValidFrom: date(2026, time.April, 1), ValidTo: &past}
	if _, _, ok := clampPeriod(entry, from, to); ok {
		t.Error("период до начала расчёта не должен давать подпериод")
	}
}
