// Файл: internal/services/salary.go
package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
	"pizzabot/internal/gsheets"
	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// PayrollInput — исходные данные расчёта зарплаты за период.
// Settings индексируются должностью в нижнем регистре.
type PayrollInput struct {
	From         time.Time
	To           time.Time
	Employees    []models.Employee
	Attendance   []models.AttendancePeriod
	Orders       []models.Order
	WriteoffDocs []models.WriteoffDocument
	Settings     map[string]models.PositionSettings
	History      map[string][]models.PositionHistoryEntry
}

// CalculatePayroll считает зарплату по сотрудникам. Период каждого сотрудника
// разбивается на подпериоды по истории должностей, в каждом подпериоде действуют
// условия оплаты его должности. Заказ засчитывается в выручку того сотрудника,
// в чью явку попало время его закрытия, и только один раз.
func CalculatePayroll(in PayrollInput) []models.PayrollLine {
	attendanceByEmployee := make(map[string][]models.AttendancePeriod)
	for _, att := range in.Attendance {
		attendanceByEmployee[att.EmployeeID] = append(attendanceByEmployee[att.EmployeeID], att)
	}

	employees := make([]models.Employee, 0, len(in.Employees))
	for _, emp := range in.Employees {
		if emp.Deleted {
			continue
		}
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		return strings.ToLower(employees[i].Name) < strings.ToLower(employees[j].Name)
	})

	usedOrders := make([]bool, len(in.Orders))
	var lines []models.PayrollLine

	for _, emp := range employees {
		entries := in.History[emp.ID]
		if len(entries) == 0 {
			// Без истории должностей считаем по текущей роли за весь период
			entries = []models.PositionHistoryEntry{{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				PositionName: emp.RoleName,
				ValidFrom:    in.From,
				ValidTo:      &in.To,
			}}
		}

		for _, entry := range entries {
			subFrom, subTo, ok := clampPeriod(entry, in.From, in.To)
			if !ok {
				continue
			}

			settings := resolveSettings(in.Settings, entry.PositionName)
			attendance := attendanceInWindow(attendanceByEmployee[emp.ID], subFrom, subTo)

			var hours, regular, penalty float64
			for _, att := range attendance {
				hours += att.Hours()
				regular += att.RegularPayment
				penalty += att.Penalty
			}
			shifts := len(attendance)

			if settings.PaymentType != constants.PAYMENT_TYPE_MONTHLY && shifts == 0 {
				continue
			}

			var basePay float64
			switch settings.PaymentType {
			case constants.PAYMENT_TYPE_PER_SHIFT:
				basePay = round2(rateOf(settings) * float64(shifts))
			case constants.PAYMENT_TYPE_MONTHLY:
				days := calendarDays(subFrom, subTo)
				basePay = round2(rateOf(settings) * float64(days) / float64(daysInMonth(subFrom)))
			default:
				basePay = round2(regular)
			}

			var revenue, bonus float64
			if settings.CommissionPercent > 0 {
				switch settings.CommissionType {
				case constants.COMMISSION_TYPE_WRITEOFF:
					revenue = writeoffBase(in.WriteoffDocs, attendance)
				default:
					revenue = claimOrders(in.Orders, usedOrders, attendance)
				}
				if revenue > 0 {
					bonus = round2(revenue * settings.CommissionPercent / 100)
				}
			}

			lines = append(lines, models.PayrollLine{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				PositionName: entry.PositionName,
				PeriodStart:  subFrom,
				PeriodEnd:    subTo,
				PaymentType:  settings.PaymentType,
				Hours:        hours,
				WorkDays:     shifts,
				BasePay:      basePay,
				Revenue:      round2(revenue),
				Bonus:        bonus,
				Penalty:      round2(penalty),
				Total:        round2(basePay + bonus - penalty),
			})
		}
	}
	return lines
}

// GetPayrollLines собирает исходные данные из iiko, настроек и истории
// должностей и считает зарплату за период. Клиент таблиц может быть nil,
// тогда условия оплаты берутся только из базы.
func GetPayrollLines(ctx context.Context, client *iiko.Client, sheetsClient *gsheets.Client, from, to time.Time) ([]models.PayrollLine, error) {
	employees, err := client.Employees(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := client.Attendance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	orders, err := client.PresetOrders(ctx, from, to)
	if err != nil {
		log.Printf("Предупреждение: заказы для комиссий недоступны: %v", err)
	}
	writeoffDocs, err := client.OutgoingInvoices(ctx, from, to)
	if err != nil {
		log.Printf("Предупреждение: накладные для комиссий недоступны: %v", err)
	}

	settings := loadPositionSettings(ctx, sheetsClient)

	history := make(map[string][]models.PositionHistoryEntry, len(employees))
	for _, emp := range employees {
		entries, err := db.GetPositionHistory(emp.ID, from, to)
		if err != nil {
			log.Printf("Предупреждение: история должностей %s недоступна: %v", emp.Name, err)
			continue
		}
		if len(entries) > 0 {
			history[emp.ID] = entries
		}
	}

	lines := CalculatePayroll(PayrollInput{
		From:         from,
		To:           to,
		Employees:    employees,
		Attendance:   attendance,
		Orders:       orders,
		WriteoffDocs: writeoffDocs,
		Settings:     settings,
		History:      history,
	})
	log.Printf("Расчёт зарплаты %s - %s: %d строк", from.Format("02.01.2006"), to.Format("02.01.2006"), len(lines))
	return lines, nil
}

// CashShiftRevenue суммирует выручку кассовых смен за период.
func CashShiftRevenue(ctx context.Context, client *iiko.Client, from, to time.Time) (float64, error) {
	shifts, err := client.CashShifts(ctx, from, to)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, s := range shifts {
		total += s.PayOrders
	}
	return total, nil
}

// loadPositionSettings читает условия оплаты: сначала из Google Sheets,
// при недоступности листа — из таблицы position_commissions.
func loadPositionSettings(ctx context.Context, sheetsClient *gsheets.Client) map[string]models.PositionSettings {
	if sheetsClient != nil {
		settings, err := sheetsClient.LoadPositionSettings(ctx, "")
		if err == nil {
			return settings
		}
		log.Printf("Предупреждение: условия оплаты из таблицы недоступны, используем базу: %v", err)
	}

	stored, err := db.ListPositionSettings()
	if err != nil {
		log.Printf("Предупреждение: условия оплаты из базы недоступны: %v", err)
		return map[string]models.PositionSettings{}
	}
	settings := make(map[string]models.PositionSettings, len(stored))
	for _, s := range stored {
		settings[strings.ToLower(s.PositionName)] = s
	}
	return settings
}

// resolveSettings ищет условия оплаты должности без учёта регистра.
// Для неизвестных должностей действует почасовая оплата без комиссии.
func resolveSettings(settings map[string]models.PositionSettings, position string) models.PositionSettings {
	if s, ok := settings[strings.ToLower(strings.TrimSpace(position))]; ok {
		if s.PaymentType == "" {
			s.PaymentType = constants.PAYMENT_TYPE_HOURLY
		}
		if s.CommissionType == "" {
			s.CommissionType = constants.COMMISSION_TYPE_SALES
		}
		return s
	}
	return models.PositionSettings{
		PositionName:   position,
		PaymentType:    constants.PAYMENT_TYPE_HOURLY,
		CommissionType: constants.COMMISSION_TYPE_SALES,
	}
}

// clampPeriod обрезает период должности по границам расчёта.
func clampPeriod(entry models.PositionHistoryEntry, from, to time.Time) (time.Time, time.Time, bool) {
	subFrom := entry.ValidFrom
	if subFrom.Before(from) {
		subFrom = from
	}
	subTo := to
	if entry.ValidTo != nil && entry.ValidTo.Before(to) {
		subTo = *entry.ValidTo
	}
	if subTo.Before(subFrom) {
		return time.Time{}, time.Time{}, false
	}
	return subFrom, subTo, true
}

// attendanceInWindow отбирает явки, начавшиеся внутри подпериода.
func attendanceInWindow(attendance []models.AttendancePeriod, from, to time.Time) []models.AttendancePeriod {
	endOfWindow := to.AddDate(0, 0, 1)
	var result []models.AttendancePeriod
	for _, att := range attendance {
		if !att.From.Before(from) && att.From.Before(endOfWindow) {
			result = append(result, att)
		}
	}
	return result
}

// claimOrders суммирует заказы, закрытые во время явок сотрудника.
// Заказ засчитывается один раз: уже распределённые заказы пропускаются.
func claimOrders(orders []models.Order, used []bool, attendance []models.AttendancePeriod) float64 {
	var revenue float64
	for i, order := range orders {
		if used[i] {
			continue
		}
		for _, att := range attendance {
			if !order.CloseTime.Before(att.From) && !order.CloseTime.After(att.To) {
				revenue += order.Sum
				used[i] = true
				break
			}
		}
	}
	return revenue
}

// writeoffBase суммирует накладные, датированные рабочими днями сотрудника.
func writeoffBase(docs []models.WriteoffDocument, attendance []models.AttendancePeriod) float64 {
	workDates := make(map[string]bool, len(attendance))
	for _, att := range attendance {
		workDates[att.From.Format("2006-01-02")] = true
	}
	var base float64
	for _, doc := range docs {
		if workDates[doc.Date.Format("2006-01-02")] {
			base += doc.Sum.InexactFloat64()
		}
	}
	return base
}

func rateOf(settings models.PositionSettings) float64 {
	if settings.FixedRate == nil {
		return 0
	}
	return *settings.FixedRate
}

// calendarDays возвращает число календарных дней периода включительно.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours()/24) + 1
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
