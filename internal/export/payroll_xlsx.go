// Файл: internal/export/payroll_xlsx.go
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pizzabot/internal/constants"
	"pizzabot/internal/models"
)

var paymentTypeLabels = map[string]string{
	constants.PAYMENT_TYPE_HOURLY:    "почасовая",
	constants.PAYMENT_TYPE_PER_SHIFT: "посменная",
	constants.PAYMENT_TYPE_MONTHLY:   "оклад",
}

// BuildPayrollWorkbook собирает Excel-файл расчёта зарплаты: одна строка на
// подпериод сотрудника, итоговая строка с суммами внизу.
func BuildPayrollWorkbook(lines []models.PayrollLine, from, to time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Зарплата"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Сотрудник", "Должность", "Период с", "Период по", "Тип оплаты", "Часы", "Смены", "Ставка/Оплата", "Выручка", "Бонус", "Штрафы", "Итого"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	var totalBase, totalBonus, totalPenalty, totalSum float64
	for _, line := range lines {
		label := paymentTypeLabels[line.PaymentType]
		if label == "" {
			label = line.PaymentType
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), line.EmployeeName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), line.PositionName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), line.PeriodStart.Format("02.01.2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), line.PeriodEnd.Format("02.01.2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), label)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), line.Hours)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), line.WorkDays)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), line.BasePay)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), line.Revenue)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowIndex), line.Bonus)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowIndex), line.Penalty)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", rowIndex), line.Total)

		totalBase += line.BasePay
		totalBonus += line.Bonus
		totalPenalty += line.Penalty
		totalSum += line.Total
		rowIndex++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), "Итого")
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), totalBase)
	f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowIndex), totalBonus)
	f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowIndex), totalPenalty)
	f.SetCellValue(sheetName, fmt.Sprintf("L%d", rowIndex), totalSum)

	f.SetCellValue(sheetName, "N1", "Период")
	f.SetCellValue(sheetName, "N2", fmt.Sprintf("%s - %s", from.Format("02.01.2006"), to.Format("02.01.2006")))

	return f, nil
}

// SavePayrollFile сохраняет расчёт зарплаты во временный xlsx-файл
// и возвращает путь к нему.
func SavePayrollFile(lines []models.PayrollLine, from, to time.Time) (string, error) {
	f, err := BuildPayrollWorkbook(lines, from, to)
	if err != nil {
		return "", err
	}
	filePath := fmt.Sprintf("salary_report_%s.xlsx", time.Now().Format("20060102_150405"))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("ошибка сохранения Excel файла: %w", err)
	}
	return filePath, nil
}
