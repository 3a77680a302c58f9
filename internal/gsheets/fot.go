// Файл: internal/gsheets/fot.go
package gsheets

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"pizzabot/internal/models"
)

// Шапка листа ФОТ. Колонки D (Начислено) и L (К выплате) считаются формулами,
// G..K менеджеры заполняют вручную.
var fotHeaders = []interface{}{
	"FinTablo ID",
	"Сотрудник",
	"Должность",
	"Начислено, р.",
	"Ставка",
	"Бонус",
	"Начисления",
	"Удержания",
	"Аванс",
	"25 Выплата",
	"10 Выплата",
	"К выплате, р.",
}

var monthsRU = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// FotSheetTitle возвращает название листа ФОТ для месяца, например "ФОТ Август 2026".
func FotSheetTitle(year int, month time.Month) string {
	return fmt.Sprintf("ФОТ %s %d", monthsRU[month-1], year)
}

// EnsureFotSheet создаёт лист ФОТ месяца, если его ещё нет, и пишет шапку.
func (c *Client) EnsureFotSheet(ctx context.Context, year int, month time.Month) (string, error) {
	title := FotSheetTitle(year, month)

	meta, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения метаданных таблицы: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return title, nil
		}
	}

	log.Printf("Создаём лист '%s'", title)
	_, err = c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title, Index: 0},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ошибка создания листа '%s': %w", title, err)
	}

	if err := c.WriteRange(ctx, fmt.Sprintf("'%s'!A1:L1", title), [][]interface{}{fotHeaders}); err != nil {
		return "", err
	}
	return title, nil
}

type fotRow struct {
	name      string
	position  string
	rate      float64
	bonus     float64
	penalty   float64
	latestEnd time.Time
}

// ручные колонки листа: FinTablo ID, Начисления, Удержания, Аванс, выплаты 25 и 10
type manualCells struct {
	finID    string
	accruals string
	penalty  string
	advance  string
	payout25 string
	payout10 string
}

// FillFotSheet заполняет лист ФОТ строками расчёта зарплаты. Данные
// агрегируются по сотруднику, должность берётся из последнего подпериода.
// Ручные значения (колонки G..K и FinTablo ID) сохраняются по привязке к
// сотруднику, чтобы переживать смещение строк.
func (c *Client) FillFotSheet(ctx context.Context, title string, lines []models.PayrollLine) error {
	byEmployee := make(map[string]*fotRow)
	for _, line := range lines {
		row, ok := byEmployee[line.EmployeeID]
		if !ok {
			row = &fotRow{name: line.EmployeeName, position: line.PositionName, latestEnd: line.PeriodEnd}
			byEmployee[line.EmployeeID] = row
		}
		row.rate += line.BasePay
		row.bonus += line.Bonus
		row.penalty += line.Penalty
		if line.PeriodEnd.After(row.latestEnd) || row.position == "" {
			row.position = line.PositionName
			row.latestEnd = line.PeriodEnd
		}
	}

	rows := make([]*fotRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].name) < strings.ToLower(rows[j].name)
	})

	manualByKey, manualByName := c.readManualCells(ctx, title)

	totalsRowIndex := len(rows) + 2
	data := make([][]interface{}, 0, len(rows)+1)
	for i, row := range rows {
		rowIndex := i + 2
		nameKey := strings.ToLower(strings.TrimSpace(row.name))
		posKey := strings.ToLower(strings.TrimSpace(row.position))

		manual, ok := manualByKey[nameKey+"|"+posKey]
		if !ok {
			manual = manualByName[nameKey]
		}
		penaltyCell := manual.penalty
		if penaltyCell == "" && row.penalty != 0 {
			penaltyCell = fmt.Sprintf("%.2f", row.penalty)
		}

		payout10 := manual.payout10
		if strings.Contains(posKey, "фриланс") {
			payout10 = fmt.Sprintf("=D%d", rowIndex)
		}

		data = append(data, []interface{}{
			manual.finID,
			row.name,
			row.position,
			fmt.Sprintf("=ROUND(E%d+F%d+G%d-H%d)", rowIndex, rowIndex, rowIndex, rowIndex),
			math.Round(row.rate*100) / 100,
			math.Round(row.bonus*100) / 100,
			manual.accruals,
			penaltyCell,
			manual.advance,
			manual.payout25,
			payout10,
			fmt.Sprintf("=ROUND(D%d-J%d-K%d)", rowIndex, rowIndex, rowIndex),
		})
	}
	data = append(data, totalsRow(totalsRowIndex))

	// Очистка перед записью убирает хвосты и дубли строки итого от прошлых запусков
	if err := c.ClearRange(ctx, fmt.Sprintf("'%s'!A2:L1000", title)); err != nil {
		return err
	}
	if err := c.WriteRange(ctx, fmt.Sprintf("'%s'!A2:L%d", title, totalsRowIndex), data); err != nil {
		return err
	}
	log.Printf("Лист '%s' заполнен: %d сотрудников", title, len(rows))
	return nil
}

// readManualCells читает существующие строки листа и сохраняет ручные значения
// по ключу сотрудник+должность и по одному имени как запасной вариант.
func (c *Client) readManualCells(ctx context.Context, title string) (map[string]manualCells, map[string]manualCells) {
	byKey := make(map[string]manualCells)
	byName := make(map[string]manualCells)

	existing, err := c.ReadRange(ctx, fmt.Sprintf("'%s'!A2:L1000", title))
	if err != nil {
		log.Printf("Предупреждение: не удалось прочитать текущие строки листа '%s': %v", title, err)
		return byKey, byName
	}

	cell := func(row []interface{}, idx int) string {
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(cellString(row[idx]))
	}
	for _, row := range existing {
		nameKey := strings.ToLower(cell(row, 1))
		if nameKey == "" {
			continue
		}
		posKey := strings.ToLower(cell(row, 2))
		manual := manualCells{
			finID:    cell(row, 0),
			accruals: cell(row, 6),
			penalty:  cell(row, 7),
			advance:  cell(row, 8),
			payout25: cell(row, 9),
			payout10: cell(row, 10),
		}
		key := nameKey + "|" + posKey
		if _, exists := byKey[key]; !exists {
			byKey[key] = manual
		}
		if _, exists := byName[nameKey]; !exists {
			byName[nameKey] = manual
		}
	}
	return byKey, byName
}

func totalsRow(totalsRowIndex int) []interface{} {
	row := []interface{}{"Итого", "", ""}
	for col := 'D'; col <= 'L'; col++ {
		row = append(row, fmt.Sprintf("=SUM(%c2:%c%d)", col, col, totalsRowIndex-1))
	}
	return row
}
