// Файл: internal/session/temp_report.go
package session

import "time"

// TempReportData — временные данные диалога: какой отчёт запрошен,
// введённые границы периода и промежуточные значения настроек.
type TempReportData struct {
	UserChatID       int64
	ReportKind       string // callback-префикс запрошенного отчёта
	PeriodFrom       time.Time
	PeriodTo         time.Time
	CurrentMessageID int

	// Настройки в процессе ввода
	CostPlanMonth   time.Time
	CostPlanSegment string
}

// NewTempReport создаёт пустые данные диалога для пользователя.
func NewTempReport(chatID int64) TempReportData {
	return TempReportData{UserChatID: chatID}
}
