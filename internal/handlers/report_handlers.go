// Файл: internal/handlers/report_handlers.go
package handlers

import (
	"context"
	"log"
	"os"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"pizzabot/internal/constants"
	"pizzabot/internal/export"
	"pizzabot/internal/formatters"
	"pizzabot/internal/services"
	"pizzabot/internal/utils"
)

// runReport строит и отправляет отчёт выбранного вида за период.
func (bh *BotHandler) runReport(chatID int64, messageID int, kind string, from, to time.Time) {
	ctx := context.Background()
	keyboard := mainMenuKeyboard()

	progressMsg, _ := bh.sendOrEditMessageHelper(chatID, messageID, "⏳ Формирую отчёт, это может занять до минуты...", nil, "")
	if progressMsg.MessageID != 0 {
		messageID = progressMsg.MessageID
	}

	var text string
	switch kind {
	case constants.CALLBACK_REPORT_REVENUE:
		result, err := services.GetRevenueResult(ctx, bh.Deps.Iiko, from, to, bh.Deps.Config.DefaultYandexPercent)
		if err != nil {
			log.Printf("runReport: Ошибка отчёта по выручке для chatID %d: %v", chatID, err)
			bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось построить отчёт по выручке: "+err.Error())
			return
		}
		text = formatters.FormatRevenueReport(result)

	case constants.CALLBACK_REPORT_PURCHASES:
		summary, err := services.FetchPurchaseSummary(ctx, bh.Deps.Iiko, from, to)
		if err != nil {
			log.Printf("runReport: Ошибка отчёта по закупкам для chatID %d: %v", chatID, err)
			bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось построить отчёт по закупкам: "+err.Error())
			return
		}
		revenue, err := services.GetRevenueResult(ctx, bh.Deps.Iiko, from, to, bh.Deps.Config.DefaultYandexPercent)
		if err != nil {
			log.Printf("runReport: Предупреждение: выручка для аналитики закупок недоступна: %v", err)
		}
		writeoffs, err := services.GetSegmentWriteoffs(ctx, bh.Deps.Iiko, from, to)
		if err != nil {
			log.Printf("runReport: Предупреждение: списания для аналитики закупок недоступны: %v", err)
		}
		insights := services.CalculatePurchaseInsights(summary, revenue, writeoffs)
		text = formatters.FormatPurchasesReport(summary, insights, utils.FormatDate(from), utils.FormatDate(to))

	case constants.CALLBACK_REPORT_SALARY:
		lines, err := services.GetPayrollLines(ctx, bh.Deps.Iiko, bh.Deps.Sheets, from, to)
		if err != nil {
			log.Printf("runReport: Ошибка отчёта по зарплатам для chatID %d: %v", chatID, err)
			bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось построить отчёт по зарплатам: "+err.Error())
			return
		}
		var totalRevenue *float64
		if revenue, err := services.CashShiftRevenue(ctx, bh.Deps.Iiko, from, to); err != nil {
			log.Printf("runReport: Предупреждение: выручка кассовых смен недоступна: %v", err)
		} else {
			totalRevenue = &revenue
		}
		text = formatters.FormatSalaryReport(lines, utils.FormatDate(from), utils.FormatDate(to), totalRevenue)

	case constants.CALLBACK_REPORT_SALARY_XLSX:
		bh.sendPayrollWorkbook(ctx, chatID, messageID, from, to)
		return

	case constants.CALLBACK_REPORT_CONSOLIDATED:
		data, err := services.BuildConsolidatedReport(ctx, bh.Deps.Iiko, bh.Deps.Sheets, from, to, bh.Deps.Config.DefaultYandexPercent)
		if err != nil {
			log.Printf("runReport: Ошибка сводного отчёта для chatID %d: %v", chatID, err)
			bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось построить сводный отчёт: "+err.Error())
			return
		}
		text = formatters.FormatConsolidatedReport(data)

	default:
		log.Printf("runReport: Неизвестный вид отчёта '%s' для chatID %d", kind, chatID)
		bh.SendMainMenu(chatID, messageID)
		return
	}

	bh.Deps.SessionManager.ClearTempReport(chatID)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &keyboard, tgbotapi.ModeMarkdown); err != nil {
		log.Printf("runReport: Ошибка отправки отчёта для chatID %d: %v", chatID, err)
	}
}

// sendPayrollWorkbook формирует Excel-файл зарплатной ведомости и отправляет
// его документом. Временный файл удаляется после отправки.
func (bh *BotHandler) sendPayrollWorkbook(ctx context.Context, chatID int64, messageID int, from, to time.Time) {
	lines, err := services.GetPayrollLines(ctx, bh.Deps.Iiko, bh.Deps.Sheets, from, to)
	if err != nil {
		log.Printf("sendPayrollWorkbook: Ошибка расчёта зарплат для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось рассчитать зарплаты: "+err.Error())
		return
	}
	if len(lines) == 0 {
		bh.sendErrorMessageHelper(chatID, messageID, "⚠️ Нет данных по зарплатам за указанный период")
		return
	}

	filePath, err := export.SavePayrollFile(lines, from, to)
	if err != nil {
		log.Printf("sendPayrollWorkbook: Ошибка сохранения файла для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось сформировать Excel-файл: "+err.Error())
		return
	}
	defer func() {
		if errRemove := os.Remove(filePath); errRemove != nil {
			log.Printf("sendPayrollWorkbook: Не удалось удалить временный файл %s: %v", filePath, errRemove)
		}
	}()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = "Зарплатная ведомость " + utils.FormatPeriod(from, to)
	if _, err := bh.Deps.BotClient.Send(doc); err != nil {
		log.Printf("sendPayrollWorkbook: Ошибка отправки документа для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось отправить файл: "+err.Error())
		return
	}

	bh.Deps.SessionManager.ClearTempReport(chatID)
	bh.SendMainMenu(chatID, 0)
}

// runFintabloSync запускает ручную синхронизацию выручки с FinTablo.
func (bh *BotHandler) runFintabloSync(chatID int64, messageID int) {
	if bh.Deps.Ledger == nil {
		bh.sendErrorMessageHelper(chatID, messageID, "❌ FinTablo не настроен: проверьте FIN_TABLO_TOKEN.")
		return
	}

	progressMsg, _ := bh.sendOrEditMessageHelper(chatID, messageID, "⏳ Синхронизирую выручку с FinTablo...", nil, "")
	if progressMsg.MessageID != 0 {
		messageID = progressMsg.MessageID
	}

	ctx := context.Background()
	if err := services.SyncRevenueToLedger(ctx, bh.Deps.Iiko, bh.Deps.Ledger, time.Now(), bh.Deps.Config.DefaultYandexPercent); err != nil {
		log.Printf("runFintabloSync: Ошибка синхронизации для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Синхронизация не удалась: "+err.Error())
		return
	}

	keyboard := mainMenuKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, "✅ Выручка синхронизирована с FinTablo.", &keyboard, "")
}

// runFotSheetFill создаёт и заполняет лист ФОТ текущего месяца по запросу.
func (bh *BotHandler) runFotSheetFill(chatID int64, messageID int) {
	if bh.Deps.Sheets == nil {
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Google Sheets не настроен: проверьте GOOGLE_CREDENTIALS_FILE и GOOGLE_SHEETS_SPREADSHEET_ID.")
		return
	}

	progressMsg, _ := bh.sendOrEditMessageHelper(chatID, messageID, "⏳ Заполняю лист ФОТ...", nil, "")
	if progressMsg.MessageID != 0 {
		messageID = progressMsg.MessageID
	}

	ctx := context.Background()
	today := time.Now()
	title, err := bh.Deps.Sheets.EnsureFotSheet(ctx, today.Year(), today.Month())
	if err != nil {
		log.Printf("runFotSheetFill: Ошибка создания листа ФОТ для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось создать лист ФОТ: "+err.Error())
		return
	}

	keyboard := mainMenuKeyboard()
	if today.Day() == 1 {
		bh.sendOrEditMessageHelper(chatID, messageID,
			"✅ Лист '"+title+"' создан. Первого числа данных для заполнения ещё нет.", &keyboard, "")
		return
	}

	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	to := today.AddDate(0, 0, -1)
	lines, err := services.GetPayrollLines(ctx, bh.Deps.Iiko, bh.Deps.Sheets, from, to)
	if err != nil {
		log.Printf("runFotSheetFill: Ошибка расчёта зарплат для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось рассчитать зарплаты: "+err.Error())
		return
	}
	if err := bh.Deps.Sheets.FillFotSheet(ctx, title, lines); err != nil {
		log.Printf("runFotSheetFill: Ошибка заполнения листа ФОТ для chatID %d: %v", chatID, err)
		bh.sendErrorMessageHelper(chatID, messageID, "❌ Не удалось заполнить лист ФОТ: "+err.Error())
		return
	}

	bh.sendOrEditMessageHelper(chatID, messageID, "✅ Лист '"+title+"' заполнен.", &keyboard, "")
}
