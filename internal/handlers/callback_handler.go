// Файл: internal/handlers/callback_handler.go
package handlers

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
	"pizzabot/internal/services"
)

// HandleCallback обрабатывает нажатия inline-кнопок.
func (bh *BotHandler) HandleCallback(update tgbotapi.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	log.Printf("HandleCallback: ChatID=%d, MessageID=%d, Data='%s'", chatID, messageID, data)

	// Убираем "часики" на кнопке
	if _, err := bh.Deps.BotClient.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("HandleCallback: Ошибка ответа на callback для chatID %d: %v", chatID, err)
	}

	if !bh.isAdmin(chatID) {
		log.Printf("HandleCallback: chatID %d не входит в список администраторов. Доступ запрещён.", chatID)
		bh.sendErrorMessageHelper(chatID, messageID, constants.AccessDeniedMessage)
		return
	}

	switch data {
	case constants.CALLBACK_MAIN_MENU:
		bh.Deps.SessionManager.ClearState(chatID)
		bh.Deps.SessionManager.ClearTempReport(chatID)
		bh.SendMainMenu(chatID, messageID)

	case constants.CALLBACK_REPORT_REVENUE,
		constants.CALLBACK_REPORT_SALARY,
		constants.CALLBACK_REPORT_SALARY_XLSX,
		constants.CALLBACK_REPORT_PURCHASES:
		bh.sendPeriodMenu(chatID, messageID, data)

	case constants.CALLBACK_REPORT_CONSOLIDATED:
		// Сводный отчёт всегда строится с начала месяца по вчера
		from, to, err := services.ResolveMonthPeriod(time.Now())
		if err != nil {
			bh.sendErrorMessageHelper(chatID, messageID, "❌ "+err.Error())
			return
		}
		bh.runReport(chatID, messageID, data, from, to)

	case constants.CALLBACK_PERIOD_TODAY:
		today := time.Now()
		bh.runStoredReport(chatID, messageID, today, today)

	case constants.CALLBACK_PERIOD_YESTERDAY:
		yesterday := time.Now().AddDate(0, 0, -1)
		bh.runStoredReport(chatID, messageID, yesterday, yesterday)

	case constants.CALLBACK_PERIOD_MONTH:
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		bh.runStoredReport(chatID, messageID, from, now)

	case constants.CALLBACK_PERIOD_CUSTOM:
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_REPORT_PERIOD_FROM)
		keyboard := mainMenuKeyboard()
		bh.sendOrEditMessageHelper(chatID, messageID,
			"Введите начальную дату периода.\n"+constants.DateInputHint, &keyboard, "")

	case constants.CALLBACK_SYNC_FINTABLO:
		bh.runFintabloSync(chatID, messageID)

	case constants.CALLBACK_FILL_FOT_SHEET:
		bh.runFotSheetFill(chatID, messageID)

	case constants.CALLBACK_SETTINGS:
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_MENU)
		bh.sendSettingsMenu(chatID, messageID)

	case constants.CALLBACK_SETTINGS_YANDEX:
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_YANDEX_PERCENT)
		keyboard := settingsBackKeyboard()
		bh.sendOrEditMessageHelper(chatID, messageID,
			"Введите комиссию Яндекс-доставки в процентах, например 36.5.", &keyboard, "")

	case constants.CALLBACK_SETTINGS_COST_PLAN:
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_COST_PLAN_MONTH)
		keyboard := settingsBackKeyboard()
		bh.sendOrEditMessageHelper(chatID, messageID,
			"Введите месяц плана в формате ММ.ГГГГ, например 08.2026.", &keyboard, "")

	case "settings_departments":
		bh.sendDepartmentsPrompt(chatID, messageID)

	case "settings_position":
		bh.sendPositionCorrectionPrompt(chatID, messageID)

	case "settings_commission":
		bh.sendCommissionPrompt(chatID, messageID)

	case "settings_back":
		if bh.Deps.SessionManager.PopState(chatID) == constants.STATE_SETTINGS_MENU {
			bh.sendSettingsMenu(chatID, messageID)
			return
		}
		bh.SendMainMenu(chatID, messageID)

	default:
		if segment, ok := strings.CutPrefix(data, "costplan_segment_"); ok {
			bh.handleCostPlanSegment(chatID, messageID, segment)
			return
		}
		log.Printf("HandleCallback: Неизвестный callback '%s' от chatID %d", data, chatID)
		bh.SendMainMenu(chatID, messageID)
	}
}

// runStoredReport запускает отчёт, вид которого сохранён в сессии.
func (bh *BotHandler) runStoredReport(chatID int64, messageID int, from, to time.Time) {
	reportData := bh.Deps.SessionManager.GetTempReport(chatID)
	if reportData.ReportKind == "" {
		log.Printf("runStoredReport: Для chatID %d не выбран вид отчёта.", chatID)
		bh.SendMainMenu(chatID, messageID)
		return
	}
	bh.runReport(chatID, messageID, reportData.ReportKind, from, to)
}

// handleCostPlanSegment сохраняет выбранный сегмент и запрашивает значение плана.
func (bh *BotHandler) handleCostPlanSegment(chatID int64, messageID int, segment string) {
	if segment != constants.SEGMENT_KITCHEN && segment != constants.SEGMENT_BAR {
		log.Printf("handleCostPlanSegment: Неизвестный сегмент '%s' от chatID %d", segment, chatID)
		bh.SendMainMenu(chatID, messageID)
		return
	}

	reportData := bh.Deps.SessionManager.GetTempReport(chatID)
	reportData.CostPlanSegment = segment
	bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_COST_PLAN_VALUE)

	keyboard := settingsBackKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID,
		"Введите плановый процент себестоимости за месяц, например 25.5.", &keyboard, "")
}

// sendDepartmentsPrompt показывает текущие привязки должностей к отделам
// и запрашивает новую.
func (bh *BotHandler) sendDepartmentsPrompt(chatID int64, messageID int) {
	var b strings.Builder
	b.WriteString("🏷 Отделы должностей\n\n")

	departments, err := db.GetPositionDepartments()
	if err != nil {
		log.Printf("sendDepartmentsPrompt: Ошибка чтения отделов: %v", err)
	} else if len(departments) > 0 {
		b.WriteString("Текущие привязки:\n")
		positions := make([]string, 0, len(departments))
		for position := range departments {
			positions = append(positions, position)
		}
		sort.Strings(positions)
		for _, position := range positions {
			b.WriteString("  • " + position + " = " + departments[position] + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Стандартные отделы: " + strings.Join(constants.Departments, ", ") + ".\n")
	b.WriteString("Введите в формате: должность = отдел, например Пиццамейкер = Кухня.")

	bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_POSITION_NAME)
	keyboard := settingsBackKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, b.String(), &keyboard, "")
}

// sendPositionCorrectionPrompt запрашивает корректировку должности сотрудника.
func (bh *BotHandler) sendPositionCorrectionPrompt(chatID int64, messageID int) {
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_POSITION_EMP)
	keyboard := settingsBackKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID,
		"👤 Корректировка должности\n\n"+
			"Введите в формате: сотрудник = должность = дата, например\n"+
			"Иванов Иван = Пиццамейкер = 01.08.2026.\n"+
			"Чтобы закрыть должность уволенного, вместо должности укажите слово 'уволен'.",
		&keyboard, "")
}

// sendCommissionPrompt показывает текущие комиссии должностей и запрашивает новую.
func (bh *BotHandler) sendCommissionPrompt(chatID int64, messageID int) {
	var b strings.Builder
	b.WriteString("💸 Комиссия должностей\n\n")

	stored, err := db.ListPositionSettings()
	if err != nil {
		log.Printf("sendCommissionPrompt: Ошибка чтения условий оплаты: %v", err)
	} else if len(stored) > 0 {
		b.WriteString("Текущие проценты:\n")
		for _, s := range stored {
			b.WriteString(fmt.Sprintf("  • %s: %.1f%% (%s)\n", s.PositionName, s.CommissionPercent, s.CommissionType))
		}
		b.WriteString("\n")
	}
	b.WriteString("Введите в формате: должность = процент, например Пиццамейкер = 1.5.")

	bh.Deps.SessionManager.SetState(chatID, constants.STATE_SETTINGS_COMMISSION_VALUE)
	keyboard := settingsBackKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, b.String(), &keyboard, "")
}
