// Файл: internal/handlers/message_handler.go
package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
	"pizzabot/internal/models"
	"pizzabot/internal/utils"
)

// HandleMessage обрабатывает входящие сообщения от Telegram.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	message := update.Message
	chatID := message.Chat.ID
	userMessageID := message.MessageID
	text := strings.TrimSpace(message.Text)

	log.Printf("HandleMessage: ChatID=%d, UserMessageID=%d, Text='%s'", chatID, userMessageID, text)

	if !bh.isAdmin(chatID) {
		log.Printf("HandleMessage: chatID %d не входит в список администраторов. Доступ запрещён.", chatID)
		bh.sendMessage(chatID, constants.AccessDeniedMessage)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start", "menu":
			bh.Deps.SessionManager.ClearState(chatID)
			bh.Deps.SessionManager.ClearTempReport(chatID)
			bh.SendMainMenu(chatID, 0)
		default:
			bh.sendMessage(chatID, "Неизвестная команда. Используйте /start.")
		}
		return
	}

	state := bh.Deps.SessionManager.GetState(chatID)
	reportData := bh.Deps.SessionManager.GetTempReport(chatID)
	menuMessageID := reportData.CurrentMessageID

	switch state {
	case constants.STATE_REPORT_PERIOD_FROM:
		from, err := utils.ValidateDate(text)
		if err != nil {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ "+err.Error()+"\n"+constants.DateInputHint)
			return
		}
		reportData.PeriodFrom = from
		bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_REPORT_PERIOD_TO)
		bh.deleteMessageHelper(chatID, userMessageID)
		keyboard := mainMenuKeyboard()
		bh.sendOrEditMessageHelper(chatID, menuMessageID,
			"Начало периода: "+utils.FormatDate(from)+"\nТеперь введите конечную дату.\n"+constants.DateInputHint,
			&keyboard, "")

	case constants.STATE_REPORT_PERIOD_TO:
		to, err := utils.ValidateDate(text)
		if err != nil {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ "+err.Error()+"\n"+constants.DateInputHint)
			return
		}
		if err := utils.ValidatePeriod(reportData.PeriodFrom, to); err != nil {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ "+err.Error())
			return
		}
		reportData.PeriodTo = to
		bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
		bh.Deps.SessionManager.ClearState(chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.runReport(chatID, menuMessageID, reportData.ReportKind, reportData.PeriodFrom, to)

	case constants.STATE_SETTINGS_YANDEX_PERCENT:
		percent, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || percent < 0 || percent > 100 {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите число от 0 до 100, например 36.5.")
			return
		}
		if err := db.SetSetting(constants.SETTING_YANDEX_COMMISSION, strconv.FormatFloat(percent, 'f', -1, 64)); err != nil {
			log.Printf("HandleMessage: Ошибка сохранения комиссии Яндекс: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось сохранить настройку. Попробуйте позже.")
			return
		}
		bh.Deps.SessionManager.ClearState(chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendSettingsMenu(chatID, menuMessageID)

	case constants.STATE_SETTINGS_COST_PLAN_MONTH:
		month, err := time.Parse("01.2006", text)
		if err != nil {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите месяц в формате ММ.ГГГГ, например 08.2026.")
			return
		}
		reportData.CostPlanMonth = month
		bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_IDLE)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendCostPlanSegmentMenu(chatID, menuMessageID)

	case constants.STATE_SETTINGS_COST_PLAN_VALUE:
		value, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || value < 0 || value > 100 {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите процент от 0 до 100, например 25.5.")
			return
		}
		if err := db.UpsertCostPlan(reportData.CostPlanMonth, reportData.CostPlanSegment, value); err != nil {
			log.Printf("HandleMessage: Ошибка сохранения плана себестоимости: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось сохранить план. Попробуйте позже.")
			return
		}
		bh.Deps.SessionManager.ClearState(chatID)
		bh.Deps.SessionManager.ClearTempReport(chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		keyboard := mainMenuKeyboard()
		bh.sendOrEditMessageHelper(chatID, menuMessageID,
			"✅ План себестоимости на "+utils.RussianMonthName(reportData.CostPlanMonth.Month())+" "+
				strconv.Itoa(reportData.CostPlanMonth.Year())+" сохранён.",
			&keyboard, "")

	case constants.STATE_SETTINGS_POSITION_NAME:
		position, department, ok := strings.Cut(text, "=")
		position = strings.TrimSpace(position)
		department = strings.TrimSpace(department)
		if !ok || position == "" || department == "" {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите в формате: должность = отдел, например Пиццамейкер = Кухня.")
			return
		}
		if err := db.SetPositionDepartment(strings.ToLower(position), department); err != nil {
			log.Printf("HandleMessage: Ошибка сохранения отдела должности: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось сохранить отдел. Попробуйте позже.")
			return
		}
		bh.Deps.SessionManager.ClearState(chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendSettingsMenu(chatID, menuMessageID)

	case constants.STATE_SETTINGS_POSITION_EMP:
		bh.handlePositionCorrection(chatID, userMessageID, menuMessageID, text)

	case constants.STATE_SETTINGS_COMMISSION_VALUE:
		position, percentText, ok := strings.Cut(text, "=")
		position = strings.TrimSpace(position)
		percent, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(percentText), ",", "."), 64)
		if !ok || position == "" || err != nil || percent < 0 || percent > 100 {
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите в формате: должность = процент, например Пиццамейкер = 1.5.")
			return
		}
		settings, err := db.GetPositionSettings(position)
		if err != nil {
			log.Printf("HandleMessage: Ошибка чтения условий оплаты должности: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось прочитать условия оплаты. Попробуйте позже.")
			return
		}
		if settings == nil {
			settings = &models.PositionSettings{
				PositionName:   position,
				PaymentType:    constants.PAYMENT_TYPE_HOURLY,
				CommissionType: constants.COMMISSION_TYPE_SALES,
			}
		}
		settings.CommissionPercent = percent
		if err := db.UpsertPositionSettings(*settings); err != nil {
			log.Printf("HandleMessage: Ошибка сохранения комиссии должности: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось сохранить комиссию. Попробуйте позже.")
			return
		}
		bh.Deps.SessionManager.ClearState(chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendSettingsMenu(chatID, menuMessageID)

	default:
		log.Printf("HandleMessage: chatID %d прислал текст вне диалога, показываем главное меню.", chatID)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.SendMainMenu(chatID, menuMessageID)
	}
}

// handlePositionCorrection разбирает ввод "сотрудник = должность = дата" и
// правит историю должностей. Слово "уволен" закрывает открытый период.
func (bh *BotHandler) handlePositionCorrection(chatID int64, userMessageID, menuMessageID int, text string) {
	parts := strings.Split(text, "=")
	if len(parts) != 3 {
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите в формате: сотрудник = должность = дата.")
		return
	}
	name := strings.TrimSpace(parts[0])
	position := strings.TrimSpace(parts[1])
	date, err := utils.ValidateDate(strings.TrimSpace(parts[2]))
	if err != nil || name == "" || position == "" {
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Введите в формате: сотрудник = должность = дата, например Иванов Иван = Пиццамейкер = 01.08.2026.")
		return
	}

	employee, err := findEmployeeByName(name)
	if err != nil {
		log.Printf("handlePositionCorrection: Ошибка чтения справочника сотрудников: %v", err)
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Справочник сотрудников недоступен. Попробуйте позже.")
		return
	}
	if employee == nil {
		bh.deleteMessageHelper(chatID, userMessageID)
		bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Сотрудник '"+name+"' не найден в справочнике.")
		return
	}

	var confirmation string
	if strings.EqualFold(position, "уволен") {
		if err := db.ClosePosition(employee.ID, date); err != nil {
			log.Printf("handlePositionCorrection: Ошибка закрытия должности: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось закрыть должность. Попробуйте позже.")
			return
		}
		confirmation = "✅ Должность сотрудника " + employee.Name + " закрыта датой " + utils.FormatDate(date) + "."
	} else {
		if err := db.SetEmployeePosition(employee.ID, employee.Name, position, date, nil); err != nil {
			log.Printf("handlePositionCorrection: Ошибка сохранения должности: %v", err)
			bh.deleteMessageHelper(chatID, userMessageID)
			bh.sendErrorMessageHelper(chatID, menuMessageID, "❌ Не удалось сохранить должность. Попробуйте позже.")
			return
		}
		confirmation = "✅ " + employee.Name + ": должность '" + position + "' с " + utils.FormatDate(date) + "."
		if settings, err := db.GetPositionSettings(position); err == nil && settings != nil && settings.FixedRate != nil {
			confirmation += fmt.Sprintf("\nУсловия оплаты: %s, ставка %.2f.", settings.PaymentType, *settings.FixedRate)
		}
	}

	bh.Deps.SessionManager.ClearState(chatID)
	bh.deleteMessageHelper(chatID, userMessageID)
	keyboard := mainMenuKeyboard()
	bh.sendOrEditMessageHelper(chatID, menuMessageID, confirmation, &keyboard, "")
}

// findEmployeeByName ищет сотрудника в локальном справочнике по имени.
func findEmployeeByName(name string) (*models.Employee, error) {
	employees, err := db.ListEmployees()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if strings.EqualFold(employees[i].Name, name) {
			return &employees[i], nil
		}
	}
	return nil, nil
}
