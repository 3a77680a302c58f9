// Файл: internal/handlers/menu_handlers.go
package handlers

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"pizzabot/internal/constants"
	"pizzabot/internal/db"
)

// SendMainMenu отправляет главное меню с отчётами и действиями.
func (bh *BotHandler) SendMainMenu(chatID int64, messageIDToEdit int) {
	log.Printf("BotHandler.SendMainMenu для chatID %d, messageIDToEdit: %d", chatID, messageIDToEdit)

	msgText := "🍕 *Пиццерия*\nВыберите отчёт или действие:"

	var rows [][]tgbotapi.InlineKeyboardButton
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💰 Выручка", constants.CALLBACK_REPORT_REVENUE),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Закупки", constants.CALLBACK_REPORT_PURCHASES),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👥 Зарплата", constants.CALLBACK_REPORT_SALARY),
		tgbotapi.NewInlineKeyboardButtonData("📄 Зарплата (Excel)", constants.CALLBACK_REPORT_SALARY_XLSX),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Сводный отчёт", constants.CALLBACK_REPORT_CONSOLIDATED),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Синхронизация FinTablo", constants.CALLBACK_SYNC_FINTABLO),
		tgbotapi.NewInlineKeyboardButtonData("📋 Заполнить лист ФОТ", constants.CALLBACK_FILL_FOT_SHEET),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", constants.CALLBACK_SETTINGS),
	))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := bh.sendOrEditMessageHelper(chatID, messageIDToEdit, msgText, &keyboard, tgbotapi.ModeMarkdown)
	if err != nil {
		log.Printf("SendMainMenu: Ошибка отправки главного меню для chatID %d: %v", chatID, err)
	}
}

// sendPeriodMenu предлагает выбор периода для запрошенного отчёта.
func (bh *BotHandler) sendPeriodMenu(chatID int64, messageIDToEdit int, reportKind string) {
	reportData := bh.Deps.SessionManager.GetTempReport(chatID)
	reportData.ReportKind = reportKind
	bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", constants.CALLBACK_PERIOD_TODAY),
			tgbotapi.NewInlineKeyboardButtonData("Вчера", constants.CALLBACK_PERIOD_YESTERDAY),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("С начала месяца", constants.CALLBACK_PERIOD_MONTH),
			tgbotapi.NewInlineKeyboardButtonData("Свой период", constants.CALLBACK_PERIOD_CUSTOM),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
	_, err := bh.sendOrEditMessageHelper(chatID, messageIDToEdit, "📅 Выберите период отчёта:", &keyboard, "")
	if err != nil {
		log.Printf("sendPeriodMenu: Ошибка для chatID %d: %v", chatID, err)
	}
}

// sendSettingsMenu показывает текущие настройки и пункты их изменения.
func (bh *BotHandler) sendSettingsMenu(chatID int64, messageIDToEdit int) {
	yandexPercent, err := db.GetFloatSetting(constants.SETTING_YANDEX_COMMISSION, bh.Deps.Config.DefaultYandexPercent)
	if err != nil {
		log.Printf("sendSettingsMenu: Ошибка чтения комиссии Яндекс: %v", err)
		yandexPercent = bh.Deps.Config.DefaultYandexPercent
	}

	msgText := fmt.Sprintf("⚙️ *Настройки*\n\nКомиссия Яндекс-доставки: %.1f%%", yandexPercent)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚗 Комиссия Яндекс", constants.CALLBACK_SETTINGS_YANDEX),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 План себестоимости", constants.CALLBACK_SETTINGS_COST_PLAN),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏷 Отделы должностей", "settings_departments"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Должность сотрудника", "settings_position"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Комиссия должности", "settings_commission"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
	_, err = bh.sendOrEditMessageHelper(chatID, messageIDToEdit, msgText, &keyboard, tgbotapi.ModeMarkdown)
	if err != nil {
		log.Printf("sendSettingsMenu: Ошибка для chatID %d: %v", chatID, err)
	}
}

// sendCostPlanSegmentMenu предлагает выбор сегмента плана себестоимости.
func (bh *BotHandler) sendCostPlanSegmentMenu(chatID int64, messageIDToEdit int) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍕 Кухня + доставка", "costplan_segment_"+constants.SEGMENT_KITCHEN),
			tgbotapi.NewInlineKeyboardButtonData("🍹 Бар", "costplan_segment_"+constants.SEGMENT_BAR),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
	_, err := bh.sendOrEditMessageHelper(chatID, messageIDToEdit, "Выберите сегмент плана:", &keyboard, "")
	if err != nil {
		log.Printf("sendCostPlanSegmentMenu: Ошибка для chatID %d: %v", chatID, err)
	}
}
