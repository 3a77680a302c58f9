// Файл: internal/handlers/menu_helpers.go
package handlers

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"pizzabot/internal/constants"
	"pizzabot/internal/telegram_api"
)

// sendOrEditMessageHelper отправляет или редактирует сообщение и обновляет
// CurrentMessageID в сессии.
func (bh *BotHandler) sendOrEditMessageHelper(
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
	parseMode string,
) (tgbotapi.Message, error) {
	sentMsg, err := telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, messageIDToTryEdit, text, keyboard, parseMode)
	if err != nil {
		return tgbotapi.Message{}, err
	}

	if sentMsg.MessageID != 0 {
		reportData := bh.Deps.SessionManager.GetTempReport(chatID)
		reportData.CurrentMessageID = sentMsg.MessageID
		bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
	}
	return sentMsg, nil
}

// sendErrorMessageHelper отправляет сообщение об ошибке и делает его текущим в сессии.
func (bh *BotHandler) sendErrorMessageHelper(chatID int64, messageIDToEdit int, errorText string) (tgbotapi.Message, error) {
	sentMsg, err := telegram_api.SendErrorMessage(bh.Deps.BotClient, chatID, messageIDToEdit, errorText)
	if err != nil {
		return tgbotapi.Message{}, err
	}

	if sentMsg.MessageID != 0 {
		reportData := bh.Deps.SessionManager.GetTempReport(chatID)
		reportData.CurrentMessageID = sentMsg.MessageID
		bh.Deps.SessionManager.UpdateTempReport(chatID, reportData)
	}
	return sentMsg, nil
}

// deleteMessageHelper удаляет сообщение пользователя (введённые даты, числа),
// чтобы диалог оставался компактным.
func (bh *BotHandler) deleteMessageHelper(chatID int64, messageID int) bool {
	if messageID == 0 {
		return false
	}
	return telegram_api.DeleteMessage(bh.Deps.BotClient, chatID, messageID)
}

// sendMessage отправляет простое текстовое сообщение.
func (bh *BotHandler) sendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	if bh.Deps.BotClient == nil || bh.Deps.BotClient.GetAPI() == nil {
		log.Printf("sendMessage: BotClient не инициализирован для chatID %d", chatID)
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := bh.Deps.BotClient.Send(msg)
	if err != nil {
		log.Printf("sendMessage: Ошибка отправки сообщения для chatID %d: %v", chatID, err)
		return tgbotapi.Message{}, err
	}
	return sentMsg, nil
}

// mainMenuKeyboard возвращает клавиатуру с кнопкой возврата в главное меню.
func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
}

// settingsBackKeyboard — клавиатура вложенных диалогов настроек.
func settingsBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "settings_back"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Главное меню", constants.CALLBACK_MAIN_MENU),
		),
	)
}
