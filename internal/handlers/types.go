// Файл: internal/handlers/types.go
package handlers

import (
	"pizzabot/internal/config"
	"pizzabot/internal/fintablo"
	"pizzabot/internal/gsheets"
	"pizzabot/internal/iiko"
	"pizzabot/internal/session"
	"pizzabot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые для обработчиков.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.SessionManager
	Iiko           *iiko.Client
	Ledger         fintablo.Ledger
	Sheets         *gsheets.Client
}

// BotHandler инкапсулирует логику обработки сообщений и коллбэков.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil || deps.Iiko == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// isAdmin проверяет, входит ли chatID в список администраторов из конфигурации.
func (bh *BotHandler) isAdmin(chatID int64) bool {
	for _, id := range bh.Deps.Config.AdminChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
