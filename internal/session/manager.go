// Файл: internal/session/manager.go
package session

import (
	"log"
	"sync"

	"pizzabot/internal/constants"
)

// SessionManager управляет состояниями диалогов и временными данными отчётов.
type SessionManager struct {
	userStates     map[int64]string
	userHistory    map[int64][]string
	userStateMutex sync.RWMutex

	tempReports      map[int64]TempReportData
	tempReportsMutex sync.RWMutex
}

// NewSessionManager создаёт и возвращает новый экземпляр SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		userStates:  make(map[int64]string),
		userHistory: make(map[int64][]string),
		tempReports: make(map[int64]TempReportData),
	}
}

// GetState возвращает текущее состояние пользователя, по умолчанию STATE_IDLE.
func (sm *SessionManager) GetState(chatID int64) string {
	sm.userStateMutex.RLock()
	defer sm.userStateMutex.RUnlock()
	state, ok := sm.userStates[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState устанавливает новое состояние пользователя и пишет его в историю.
func (sm *SessionManager) SetState(chatID int64, state string) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()

	sm.userStates[chatID] = state
	historyLen := len(sm.userHistory[chatID])
	if historyLen == 0 || sm.userHistory[chatID][historyLen-1] != state {
		sm.userHistory[chatID] = append(sm.userHistory[chatID], state)
	}
	log.Printf("SessionManager.SetState: состояние для chatID %d установлено: %s", chatID, state)
}

// PopState возвращает пользователя к предыдущему состоянию истории.
// При пустой истории устанавливается STATE_IDLE.
func (sm *SessionManager) PopState(chatID int64) string {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()

	history, ok := sm.userHistory[chatID]
	if ok && len(history) > 1 {
		sm.userHistory[chatID] = history[:len(history)-1]
		newState := sm.userHistory[chatID][len(sm.userHistory[chatID])-1]
		sm.userStates[chatID] = newState
		return newState
	}

	sm.userStates[chatID] = constants.STATE_IDLE
	sm.userHistory[chatID] = []string{constants.STATE_IDLE}
	return constants.STATE_IDLE
}

// ClearState сбрасывает состояние пользователя к STATE_IDLE и очищает историю.
func (sm *SessionManager) ClearState(chatID int64) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	sm.userStates[chatID] = constants.STATE_IDLE
	sm.userHistory[chatID] = []string{constants.STATE_IDLE}
}

// GetTempReport возвращает временные данные диалога пользователя,
// создавая пустые при первом обращении.
func (sm *SessionManager) GetTempReport(chatID int64) TempReportData {
	sm.tempReportsMutex.RLock()
	data, exists := sm.tempReports[chatID]
	sm.tempReportsMutex.RUnlock()

	if !exists {
		newData := NewTempReport(chatID)
		sm.tempReportsMutex.Lock()
		sm.tempReports[chatID] = newData
		sm.tempReportsMutex.Unlock()
		return newData
	}
	return data
}

// UpdateTempReport обновляет временные данные диалога пользователя.
func (sm *SessionManager) UpdateTempReport(chatID int64, data TempReportData) {
	sm.tempReportsMutex.Lock()
	defer sm.tempReportsMutex.Unlock()
	sm.tempReports[chatID] = data
}

// ClearTempReport удаляет временные данные диалога пользователя.
func (sm *SessionManager) ClearTempReport(chatID int64) {
	sm.tempReportsMutex.Lock()
	defer sm.tempReportsMutex.Unlock()
	delete(sm.tempReports, chatID)
}
