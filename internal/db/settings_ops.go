// Файл: internal/db/settings_ops.go
package db

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GetSetting возвращает значение настройки по ключу.
// Отсутствующий ключ — не ошибка, возвращается ("", false).
func GetSetting(key string) (string, bool, error) {
	var value string
	err := DB.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения настройки '%s': %w", key, err)
	}
	return value, true, nil
}

// SetSetting сохраняет значение настройки.
func SetSetting(key, value string) error {
	_, err := DB.Exec(`
        INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	if err != nil {
		return fmt.Errorf("ошибка сохранения настройки '%s': %w", key, err)
	}
	return nil
}

// GetFloatSetting возвращает числовую настройку или значение по умолчанию.
func GetFloatSetting(key string, defaultValue float64) (float64, error) {
	raw, ok, err := GetSetting(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultValue, nil
	}
	value, errParse := strconv.ParseFloat(raw, 64)
	if errParse != nil {
		return 0, fmt.Errorf("некорректное значение настройки '%s': '%s'", key, raw)
	}
	return value, nil
}
