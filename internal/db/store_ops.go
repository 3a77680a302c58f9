// Файл: internal/db/store_ops.go
package db

import (
	"fmt"

	"pizzabot/internal/models"
)

// UpsertStores обновляет локальный справочник складов из iiko.
func UpsertStores(stores []models.Store) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции складов: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stores {
		_, err = tx.Exec(`
            INSERT INTO stores (id, name, type, updated_at) VALUES ($1, $2, $3, NOW())
            ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type, updated_at = NOW()`,
			s.ID, s.Name, s.Type)
		if err != nil {
			return fmt.Errorf("ошибка сохранения склада '%s': %w", s.Name, err)
		}
	}
	return tx.Commit()
}

// GetStoreNames возвращает соответствие ID склада -> название.
func GetStoreNames() (map[string]string, error) {
	rows, err := DB.Query(`SELECT id, name FROM stores`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника складов: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки склада: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}
