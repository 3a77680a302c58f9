// Файл: internal/db/employee_ops.go
package db

import (
	"fmt"

	"pizzabot/internal/models"
)

// UpsertEmployees обновляет локальный справочник сотрудников из iiko.
func UpsertEmployees(employees []models.Employee) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции сотрудников: %w", err)
	}
	defer tx.Rollback()

	for _, e := range employees {
		_, err = tx.Exec(`
            INSERT INTO employees (id, name, role_code, role_name, deleted, updated_at)
            VALUES ($1, $2, $3, $4, $5, NOW())
            ON CONFLICT (id) DO UPDATE SET
                name = EXCLUDED.name,
                role_code = EXCLUDED.role_code,
                role_name = EXCLUDED.role_name,
                deleted = EXCLUDED.deleted,
                updated_at = NOW()`,
			e.ID, e.Name, e.RoleCode, e.RoleName, e.Deleted)
		if err != nil {
			return fmt.Errorf("ошибка сохранения сотрудника '%s': %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// ListEmployees возвращает сотрудников из локального справочника.
func ListEmployees() ([]models.Employee, error) {
	rows, err := DB.Query(`SELECT id, name, COALESCE(role_code, ''), COALESCE(role_name, ''), deleted FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника сотрудников: %w", err)
	}
	defer rows.Close()

	var result []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.RoleCode, &e.RoleName, &e.Deleted); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки сотрудника: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
