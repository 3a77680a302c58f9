// Файл: internal/db/department_ops.go
package db

import "fmt"

// SetPositionDepartment привязывает должность к подразделению для группировки ФОТ.
func SetPositionDepartment(positionName, department string) error {
	_, err := DB.Exec(`
        INSERT INTO department_positions (position_name, department, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (position_name) DO UPDATE SET department = EXCLUDED.department, updated_at = NOW()`,
		positionName, department)
	if err != nil {
		return fmt.Errorf("ошибка привязки должности '%s' к подразделению: %w", positionName, err)
	}
	return nil
}

// GetPositionDepartments возвращает соответствие должность -> подразделение.
// Сравнение должностей при использовании карты ведётся без учёта регистра,
// поэтому ключи приводить к нижнему регистру должен вызывающий код.
func GetPositionDepartments() (map[string]string, error) {
	rows, err := DB.Query(`SELECT position_name, department FROM department_positions`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения привязок должностей к подразделениям: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var position, department string
		if err := rows.Scan(&position, &department); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки привязки подразделения: %w", err)
		}
		result[position] = department
	}
	return result, rows.Err()
}
