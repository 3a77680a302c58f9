// Файл: internal/db/position_commission_ops.go
package db

import (
	"database/sql"
	"fmt"

	"pizzabot/internal/models"
)

// GetPositionSettings возвращает условия оплаты должности из БД.
// Отсутствующая должность — не ошибка, возвращается (nil, nil).
func GetPositionSettings(positionName string) (*models.PositionSettings, error) {
	var s models.PositionSettings
	var fixedRate sql.NullFloat64
	err := DB.QueryRow(`
        SELECT position_name, payment_type, fixed_rate, commission_percent, commission_type
        FROM position_commissions
        WHERE lower(position_name) = lower($1)`,
		positionName).Scan(&s.PositionName, &s.PaymentType, &fixedRate, &s.CommissionPercent, &s.CommissionType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения условий оплаты должности '%s': %w", positionName, err)
	}
	if fixedRate.Valid {
		s.FixedRate = &fixedRate.Float64
	}
	return &s, nil
}

// UpsertPositionSettings сохраняет условия оплаты должности.
func UpsertPositionSettings(s models.PositionSettings) error {
	var fixedRate interface{}
	if s.FixedRate != nil {
		fixedRate = *s.FixedRate
	}
	_, err := DB.Exec(`
        INSERT INTO position_commissions (position_name, payment_type, fixed_rate, commission_percent, commission_type, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (position_name) DO UPDATE SET
            payment_type = EXCLUDED.payment_type,
            fixed_rate = EXCLUDED.fixed_rate,
            commission_percent = EXCLUDED.commission_percent,
            commission_type = EXCLUDED.commission_type,
            updated_at = NOW()`,
		s.PositionName, s.PaymentType, fixedRate, s.CommissionPercent, s.CommissionType)
	if err != nil {
		return fmt.Errorf("ошибка сохранения условий оплаты должности '%s': %w", s.PositionName, err)
	}
	return nil
}

// ListPositionSettings возвращает условия оплаты всех должностей.
func ListPositionSettings() ([]models.PositionSettings, error) {
	rows, err := DB.Query(`
        SELECT position_name, payment_type, fixed_rate, commission_percent, commission_type
        FROM position_commissions
        ORDER BY position_name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения условий оплаты должностей: %w", err)
	}
	defer rows.Close()

	var result []models.PositionSettings
	for rows.Next() {
		var s models.PositionSettings
		var fixedRate sql.NullFloat64
		if err := rows.Scan(&s.PositionName, &s.PaymentType, &fixedRate, &s.CommissionPercent, &s.CommissionType); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки условий оплаты: %w", err)
		}
		if fixedRate.Valid {
			s.FixedRate = &fixedRate.Float64
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
