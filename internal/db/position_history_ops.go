// Файл: internal/db/position_history_ops.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pizzabot/internal/models"
)

// GetPositionHistory возвращает периоды должностей сотрудника, пересекающиеся
// с диапазоном [from, to], с границами, обрезанными по диапазону.
func GetPositionHistory(employeeID string, from, to time.Time) ([]models.PositionHistoryEntry, error) {
	rows, err := DB.Query(`
        SELECT id, employee_id, COALESCE(employee_name, ''), position_name, valid_from, valid_to
        FROM employee_position_history
        WHERE employee_id = $1
          AND valid_from <= $3
          AND (valid_to IS NULL OR valid_to >= $2)
        ORDER BY valid_from`,
		employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса истории должностей сотрудника %s: %w", employeeID, err)
	}
	defer rows.Close()

	var entries []models.PositionHistoryEntry
	for rows.Next() {
		var e models.PositionHistoryEntry
		var validTo sql.NullTime
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.PositionName, &e.ValidFrom, &validTo); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки истории должностей: %w", err)
		}
		if e.ValidFrom.Before(from) {
			e.ValidFrom = from
		}
		end := to
		if validTo.Valid && validTo.Time.Before(to) {
			end = validTo.Time
		}
		e.ValidTo = &end
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetCurrentPosition возвращает открытый период должности сотрудника, если есть.
func GetCurrentPosition(employeeID string) (*models.PositionHistoryEntry, error) {
	var e models.PositionHistoryEntry
	err := DB.QueryRow(`
        SELECT id, employee_id, COALESCE(employee_name, ''), position_name, valid_from
        FROM employee_position_history
        WHERE employee_id = $1 AND valid_to IS NULL
        ORDER BY valid_from DESC
        LIMIT 1`,
		employeeID).Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.PositionName, &e.ValidFrom)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения текущей должности сотрудника %s: %w", employeeID, err)
	}
	return &e, nil
}

// SetEmployeePosition записывает период должности сотрудника, корректируя
// пересекающиеся записи: полностью накрытые удаляются, частично — обрезаются.
// validTo == nil означает открытый период.
func SetEmployeePosition(employeeID, employeeName, positionName string, validFrom time.Time, validTo *time.Time) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции истории должностей: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
        SELECT id, valid_from, valid_to
        FROM employee_position_history
        WHERE employee_id = $1
          AND ($2::date IS NULL OR valid_from <= $2)
          AND (valid_to IS NULL OR valid_to >= $3)`,
		employeeID, validTo, validFrom)
	if err != nil {
		return fmt.Errorf("ошибка поиска пересекающихся периодов: %w", err)
	}

	type overlap struct {
		id   string
		from time.Time
		to   sql.NullTime
	}
	var overlaps []overlap
	for rows.Next() {
		var o overlap
		if err := rows.Scan(&o.id, &o.from, &o.to); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка чтения пересекающегося периода: %w", err)
		}
		overlaps = append(overlaps, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, o := range overlaps {
		startsBefore := o.from.Before(validFrom)
		endsAfter := validTo != nil && (!o.to.Valid || o.to.Time.After(*validTo))

		switch {
		case startsBefore && endsAfter:
			// Существующий период накрывает новый с обеих сторон: обрезаем
			// его слева и создаём хвост справа.
			_, err = tx.Exec(`UPDATE employee_position_history SET valid_to = $1, updated_at = NOW() WHERE id = $2`,
				validFrom.AddDate(0, 0, -1), o.id)
			if err == nil {
				var tailTo interface{}
				if o.to.Valid {
					tailTo = o.to.Time
				}
				_, err = tx.Exec(`
                    INSERT INTO employee_position_history (id, employee_id, employee_name, position_name, valid_from, valid_to)
                    SELECT $1, employee_id, employee_name, position_name, $2, $3
                    FROM employee_position_history WHERE id = $4`,
					uuid.NewString(), validTo.AddDate(0, 0, 1), tailTo, o.id)
			}
		case startsBefore:
			_, err = tx.Exec(`UPDATE employee_position_history SET valid_to = $1, updated_at = NOW() WHERE id = $2`,
				validFrom.AddDate(0, 0, -1), o.id)
		case endsAfter:
			_, err = tx.Exec(`UPDATE employee_position_history SET valid_from = $1, updated_at = NOW() WHERE id = $2`,
				validTo.AddDate(0, 0, 1), o.id)
		default:
			_, err = tx.Exec(`DELETE FROM employee_position_history WHERE id = $1`, o.id)
		}
		if err != nil {
			return fmt.Errorf("ошибка корректировки периода %s: %w", o.id, err)
		}
	}

	var validToArg interface{}
	if validTo != nil {
		validToArg = *validTo
	}
	_, err = tx.Exec(`
        INSERT INTO employee_position_history (id, employee_id, employee_name, position_name, valid_from, valid_to)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), employeeID, employeeName, positionName, validFrom, validToArg)
	if err != nil {
		return fmt.Errorf("ошибка вставки периода должности: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции истории должностей: %w", err)
	}
	log.Printf("История должностей: %s (%s) -> %s с %s", employeeName, employeeID, positionName, validFrom.Format("02.01.2006"))
	return nil
}

// ClosePosition закрывает открытый период должности сотрудника указанной датой.
func ClosePosition(employeeID string, validTo time.Time) error {
	_, err := DB.Exec(`
        UPDATE employee_position_history SET valid_to = $1, updated_at = NOW()
        WHERE employee_id = $2 AND valid_to IS NULL`,
		validTo, employeeID)
	if err != nil {
		return fmt.Errorf("ошибка закрытия периода должности сотрудника %s: %w", employeeID, err)
	}
	return nil
}
