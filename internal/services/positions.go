// Файл: internal/services/positions.go
package services

import (
	"context"
	"log"
	"time"

	"pizzabot/internal/db"
	"pizzabot/internal/iiko"
)

// Дата начала должности для сотрудников, впервые попавших в историю.
var defaultPositionStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// MonitorPositionChanges сверяет текущие роли сотрудников в iiko с историей
// должностей. Новому сотруднику открывается период с давней датой, при смене
// роли прежний период закрывается и открывается новый с сегодняшнего дня.
func MonitorPositionChanges(ctx context.Context, client *iiko.Client) error {
	employees, err := client.Employees(ctx)
	if err != nil {
		return err
	}

	changes, added := 0, 0
	for _, emp := range employees {
		if emp.Deleted || emp.RoleName == "" || emp.RoleName == "—" {
			continue
		}

		current, err := db.GetCurrentPosition(emp.ID)
		if err != nil {
			log.Printf("Предупреждение: не удалось прочитать должность %s: %v", emp.Name, err)
			continue
		}
		if current != nil && current.PositionName == emp.RoleName {
			continue
		}

		if current == nil {
			log.Printf("Новый сотрудник: %s - %s (с %s)", emp.Name, emp.RoleName, defaultPositionStart.Format("02.01.2006"))
			err = db.SetEmployeePosition(emp.ID, emp.Name, emp.RoleName, defaultPositionStart, nil)
			added++
		} else {
			log.Printf("Изменение должности: %s (%s -> %s)", emp.Name, current.PositionName, emp.RoleName)
			err = db.SetEmployeePosition(emp.ID, emp.Name, emp.RoleName, dateOnly(time.Now()), nil)
		}
		if err != nil {
			log.Printf("Предупреждение: не удалось обновить должность %s: %v", emp.Name, err)
			continue
		}
		changes++
	}

	if changes > 0 {
		log.Printf("Мониторинг должностей: изменений %d (новых сотрудников %d)", changes, added)
	} else {
		log.Println("Мониторинг должностей: изменений не обнаружено")
	}
	return nil
}

// RefreshReferenceData обновляет локальные справочники сотрудников и складов.
func RefreshReferenceData(ctx context.Context, client *iiko.Client) error {
	employees, err := client.Employees(ctx)
	if err != nil {
		return err
	}
	if err := db.UpsertEmployees(employees); err != nil {
		return err
	}

	stores, err := client.Stores(ctx)
	if err != nil {
		return err
	}
	if err := db.UpsertStores(stores); err != nil {
		return err
	}
	log.Printf("Справочники обновлены: %d сотрудников, %d складов", len(employees), len(stores))
	return nil
}
