// Файл: internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"pizzabot/internal/constants"
	"pizzabot/internal/fintablo"
	"pizzabot/internal/gsheets"
	"pizzabot/internal/iiko"
	"pizzabot/internal/services"
)

// Scheduler запускает фоновые задачи: синхронизацию выручки, заполнение
// листа ФОТ и мониторинг должностей. Каждая задача защищена своим мьютексом,
// чтобы новый запуск не наложился на ещё идущий.
type Scheduler struct {
	iiko          *iiko.Client
	ledger        fintablo.Ledger
	sheets        *gsheets.Client
	yandexPercent float64

	revenueMu  sync.Mutex
	fotMu      sync.Mutex
	positionMu sync.Mutex
}

func New(iikoClient *iiko.Client, ledger fintablo.Ledger, sheetsClient *gsheets.Client, defaultYandexPercent float64) *Scheduler {
	return &Scheduler{
		iiko:          iikoClient,
		ledger:        ledger,
		sheets:        sheetsClient,
		yandexPercent: defaultYandexPercent,
	}
}

// Start запускает все фоновые циклы. Каждый цикл живёт до отмены контекста.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx, "синхронизация выручки", constants.RevenueSyncHour, constants.RevenueSyncMinute, s.syncRevenue)
	go s.runDaily(ctx, "заполнение листа ФОТ", constants.FotSheetFillHour, 0, s.fillFotSheet)
	go s.runEvery(ctx, "мониторинг должностей", 24*time.Hour, s.monitorPositions)
}

// runDaily выполняет задачу ежедневно в заданное время.
func (s *Scheduler) runDaily(ctx context.Context, name string, hour, minute int, job func(context.Context) error) {
	for {
		next := nextRunAt(time.Now(), hour, minute)
		wait := time.Until(next)
		log.Printf("Задача '%s' запланирована на %s (через %.0f мин)", name, next.Format("02.01 15:04"), wait.Minutes())

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		s.runOnce(ctx, name, job)
	}
}

// runEvery выполняет задачу сразу при старте и далее с заданным интервалом.
func (s *Scheduler) runEvery(ctx context.Context, name string, interval time.Duration, job func(context.Context) error) {
	s.runOnce(ctx, name, job)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, name, job)
		}
	}
}

// runOnce выполняет одну итерацию задачи с защитой от паники.
func (s *Scheduler) runOnce(ctx context.Context, name string, job func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Критическая ошибка: паника в задаче '%s': %v", name, r)
		}
	}()

	start := time.Now()
	log.Printf("Старт задачи '%s'", name)
	if err := job(ctx); err != nil {
		log.Printf("Ошибка задачи '%s': %v", name, err)
		return
	}
	log.Printf("Задача '%s' выполнена за %.1f с", name, time.Since(start).Seconds())
}

func (s *Scheduler) syncRevenue(ctx context.Context) error {
	s.revenueMu.Lock()
	defer s.revenueMu.Unlock()

	if s.ledger == nil {
		log.Println("Клиент FinTablo не настроен, синхронизация выручки пропущена.")
		return nil
	}
	return services.SyncRevenueToLedger(ctx, s.iiko, s.ledger, time.Now(), s.yandexPercent)
}

// fillFotSheet заполняет лист ФОТ текущего месяца данными с 1-го числа по
// вчера. Первого числа создаётся пустой лист без заполнения.
func (s *Scheduler) fillFotSheet(ctx context.Context) error {
	s.fotMu.Lock()
	defer s.fotMu.Unlock()

	if s.sheets == nil {
		log.Println("Клиент Google Sheets не настроен, заполнение ФОТ пропущено.")
		return nil
	}

	today := time.Now()
	title, err := s.sheets.EnsureFotSheet(ctx, today.Year(), today.Month())
	if err != nil {
		return err
	}
	if today.Day() == 1 {
		log.Printf("Первое число: лист '%s' создан, заполнение не требуется.", title)
		return nil
	}

	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	to := today.AddDate(0, 0, -1)
	lines, err := services.GetPayrollLines(ctx, s.iiko, s.sheets, from, to)
	if err != nil {
		return err
	}
	return s.sheets.FillFotSheet(ctx, title, lines)
}

func (s *Scheduler) monitorPositions(ctx context.Context) error {
	s.positionMu.Lock()
	defer s.positionMu.Unlock()

	if err := services.RefreshReferenceData(ctx, s.iiko); err != nil {
		log.Printf("Предупреждение: не удалось обновить справочники: %v", err)
	}
	return services.MonitorPositionChanges(ctx, s.iiko)
}

// nextRunAt возвращает ближайшее время запуска в заданный час и минуту.
func nextRunAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
