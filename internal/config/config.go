// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"pizzabot/internal/constants"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	AppEnv        string
	Port          string

	// Токен доступа к HTTP API отчётов
	ApiToken string

	// ID чатов администраторов, которым доступны отчёты
	AdminChatIDs []int64

	IikoBaseURL      string
	IikoLogin        string
	IikoPasswordSHA1 string

	FinTabloToken   string
	FinTabloBaseURL string

	GoogleCredentialsFile string
	SpreadsheetID         string

	// Комиссия Яндекс-доставки по умолчанию, если нет значения в settings
	DefaultYandexPercent float64
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken:         os.Getenv("TELEGRAM_APITOKEN"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		AppEnv:                os.Getenv("ENV"),
		Port:                  os.Getenv("PORT"),
		ApiToken:              os.Getenv("API_TOKEN"),
		IikoBaseURL:           strings.TrimRight(os.Getenv("IIKO_BASE_URL"), "/"),
		IikoLogin:             os.Getenv("IIKO_LOGIN"),
		IikoPasswordSHA1:      os.Getenv("IIKO_PASSWORD_SHA1"),
		FinTabloToken:         os.Getenv("FIN_TABLO_TOKEN"),
		FinTabloBaseURL:       os.Getenv("FIN_TABLO_BASE_URL"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		SpreadsheetID:         os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.FinTabloBaseURL == "" {
		cfg.FinTabloBaseURL = "https://api.fintablo.ru/v1"
	}

	for _, part := range strings.Split(os.Getenv("ADMIN_CHAT_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("Предупреждение: не удалось прочитать ID администратора '%s': %v. Пропущен.", part, err)
			continue
		}
		cfg.AdminChatIDs = append(cfg.AdminChatIDs, id)
	}
	if len(cfg.AdminChatIDs) == 0 {
		log.Println("Предупреждение: ADMIN_CHAT_IDS не установлен. Отчёты будут недоступны в боте.")
	}

	yandexStr := os.Getenv("YANDEX_COMMISSION")
	if yandexStr == "" {
		cfg.DefaultYandexPercent = constants.DefaultYandexCommissionPercent
	} else {
		percent, errParse := strconv.ParseFloat(yandexStr, 64)
		if errParse != nil || percent < 0 || percent > 100 {
			log.Printf("Предупреждение: некорректное значение YANDEX_COMMISSION ('%s'): %v. Используется %.1f.",
				yandexStr, errParse, constants.DefaultYandexCommissionPercent)
			cfg.DefaultYandexPercent = constants.DefaultYandexCommissionPercent
		} else {
			cfg.DefaultYandexPercent = percent
		}
	}

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	}
	if cfg.IikoBaseURL == "" {
		log.Println("Критическая ошибка: IIKO_BASE_URL не установлен.")
	}
	if cfg.IikoLogin == "" || cfg.IikoPasswordSHA1 == "" {
		log.Println("Критическая ошибка: IIKO_LOGIN или IIKO_PASSWORD_SHA1 не установлены.")
	}
	if cfg.ApiToken == "" {
		log.Println("Предупреждение: API_TOKEN не установлен. HTTP API отчётов будет недоступен.")
	}
	if cfg.FinTabloToken == "" {
		log.Println("Предупреждение: FIN_TABLO_TOKEN не установлен. Синхронизация с FinTablo не будет работать.")
	}
	if cfg.SpreadsheetID == "" || cfg.GoogleCredentialsFile == "" {
		log.Println("Предупреждение: GOOGLE_SHEETS_SPREADSHEET_ID или GOOGLE_CREDENTIALS_FILE не установлены. Google Sheets недоступны, будут использоваться данные из БД.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
