package main

import (
	"context"
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"pizzabot/internal/api"
	"pizzabot/internal/config"
	"pizzabot/internal/db"
	"pizzabot/internal/fintablo"
	"pizzabot/internal/gsheets"
	"pizzabot/internal/handlers"
	"pizzabot/internal/iiko"
	"pizzabot/internal/scheduler"
	"pizzabot/internal/session"
	"pizzabot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	err := godotenv.Load()
	if err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	if err := db.InitDB(); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer db.CloseDB()

	err = telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev")
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	if telegram_api.Client == nil || telegram_api.Client.GetAPI() == nil {
		log.Fatalf("Критическая ошибка: Telegram API клиент не был корректно инициализирован.")
	}
	botAPI := telegram_api.Client.GetAPI()

	iikoClient := iiko.NewClient(cfg.IikoBaseURL, cfg.IikoLogin, cfg.IikoPasswordSHA1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ledger fintablo.Ledger
	if cfg.FinTabloToken != "" {
		fintabloClient := fintablo.NewClient(cfg.FinTabloBaseURL, cfg.FinTabloToken)
		ledger = fintabloClient
		// Сверка справочников не блокирует запуск
		go func() {
			if err := fintabloClient.VerifyRefs(ctx); err != nil {
				log.Printf("Предупреждение: не удалось сверить справочники FinTablo: %v", err)
			}
		}()
	}

	var sheetsClient *gsheets.Client
	if cfg.GoogleCredentialsFile != "" && cfg.SpreadsheetID != "" {
		sheetsClient, err = gsheets.NewClient(ctx, cfg.GoogleCredentialsFile, cfg.SpreadsheetID)
		if err != nil {
			log.Printf("Предупреждение: клиент Google Sheets не создан: %v. Настройки должностей будут браться из БД.", err)
			sheetsClient = nil
		}
	}

	sessionManager := session.NewSessionManager()

	handlerDeps := handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      telegram_api.Client,
		SessionManager: sessionManager,
		Iiko:           iikoClient,
		Ledger:         ledger,
		Sheets:         sheetsClient,
	}

	botHandler := handlers.NewBotHandler(handlerDeps)

	// --- Фоновые задачи ---
	sched := scheduler.New(iikoClient, ledger, sheetsClient, cfg.DefaultYandexPercent)
	sched.Start(ctx)

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()

	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	apiDeps := api.ApiDependencies{
		Config:    cfg,
		SecretKey: cfg.ApiToken,
		Iiko:      iikoClient,
	}
	api.SetupRoutes(apiRouter, apiDeps)

	// Запускаем HTTP-сервер в отдельной горутине
	go func() {
		log.Printf("Запуск HTTP-сервера отчётов на порту %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Println("Бот, планировщик и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			go botHandler.HandleMessage(update)
		} else if update.CallbackQuery != nil {
			log.Printf("Callback от %s: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
			go botHandler.HandleCallback(update)
		}
	}
}
