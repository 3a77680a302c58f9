// Файл: internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pizzabot/internal/config"
	"pizzabot/internal/iiko"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config    *config.Config
	SecretKey string
	Iiko      *iiko.Client
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.SecretKey))

		r.Get("/api/reports/revenue", GetRevenueReport(deps))
		r.Get("/api/reports/purchases", GetPurchasesReport(deps))
	})
}
