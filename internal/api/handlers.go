// Файл: internal/api/handlers.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/services"
)

// parsePeriod читает параметры from и to в формате ГГГГ-ММ-ДД.
func parsePeriod(r *http.Request) (time.Time, time.Time, bool) {
	from, errFrom := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	to, errTo := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("writeJSON: Ошибка сериализации ответа: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type revenueResponse struct {
	From             string          `json:"from"`
	To               string          `json:"to"`
	BarRevenue       decimal.Decimal `json:"bar_revenue"`
	BarCost          decimal.Decimal `json:"bar_cost"`
	KitchenRevenue   decimal.Decimal `json:"kitchen_revenue"`
	KitchenCost      decimal.Decimal `json:"kitchen_cost"`
	AppRevenue       decimal.Decimal `json:"app_revenue"`
	AppCost          decimal.Decimal `json:"app_cost"`
	YandexGross      decimal.Decimal `json:"yandex_gross"`
	YandexCommission decimal.Decimal `json:"yandex_commission"`
	YandexNet        decimal.Decimal `json:"yandex_net"`
	YandexPercent    float64         `json:"yandex_percent"`
	WriteoffRevenue  decimal.Decimal `json:"writeoff_revenue"`
	WriteoffCost     decimal.Decimal `json:"writeoff_cost"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}

// GetRevenueReport возвращает отчёт по выручке за период в JSON.
func GetRevenueReport(deps ApiDependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := parsePeriod(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "параметры from и to обязательны, формат ГГГГ-ММ-ДД")
			return
		}

		result, err := services.GetRevenueResult(r.Context(), deps.Iiko, from, to, deps.Config.DefaultYandexPercent)
		if err != nil {
			log.Printf("GetRevenueReport: Ошибка построения отчёта: %v", err)
			writeError(w, http.StatusBadGateway, "не удалось получить данные из iiko")
			return
		}

		writeJSON(w, http.StatusOK, revenueResponse{
			From:             from.Format("2006-01-02"),
			To:               to.Format("2006-01-02"),
			BarRevenue:       result.BarRevenue,
			BarCost:          result.BarCost,
			KitchenRevenue:   result.KitchenRevenue,
			KitchenCost:      result.KitchenCost,
			AppRevenue:       result.AppRevenue,
			AppCost:          result.AppCost,
			YandexGross:      result.YandexGross,
			YandexCommission: result.YandexCommission,
			YandexNet:        result.YandexNet,
			YandexPercent:    result.YandexPercent,
			WriteoffRevenue:  result.WriteoffRevenue,
			WriteoffCost:     result.WriteoffCost,
			TotalRevenue:     result.TotalRevenue(),
		})
	}
}

type purchasesResponse struct {
	From           string                     `json:"from"`
	To             string                     `json:"to"`
	StoreTotals    map[string]decimal.Decimal `json:"store_totals"`
	SupplierTotals map[string]decimal.Decimal `json:"supplier_totals"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	RowsCount      int                        `json:"rows_count"`
	DeletedRows    int                        `json:"deleted_rows"`
}

// GetPurchasesReport возвращает сверку закупок за период в JSON.
func GetPurchasesReport(deps ApiDependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := parsePeriod(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "параметры from и to обязательны, формат ГГГГ-ММ-ДД")
			return
		}

		summary, err := services.FetchPurchaseSummary(r.Context(), deps.Iiko, from, to)
		if err != nil {
			log.Printf("GetPurchasesReport: Ошибка построения отчёта: %v", err)
			writeError(w, http.StatusBadGateway, "не удалось получить данные из iiko")
			return
		}

		writeJSON(w, http.StatusOK, purchasesResponse{
			From:           from.Format("2006-01-02"),
			To:             to.Format("2006-01-02"),
			StoreTotals:    summary.StoreTotals,
			SupplierTotals: summary.SupplierTotals,
			TotalAmount:    summary.TotalAmount,
			RowsCount:      summary.RowsCount,
			DeletedRows:    summary.DeletedRows,
		})
	}
}
