// Файл: internal/services/purchase.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pizzabot/internal/iiko"
	"pizzabot/internal/models"
)

// Кандидаты имён колонок отчёта TRANSACTIONS: состав колонок зависит от
// версии iiko, поэтому поле разрешается по фактическому ответу.
var (
	storeFieldCandidates       = []string{"Account.Name", "Store", "Склад"}
	supplierFieldCandidates    = []string{"Counteragent.Name", "Contractor.Name", "Agent.Name", "Supplier"}
	accountTypeFieldCandidates = []string{"Account.Type", "AccountType", "Тип счета"}
	sumFieldCandidates         = []string{"Sum.Incoming", "Sum", "SumIn"}
	transactionFieldCandidates = []string{"TransactionType", "DocumentType"}
	deletionFieldCandidates    = []string{
		"DocumentStatus",
		"DocumentState",
		"DocumentDeleted",
		"Document.IsDeleted",
		"DocumentRemoved",
		"IsDeleted",
		"Deleted",
		"DeletedWithWriteoff",
	}
)

var notDeletedMarkers = map[string]bool{
	"NOT_DELETED": true,
	"NOT DELETED": true,
	"NOTDELETED":  true,
	"НЕ УДАЛЕН":   true,
	"НЕ УДАЛЁН":   true,
	"НЕ УДАЛЕНО":  true,
	"FALSE":       true,
	"0":           true,
	"NO":          true,
	"ACTIVE":      true,
	"CONFIRMED":   true,
	"APPROVED":    true,
}

var negativeStatusKeywords = []string{
	"DELETED",
	"REMOVED",
	"CANCELLED",
	"CANCELED",
	"REJECTED",
	"DECLINED",
	"VOID",
	"ON_APPROVAL",
	"ON-APPROVAL",
	"PENDING",
	"DRAFT",
	"UNCONFIRMED",
	"NOT_CONFIRMED",
}

// PurchaseFilter — параметры сверки закупок.
type PurchaseFilter struct {
	TransactionTypes []string // фильтр на стороне iiko, по умолчанию INCOMING_INVOICE
	TransactionCodes []string // фильтр строк ответа, по умолчанию INVOICE
	StoreNames       []string // белый список складов
	AccountTypes     []string // белый список типов счетов
}

// GetPurchaseSummary возвращает итоги приходных накладных за период.
// Строки удалённых документов отсекаются по эвристике статусных колонок,
// склады ограничиваются белым списком, пересечённым со справочником iiko.
func GetPurchaseSummary(ctx context.Context, client *iiko.Client, from, to time.Time, filter PurchaseFilter) (*models.PurchaseSummary, error) {
	transactionTypes := filter.TransactionTypes
	if len(transactionTypes) == 0 {
		transactionTypes = []string{"INCOMING_INVOICE"}
	}
	transactionCodes := filter.TransactionCodes
	if len(transactionCodes) == 0 {
		transactionCodes = []string{"INVOICE"}
	}

	filters := [][2]string{}
	for _, trx := range transactionTypes {
		filters = append(filters, [2]string{"TransactionType", trx})
	}

	rows, err := client.Olap(ctx, iiko.OlapQuery{
		Report:    "TRANSACTIONS",
		From:      from,
		To:        to,
		GroupRows: []string{"Account.Name", "TransactionType", "Account.Type"},
		Agrs:      []string{"Sum.Incoming"},
		Filters:   filters,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчёта по проводкам: %w", err)
	}
	log.Printf("Отчёт TRANSACTIONS %s - %s: %d строк", from.Format("02.01.2006"), to.Format("02.01.2006"), len(rows))

	summary := models.NewPurchaseSummary()
	rows, summary.DeletedRows = filterDeletedRows(rows)
	if len(rows) == 0 {
		return summary, nil
	}

	storeField := resolveField(rows, storeFieldCandidates, "Account.Name")
	sumField := resolveField(rows, sumFieldCandidates, "Sum.Incoming")
	supplierField := resolveField(rows, supplierFieldCandidates, "")
	transactionField := resolveField(rows, transactionFieldCandidates, "")
	accountTypeField := resolveField(rows, accountTypeFieldCandidates, "")

	if transactionField != "" {
		allowed := make(map[string]bool, len(transactionCodes))
		for _, code := range transactionCodes {
			allowed[code] = true
		}
		rows = filterRows(rows, func(row models.ReportRow) bool {
			return allowed[strings.TrimSpace(row.Str(transactionField))]
		})
		if len(rows) == 0 {
			return summary, nil
		}
	}

	whitelist, err := storeWhitelist(ctx, client, filter.StoreNames)
	if err != nil {
		log.Printf("Предупреждение: не удалось загрузить список складов: %v", err)
	}
	if whitelist != nil {
		rows = filterRows(rows, func(row models.ReportRow) bool {
			return whitelist[strings.TrimSpace(row.Str(storeField))]
		})
		if len(rows) == 0 {
			return summary, nil
		}
	}

	if len(filter.AccountTypes) > 0 {
		if accountTypeField == "" {
			log.Println("Предупреждение: поле типа счёта отсутствует в ответе TRANSACTIONS.")
		} else {
			allowed := make(map[string]bool, len(filter.AccountTypes))
			for _, t := range filter.AccountTypes {
				allowed[strings.TrimSpace(t)] = true
			}
			rows = filterRows(rows, func(row models.ReportRow) bool {
				return allowed[strings.TrimSpace(row.Str(accountTypeField))]
			})
			if len(rows) == 0 {
				return summary, nil
			}
		}
	}

	for _, row := range rows {
		amount := row.Dec(sumField)
		if amount.IsZero() {
			continue
		}
		storeLabel := strings.TrimSpace(row.Str(storeField))
		if storeLabel == "" {
			storeLabel = "(Без склада)"
		}
		supplierLabel := "(Без контрагента)"
		if supplierField != "" {
			if s := strings.TrimSpace(row.Str(supplierField)); s != "" {
				supplierLabel = s
			}
		}

		summary.StoreTotals[storeLabel] = summary.StoreTotals[storeLabel].Add(amount)
		if supplierField != "" {
			summary.SupplierTotals[supplierLabel] = summary.SupplierTotals[supplierLabel].Add(amount)
		}
		pair := models.StoreSupplierPair{Store: storeLabel, Supplier: supplierLabel}
		summary.PairTotals[pair] = summary.PairTotals[pair].Add(amount)
		summary.TotalAmount = summary.TotalAmount.Add(amount)
		summary.RowsCount++
	}
	return summary, nil
}

// storeWhitelist пересекает заданный список складов со справочником iiko.
// nil означает отсутствие ограничения.
func storeWhitelist(ctx context.Context, client *iiko.Client, storeNames []string) (map[string]bool, error) {
	var corpNames map[string]bool
	stores, err := client.Stores(ctx)
	if err == nil {
		corpNames = make(map[string]bool, len(stores))
		for _, s := range stores {
			corpNames[strings.TrimSpace(s.Name)] = true
		}
	}

	if len(storeNames) == 0 {
		return corpNames, err
	}

	whitelist := make(map[string]bool, len(storeNames))
	for _, name := range storeNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if corpNames == nil || corpNames[name] {
			whitelist[name] = true
		}
	}
	return whitelist, err
}

// filterDeletedRows отсекает строки удалённых документов. Статусные колонки
// берутся из списка кандидатов, при их отсутствии — любые колонки с
// "deleted"/"removed" в имени.
func filterDeletedRows(rows []models.ReportRow) ([]models.ReportRow, int) {
	if len(rows) == 0 {
		return rows, 0
	}

	keys := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			keys[key] = true
		}
	}

	var deletionFields []string
	for _, candidate := range deletionFieldCandidates {
		if keys[candidate] {
			deletionFields = append(deletionFields, candidate)
		}
	}
	if len(deletionFields) == 0 {
		for key := range keys {
			lower := strings.ToLower(key)
			if strings.Contains(lower, "deleted") || strings.Contains(lower, "removed") {
				deletionFields = append(deletionFields, key)
			}
		}
	}
	if len(deletionFields) == 0 {
		return rows, 0
	}

	var filtered []models.ReportRow
	for _, row := range rows {
		isDeleted := false
		for _, field := range deletionFields {
			if isDeletedValue(row[field]) {
				isDeleted = true
				break
			}
		}
		if !isDeleted {
			filtered = append(filtered, row)
		}
	}
	removed := len(rows) - len(filtered)
	if removed > 0 {
		log.Printf("Отфильтрованы удалённые документы: %d по полям %s", removed, strings.Join(deletionFields, ", "))
	}
	return filtered, removed
}

// isDeletedValue трактует значение статусной колонки: явные маркеры
// NOT_DELETED — не удалён, булевы истины и негативные статусы — удалён.
func isDeletedValue(v models.Value) bool {
	if v.IsNull() {
		return false
	}
	if v.Kind == models.ValueInt || v.Kind == models.ValueDecimal {
		return !v.Decimal().IsZero()
	}

	text := strings.TrimSpace(v.String())
	if text == "" {
		return false
	}
	upper := strings.ToUpper(text)
	if notDeletedMarkers[upper] {
		return false
	}
	if upper == "TRUE" || upper == "YES" || upper == "1" {
		return true
	}
	if strings.Contains(upper, "NOT_DELETED") {
		return false
	}
	for _, keyword := range negativeStatusKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

// resolveField возвращает первую колонку-кандидата, встречающуюся в строках.
func resolveField(rows []models.ReportRow, candidates []string, defaultField string) string {
	for _, candidate := range candidates {
		for _, row := range rows {
			if row.Has(candidate) {
				return candidate
			}
		}
	}
	return defaultField
}

func filterRows(rows []models.ReportRow, keep func(models.ReportRow) bool) []models.ReportRow {
	var filtered []models.ReportRow
	for _, row := range rows {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
