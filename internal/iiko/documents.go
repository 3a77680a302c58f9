// Файл: internal/iiko/documents.go
package iiko

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"pizzabot/internal/models"
)

type outgoingInvoicesXML struct {
	Documents []struct {
		ID             string `xml:"id"`
		DocumentNumber string `xml:"documentNumber"`
		DateIncoming   string `xml:"dateIncoming"`
		Status         string `xml:"status"`
		Items          struct {
			Items []struct {
				Sum string `xml:"sum"`
			} `xml:"item"`
		} `xml:"items"`
	} `xml:"document"`
}

// OutgoingInvoices возвращает проведённые расходные накладные за период.
// Накладные со статусом, отличным от PROCESSED, пропускаются.
func (c *Client) OutgoingInvoices(ctx context.Context, from, to time.Time) ([]models.WriteoffDocument, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	body, _, err := c.get(ctx, "/resto/api/documents/export/outgoingInvoice", params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расходных накладных: %w", err)
	}

	var parsed outgoingInvoicesXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора XML расходных накладных: %w", err)
	}

	var documents []models.WriteoffDocument
	for _, doc := range parsed.Documents {
		if doc.Status != "PROCESSED" {
			continue
		}
		if doc.ID == "" || doc.DateIncoming == "" {
			continue
		}
		date, errDate := parseIikoTime(doc.DateIncoming)
		if errDate != nil {
			log.Printf("Предупреждение: некорректная дата накладной %s: %v", doc.DocumentNumber, errDate)
			continue
		}
		total := decimal.Zero
		for _, item := range doc.Items.Items {
			if d, errSum := decimal.NewFromString(item.Sum); errSum == nil {
				total = total.Add(d)
			}
		}
		documents = append(documents, models.WriteoffDocument{
			ID:     doc.ID,
			Number: doc.DocumentNumber,
			Date:   date,
			Status: doc.Status,
			Sum:    total,
		})
	}
	log.Printf("Загружено %d проведённых расходных накладных", len(documents))
	return documents, nil
}

// writeoffDocJSON — акт списания из v2 API. Название склада и статьи могут
// приходить как в самом документе, так и требовать поиска по справочникам.
type writeoffDocJSON struct {
	ID           string `json:"id"`
	DateIncoming string `json:"dateIncoming"`
	StoreID      string `json:"storeId"`
	StoreName    string `json:"storeName"`
	AccountID    string `json:"accountId"`
	AccountName  string `json:"accountName"`
	Comment      string `json:"comment"`
	Store        *struct {
		Name string `json:"name"`
	} `json:"store"`
	Items []struct {
		Cost    float64 `json:"cost"`
		Comment string  `json:"comment"`
	} `json:"items"`
}

// WriteoffItem — позиция акта списания.
type WriteoffItem struct {
	Cost    decimal.Decimal
	Comment string
}

// WriteoffDoc — акт списания с разобранными полями.
type WriteoffDoc struct {
	ID          string
	Date        time.Time
	StoreID     string
	StoreName   string
	AccountID   string
	AccountName string
	Comment     string
	Items       []WriteoffItem
}

// WriteoffDocuments возвращает акты списания продуктов за период (v2 API).
func (c *Client) WriteoffDocuments(ctx context.Context, from, to time.Time) ([]WriteoffDoc, error) {
	params := url.Values{}
	params.Set("dateFrom", from.Format("2006-01-02"))
	params.Set("dateTo", to.Format("2006-01-02"))

	body, _, err := c.get(ctx, "/resto/api/v2/documents/writeoff", params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения актов списания: %w", err)
	}

	var envelope struct {
		Response []writeoffDocJSON `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON актов списания: %w", err)
	}

	var docs []WriteoffDoc
	for _, d := range envelope.Response {
		doc := WriteoffDoc{
			ID:          d.ID,
			StoreID:     d.StoreID,
			StoreName:   d.StoreName,
			AccountID:   d.AccountID,
			AccountName: d.AccountName,
			Comment:     d.Comment,
		}
		if d.Store != nil && doc.StoreName == "" {
			doc.StoreName = d.Store.Name
		}
		if d.DateIncoming != "" {
			if t, errDate := parseIikoTime(d.DateIncoming); errDate == nil {
				doc.Date = t
			}
		}
		for _, item := range d.Items {
			doc.Items = append(doc.Items, WriteoffItem{
				Cost:    decimal.NewFromFloat(item.Cost),
				Comment: item.Comment,
			})
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
