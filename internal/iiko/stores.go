// Файл: internal/iiko/stores.go
package iiko

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"pizzabot/internal/models"
)

// Время жизни кеша справочника складов
const storesCacheTTL = time.Hour

type storesXML struct {
	Items []struct {
		ID   string `xml:"id"`
		Name string `xml:"name"`
		Type string `xml:"type"`
	} `xml:"corporateItemDto"`
}

// Stores возвращает склады организации (тип STORE), кешируя справочник на час.
func (c *Client) Stores(ctx context.Context) ([]models.Store, error) {
	c.mu.Lock()
	if c.stores != nil && time.Now().Before(c.storesExpires) {
		cached := c.stores
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	body, _, err := c.get(ctx, "/resto/api/corporation/stores", nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения справочника складов: %w", err)
	}

	var parsed storesXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора XML складов: %w", err)
	}

	var stores []models.Store
	for _, s := range parsed.Items {
		if s.Type != "" && s.Type != "STORE" {
			continue
		}
		if s.ID == "" || s.Name == "" {
			continue
		}
		stores = append(stores, models.Store{ID: s.ID, Name: s.Name, Type: s.Type})
	}

	c.mu.Lock()
	c.stores = stores
	c.storesExpires = time.Now().Add(storesCacheTTL)
	c.mu.Unlock()
	return stores, nil
}
