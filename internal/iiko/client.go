// Файл: internal/iiko/client.go
package iiko

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pizzabot/internal/models"
)

// Время жизни токена авторизации в кеше
const tokenTTL = 10 * time.Minute

// Client — клиент серверного API iiko.
type Client struct {
	baseURL      string
	login        string
	passwordSHA1 string
	httpClient   *http.Client

	mu           sync.Mutex
	token        string
	tokenExpires time.Time

	stores        []models.Store
	storesExpires time.Time
}

// NewClient создаёт клиент iiko API.
func NewClient(baseURL, login, passwordSHA1 string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		login:        login,
		passwordSHA1: passwordSHA1,
		httpClient:   &http.Client{Timeout: 90 * time.Second},
	}
}

// AuthToken возвращает токен авторизации, кешируя его на 10 минут.
// При 403 (rate limit) делается одна повторная попытка через 3 секунды.
func (c *Client) AuthToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpires) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("login", c.login)
	form.Set("pass", c.passwordSHA1)

	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/resto/api/auth", strings.NewReader(form.Encode()))
		if err != nil {
			return "", fmt.Errorf("ошибка создания запроса авторизации iiko: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("ошибка запроса авторизации iiko: %w", err)
		}
		body, errRead := io.ReadAll(resp.Body)
		resp.Body.Close()
		if errRead != nil {
			return "", fmt.Errorf("ошибка чтения ответа авторизации iiko: %w", errRead)
		}

		if resp.StatusCode == http.StatusForbidden && attempt == 0 {
			log.Println("iiko: лимит авторизаций (403), повтор через 3 секунды...")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("авторизация iiko вернула статус %d: %s", resp.StatusCode, string(body))
		}

		token := strings.TrimSpace(string(body))
		if token == "" {
			return "", fmt.Errorf("авторизация iiko вернула пустой токен")
		}

		c.token = token
		c.tokenExpires = time.Now().Add(tokenTTL)
		return token, nil
	}

	return "", fmt.Errorf("не удалось авторизоваться в iiko после повторной попытки")
}

// get выполняет GET-запрос с токеном в Cookie и возвращает тело ответа.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, string, error) {
	token, err := c.AuthToken(ctx)
	if err != nil {
		return nil, "", err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания запроса %s: %w", path, err)
	}
	req.Header.Set("Cookie", "key="+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка запроса %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка чтения ответа %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("iiko %s вернул статус %d: %s", path, resp.StatusCode, truncate(string(body), 500))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// OlapQuery — параметры OLAP-отчёта iiko.
type OlapQuery struct {
	Report    string // SALES или TRANSACTIONS
	From      time.Time
	To        time.Time
	GroupRows []string
	Agrs      []string
	Filters   [][2]string // пары (поле, значение); поле может повторяться
}

// Olap выполняет OLAP-запрос и разбирает ответ в строки отчёта.
// Даты передаются в формате ДД.ММ.ГГГГ, как ожидает этот endpoint.
func (c *Client) Olap(ctx context.Context, q OlapQuery) ([]models.ReportRow, error) {
	token, err := c.AuthToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", token)
	params.Set("report", q.Report)
	params.Set("from", q.From.Format("02.01.2006"))
	params.Set("to", q.To.Format("02.01.2006"))
	for _, g := range q.GroupRows {
		params.Add("groupRow", g)
	}
	for _, a := range q.Agrs {
		params.Add("agr", a)
	}
	for _, f := range q.Filters {
		params.Add(f[0], f[1])
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/resto/api/reports/olap?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания OLAP-запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка OLAP-запроса %s: %w", q.Report, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения OLAP-ответа: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OLAP %s вернул статус %d: %s", q.Report, resp.StatusCode, truncate(string(body), 500))
	}

	return ParseOlapResponse(body, resp.Header.Get("Content-Type"))
}

// ParseOlapResponse разбирает ответ OLAP по Content-Type: JSON или XML.
func ParseOlapResponse(body []byte, contentType string) ([]models.ReportRow, error) {
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		return parseJSONReport(body)
	case strings.HasPrefix(contentType, "application/xml"), strings.HasPrefix(contentType, "text/xml"):
		return parseXMLReport(body)
	default:
		return nil, fmt.Errorf("неизвестный Content-Type OLAP-ответа: %s", contentType)
	}
}

// parseJSONReport разбирает JSON-ответ: строки лежат в "data" или "rows".
func parseJSONReport(body []byte) ([]models.ReportRow, error) {
	var envelope struct {
		Data []map[string]json.RawMessage `json:"data"`
		Rows []map[string]json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON-ответа OLAP: %w", err)
	}
	raw := envelope.Data
	if len(raw) == 0 {
		raw = envelope.Rows
	}

	rows := make([]models.ReportRow, 0, len(raw))
	for _, r := range raw {
		row := make(models.ReportRow, len(r))
		for field, rawValue := range r {
			row[field] = jsonValue(rawValue)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func jsonValue(raw json.RawMessage) models.Value {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return models.Value{Kind: models.ValueNull}
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return models.ParseValue(str)
		}
		return models.Value{Kind: models.ValueNull}
	}
	return models.ParseValue(s)
}

// parseXMLReport разбирает XML-ответ: строки <r> с дочерними тегами-колонками.
func parseXMLReport(body []byte) ([]models.ReportRow, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(body)))

	var rows []models.ReportRow
	var current models.ReportRow
	var field string
	var text strings.Builder
	depth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора XML-ответа OLAP: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && t.Name.Local == "r" {
				current = make(models.ReportRow)
			} else if depth == 3 && current != nil {
				field = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 3 && current != nil {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 3 && current != nil && field != "" {
				current[field] = models.ParseValue(text.String())
				field = ""
			} else if depth == 2 && current != nil {
				rows = append(rows, current)
				current = nil
			}
			depth--
		}
	}
	return rows, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
