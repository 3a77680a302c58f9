// Файл: internal/models/ledger.go
package models

// LedgerPayload — целевая запись доходов для внешней книги учёта (FinTablo).
// Month в формате MM.YYYY, как принимает /v1/pnl-item.
type LedgerPayload struct {
	CategoryID  int64
	DirectionID int64
	Month       string
	Value       float64
	Comment     string
}

// PnlItem — существующая запись статьи доходов во внешней книге.
type PnlItem struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"categoryId"`
	DirectionID int64   `json:"directionId"`
	Date        string  `json:"date"`
	Value       float64 `json:"value"`
	Comment     string  `json:"comment,omitempty"`
}

// PnlCategory — статья доходов/расходов внешней книги.
type PnlCategory struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Direction — направление деятельности внешней книги.
type Direction struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
