// Файл: internal/iiko/attendance.go
package iiko

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"pizzabot/internal/models"
)

type attendanceXML struct {
	Attendances []struct {
		EmployeeID     string `xml:"employeeId"`
		DateFrom       string `xml:"dateFrom"`
		DateTo         string `xml:"dateTo"`
		PaymentDetails *struct {
			RegularPaymentSum float64 `xml:"regularPaymentSum"`
			PenaltySum        float64 `xml:"penaltySum"`
		} `xml:"paymentDetails"`
	} `xml:"attendance"`
}

// Attendance возвращает явки сотрудников за период с деталями оплаты.
// Даты явок в ответе идут в ISO-формате с таймзоной, таймзона отбрасывается.
func (c *Client) Attendance(ctx context.Context, from, to time.Time) ([]models.AttendancePeriod, error) {
	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("withPaymentDetails", "true")

	body, _, err := c.get(ctx, "/resto/api/employees/attendance/", params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения явок: %w", err)
	}

	var parsed attendanceXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора XML явок: %w", err)
	}

	var periods []models.AttendancePeriod
	for _, a := range parsed.Attendances {
		if a.EmployeeID == "" || a.DateFrom == "" || a.DateTo == "" {
			continue
		}
		start, errFrom := parseIikoTime(a.DateFrom)
		end, errTo := parseIikoTime(a.DateTo)
		if errFrom != nil || errTo != nil {
			continue
		}
		p := models.AttendancePeriod{
			EmployeeID: a.EmployeeID,
			From:       start,
			To:         end,
		}
		if a.PaymentDetails != nil {
			p.RegularPayment = a.PaymentDetails.RegularPaymentSum
			p.Penalty = a.PaymentDetails.PenaltySum
		}
		periods = append(periods, p)
	}
	return periods, nil
}

// parseIikoTime разбирает дату iiko (ISO с таймзоной или без) и отбрасывает
// таймзону: расчёты ведутся в локальном времени заведения.
func parseIikoTime(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("нераспознанный формат даты iiko: '%s'", s)
}
