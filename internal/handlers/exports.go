package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
)

const (
	exportTypeSubscriptions = "subscriptions"
	exportTypeEmails        = "emails"
)

const exportDateLayout = "2006-01-02"

type ExportHandler struct {
	Store *state.Store
	now   func() time.Time
}

// NewExportHandler создает обработчик выгрузок.
func NewExportHandler(store *state.Store) *ExportHandler {
	return &ExportHandler{Store: store, now: time.Now}
}

type ExportResponse struct {
	ExportedAt time.Time          `json:"exportedAt"`
	State      models.AppState    `json:"state"`
	Analytics  analytics.Snapshot `json:"analytics"`
}

// ExportJSON выгружает состояние и показатели в JSON-файл.
func (h *ExportHandler) ExportJSON(c echo.Context) error {
	current, snapshot, _ := h.Store.Snapshot()
	now := h.now().UTC()

	filename := "cleanslate-" + now.Format(exportDateLayout) + ".json"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, ExportResponse{
		ExportedAt: now,
		State:      current,
		Analytics:  snapshot,
	})
}

// ExportCSV выгружает подписки или отправителей рассылок в CSV-файл.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeSubscriptions
	}

	current := h.Store.State()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeSubscriptions:
		if err := writeSubscriptionsCSV(writer, current.Subscriptions); err != nil {
			return serverError(c)
		}
	case exportTypeEmails:
		if err := writeEmailsCSV(writer, current.Emails); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "cleanslate-" + exportType + "-" + h.now().UTC().Format(exportDateLayout) + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeSubscriptionsCSV(writer *csv.Writer, subs []models.Subscription) error {
	header := []string{
		"id",
		"name",
		"amount",
		"status",
		"last_used",
		"category",
		"next_billing",
		"yearly_discount",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sub := range subs {
		record := []string{
			strconv.Itoa(sub.ID),
			sub.Name,
			formatAmount(sub.Amount),
			string(sub.Status),
			sub.LastUsed,
			sub.Category,
			sub.NextBilling,
			strconv.Itoa(sub.YearlyDiscount),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeEmailsCSV(writer *csv.Writer, emails []models.EmailSender) error {
	header := []string{
		"id",
		"sender",
		"type",
		"frequency",
		"unsubscribed",
		"emails_per_week",
		"category",
		"importance",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, email := range emails {
		record := []string{
			strconv.Itoa(email.ID),
			email.Sender,
			string(email.Type),
			string(email.Frequency),
			strconv.FormatBool(email.Unsubscribed),
			strconv.Itoa(email.EmailsPerWeek),
			email.Category,
			string(email.Importance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
