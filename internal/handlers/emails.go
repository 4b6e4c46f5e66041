package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/view"
)

type EmailHandler struct {
	Store *state.Store
}

// NewEmailHandler создает обработчик рассылок.
func NewEmailHandler(store *state.Store) *EmailHandler {
	return &EmailHandler{Store: store}
}

type EmailChangeResponse struct {
	Emails    []models.EmailSender `json:"emails"`
	User      models.UserProfile   `json:"user"`
	Analytics analytics.Snapshot   `json:"analytics"`
	Changed   bool                 `json:"changed"`
}

// List возвращает отправителей с учетом поиска, типа и статуса подписки.
func (h *EmailHandler) List(c echo.Context) error {
	query := view.ParseEmailQuery(c.QueryParam("search"), c.QueryParam("type"), c.QueryParam("subscribed"))

	switch query.Subscribed {
	case view.SubscribedAll, view.SubscribedYes, view.SubscribedNo:
	default:
		return badRequest(c, "invalid subscribed filter")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"emails": view.Emails(h.Store.State().Emails, query),
	})
}

// Unsubscribe отписывает от рассылки.
func (h *EmailHandler) Unsubscribe(c echo.Context) error {
	return h.apply(c, state.OpUnsubscribeEmail)
}

// Resubscribe возобновляет рассылку.
func (h *EmailHandler) Resubscribe(c echo.Context) error {
	return h.apply(c, state.OpResubscribeEmail)
}

func (h *EmailHandler) apply(c echo.Context, op state.Operation) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid email id")
	}

	change, err := h.Store.Apply(c.Request().Context(), op, id)
	if err != nil {
		return serverError(c)
	}

	emails := change.State.Emails
	if emails == nil {
		emails = []models.EmailSender{}
	}

	return c.JSON(http.StatusOK, EmailChangeResponse{
		Emails:    emails,
		User:      change.State.User,
		Analytics: change.Analytics,
		Changed:   change.Changed,
	})
}
