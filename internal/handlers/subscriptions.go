package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/view"
)

type SubscriptionHandler struct {
	Store *state.Store
}

// NewSubscriptionHandler создает обработчик подписок.
func NewSubscriptionHandler(store *state.Store) *SubscriptionHandler {
	return &SubscriptionHandler{Store: store}
}

type SubscriptionListResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
	Total         int                   `json:"total"`
}

type SubscriptionChangeResponse struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
	User          models.UserProfile    `json:"user"`
	Analytics     analytics.Snapshot    `json:"analytics"`
	Changed       bool                  `json:"changed"`
}

// List возвращает подписки с учетом поиска, фильтра статуса и сортировки.
func (h *SubscriptionHandler) List(c echo.Context) error {
	query := view.ParseQuery(c.QueryParam("search"), c.QueryParam("status"), c.QueryParam("sort"))
	if query.Status != view.StatusAll && !models.SubscriptionStatus(query.Status).IsValid() {
		return badRequest(c, "invalid status filter")
	}

	current := h.Store.State()
	return c.JSON(http.StatusOK, SubscriptionListResponse{
		Subscriptions: view.Subscriptions(current.Subscriptions, query),
		Total:         len(current.Subscriptions),
	})
}

// Cancel отменяет подписку.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	return h.apply(c, state.OpCancelSubscription)
}

// Pause приостанавливает подписку.
func (h *SubscriptionHandler) Pause(c echo.Context) error {
	return h.apply(c, state.OpPauseSubscription)
}

// Activate возобновляет подписку.
func (h *SubscriptionHandler) Activate(c echo.Context) error {
	return h.apply(c, state.OpActivateSubscription)
}

func (h *SubscriptionHandler) apply(c echo.Context, op state.Operation) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid subscription id")
	}

	change, err := h.Store.Apply(c.Request().Context(), op, id)
	if err != nil {
		return serverError(c)
	}

	subscriptions := change.State.Subscriptions
	if subscriptions == nil {
		subscriptions = []models.Subscription{}
	}

	return c.JSON(http.StatusOK, SubscriptionChangeResponse{
		Subscriptions: subscriptions,
		User:          change.State.User,
		Analytics:     change.Analytics,
		Changed:       change.Changed,
	})
}
