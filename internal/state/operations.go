package state

import (
	"fmt"
	"strings"

	"example.com/cleanslate/backend/internal/models"
)

type Operation string

const (
	OpCancelSubscription   Operation = "cancel_subscription"
	OpPauseSubscription    Operation = "pause_subscription"
	OpActivateSubscription Operation = "activate_subscription"
	OpUnsubscribeEmail     Operation = "unsubscribe_email"
	OpResubscribeEmail     Operation = "resubscribe_email"
	OpDismissInsight       Operation = "dismiss_insight"
)

// Reducer применяет операцию к состоянию и возвращает новое значение.
type Reducer func(state models.AppState, id int) models.AppState

var reducers = map[Operation]Reducer{
	OpCancelSubscription:   CancelSubscription,
	OpPauseSubscription:    PauseSubscription,
	OpActivateSubscription: ActivateSubscription,
	OpUnsubscribeEmail:     UnsubscribeEmail,
	OpResubscribeEmail:     ResubscribeEmail,
	OpDismissInsight:       DismissInsight,
}

// ParseOperation возвращает операцию по ее имени.
func ParseOperation(value string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := reducers[op]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, value)
	}
	return op, nil
}

// CancelSubscription отменяет подписку и добавляет ее стоимость к сэкономленной сумме.
// Повторная отмена уже отмененной подписки сумму не увеличивает.
func CancelSubscription(state models.AppState, id int) models.AppState {
	sub, ok := state.FindSubscription(id)
	if !ok || sub.Status == models.StatusCancelled {
		return state
	}

	next := withSubscriptionStatus(state, id, models.StatusCancelled)
	next.User.TotalSaved = state.User.TotalSaved + sub.Amount
	return next
}

// PauseSubscription приостанавливает подписку.
func PauseSubscription(state models.AppState, id int) models.AppState {
	return withSubscriptionStatus(state, id, models.StatusPaused)
}

// ActivateSubscription возвращает подписку в активный статус.
func ActivateSubscription(state models.AppState, id int) models.AppState {
	return withSubscriptionStatus(state, id, models.StatusActive)
}

// UnsubscribeEmail отписывает от рассылки отправителя.
func UnsubscribeEmail(state models.AppState, id int) models.AppState {
	return withEmailSubscribed(state, id, true)
}

// ResubscribeEmail снова подписывает на рассылку отправителя.
func ResubscribeEmail(state models.AppState, id int) models.AppState {
	return withEmailSubscribed(state, id, false)
}

// DismissInsight удаляет подсказку из списка.
func DismissInsight(state models.AppState, id int) models.AppState {
	index := -1
	for i, insight := range state.Insights {
		if insight.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return state
	}

	next := state
	next.Insights = make([]models.Insight, 0, len(state.Insights)-1)
	for _, insight := range state.Insights {
		if insight.ID != id {
			next.Insights = append(next.Insights, insight)
		}
	}
	return next
}

func withSubscriptionStatus(state models.AppState, id int, status models.SubscriptionStatus) models.AppState {
	if _, ok := state.FindSubscription(id); !ok {
		return state
	}

	next := state
	next.Subscriptions = make([]models.Subscription, len(state.Subscriptions))
	for i, sub := range state.Subscriptions {
		if sub.ID == id {
			sub.Status = status
		}
		next.Subscriptions[i] = sub
	}
	return next
}

func withEmailSubscribed(state models.AppState, id int, unsubscribed bool) models.AppState {
	if _, ok := state.FindEmail(id); !ok {
		return state
	}

	next := state
	next.Emails = make([]models.EmailSender, len(state.Emails))
	for i, email := range state.Emails {
		if email.ID == id {
			email.Unsubscribed = unsubscribed
		}
		next.Emails[i] = email
	}
	return next
}
