package state

import (
	"errors"
	"reflect"
	"testing"

	"example.com/cleanslate/backend/internal/models"
)

func testState() models.AppState {
	return models.AppState{
		User: models.UserProfile{Name: "Test", TotalSaved: 10, SavingsGoal: 100},
		Subscriptions: []models.Subscription{
			{ID: 1, Name: "Netflix", Amount: 15.99, Status: models.StatusActive},
			{ID: 2, Name: "Adobe", Amount: 52.99, Status: models.StatusUnused},
		},
		Emails: []models.EmailSender{
			{ID: 1, Sender: "Shop", Type: models.EmailTypePromotional, EmailsPerWeek: 7},
		},
		Insights: []models.Insight{
			{ID: 1, Type: models.InsightTypeTip, Title: "a"},
			{ID: 2, Type: models.InsightTypeWarning, Title: "b"},
		},
	}
}

// TestCancelSubscriptionAddsAmountOnce проверяет однократное начисление экономии.
func TestCancelSubscriptionAddsAmountOnce(t *testing.T) {
	before := testState()

	once := CancelSubscription(before, 2)
	if once.Subscriptions[1].Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", once.Subscriptions[1].Status)
	}
	if once.User.TotalSaved != 10+52.99 {
		t.Fatalf("expected totalSaved %.2f, got %.2f", 10+52.99, once.User.TotalSaved)
	}

	twice := CancelSubscription(once, 2)
	if twice.User.TotalSaved != once.User.TotalSaved {
		t.Fatalf("expected repeated cancel to keep totalSaved, got %.2f", twice.User.TotalSaved)
	}

	if before.Subscriptions[1].Status != models.StatusUnused || before.User.TotalSaved != 10 {
		t.Fatal("expected input state to stay untouched")
	}
}

// TestPauseDoesNotTouchSavings проверяет, что пауза не меняет экономию.
func TestPauseDoesNotTouchSavings(t *testing.T) {
	next := PauseSubscription(testState(), 1)

	if next.Subscriptions[0].Status != models.StatusPaused {
		t.Fatalf("expected paused, got %s", next.Subscriptions[0].Status)
	}
	if next.User.TotalSaved != 10 {
		t.Fatalf("expected totalSaved unchanged, got %.2f", next.User.TotalSaved)
	}

	active := ActivateSubscription(next, 1)
	if active.Subscriptions[0].Status != models.StatusActive {
		t.Fatalf("expected active, got %s", active.Subscriptions[0].Status)
	}
}

// TestEmailOperations проверяет отписку и повторную подписку.
func TestEmailOperations(t *testing.T) {
	before := testState()

	unsubscribed := UnsubscribeEmail(before, 1)
	if !unsubscribed.Emails[0].Unsubscribed {
		t.Fatal("expected sender to be unsubscribed")
	}
	if before.Emails[0].Unsubscribed {
		t.Fatal("expected input state to stay untouched")
	}

	resubscribed := ResubscribeEmail(unsubscribed, 1)
	if resubscribed.Emails[0].Unsubscribed {
		t.Fatal("expected sender to be subscribed again")
	}
}

// TestDismissInsight проверяет удаление подсказки с сохранением порядка.
func TestDismissInsight(t *testing.T) {
	before := testState()

	next := DismissInsight(before, 1)
	if len(next.Insights) != 1 || next.Insights[0].ID != 2 {
		t.Fatalf("unexpected insights: %+v", next.Insights)
	}
	if len(before.Insights) != 2 {
		t.Fatal("expected input state to stay untouched")
	}
}

// TestUnknownIDIsNoop проверяет, что операции с несуществующим id не меняют состояние.
func TestUnknownIDIsNoop(t *testing.T) {
	for op, reducer := range reducers {
		before := testState()
		after := reducer(before, 999)
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("%s: expected no change for unknown id", op)
		}
	}
}

// TestParseOperation проверяет разбор имени операции.
func TestParseOperation(t *testing.T) {
	op, err := ParseOperation(" Cancel_Subscription ")
	if err != nil || op != OpCancelSubscription {
		t.Fatalf("unexpected result: %s (%v)", op, err)
	}

	if _, err := ParseOperation("delete_everything"); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}
