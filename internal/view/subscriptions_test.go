package view

import (
	"reflect"
	"testing"

	"example.com/cleanslate/backend/internal/models"
)

func names(subs []models.Subscription) []string {
	out := make([]string, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub.Name)
	}
	return out
}

func sampleSubscriptions() []models.Subscription {
	return []models.Subscription{
		{ID: 1, Name: "Netflix", Amount: 15.99, Status: models.StatusActive, Category: "Entertainment"},
		{ID: 2, Name: "Disney+", Amount: 7.99, Status: models.StatusForgotten, Category: "Entertainment"},
	}
}

// TestSubscriptionsSortByAmount проверяет сортировку по убыванию стоимости.
func TestSubscriptionsSortByAmount(t *testing.T) {
	got := Subscriptions(sampleSubscriptions(), ParseQuery("", "all", "amount"))

	want := []string{"Netflix", "Disney+"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

// TestSubscriptionsSortByName проверяет сортировку по имени.
func TestSubscriptionsSortByName(t *testing.T) {
	got := Subscriptions(sampleSubscriptions(), ParseQuery("", "all", "name"))

	want := []string{"Disney+", "Netflix"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

// TestSubscriptionsSortCaseInsensitive проверяет, что регистр не ломает порядок.
func TestSubscriptionsSortCaseInsensitive(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, Name: "notion"},
		{ID: 2, Name: "Adobe"},
		{ID: 3, Name: "Medium"},
	}

	got := Subscriptions(subs, Query{Status: StatusAll, SortBy: SortByName})
	want := []string{"Adobe", "Medium", "notion"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

// TestSubscriptionsUnknownSortKeepsOrder проверяет неизвестный ключ сортировки.
func TestSubscriptionsUnknownSortKeepsOrder(t *testing.T) {
	subs := models.DefaultState().Subscriptions

	got := Subscriptions(subs, Query{Status: StatusAll, SortBy: "popularity"})
	if !reflect.DeepEqual(got, subs) {
		t.Fatalf("expected input order, got %v", names(got))
	}
}

// TestSubscriptionsSearch проверяет поиск по имени или категории без учета регистра.
func TestSubscriptionsSearch(t *testing.T) {
	subs := models.DefaultState().Subscriptions

	got := Subscriptions(subs, ParseQuery("ENTERTAIN", "", "name"))
	want := []string{"Disney+", "Netflix"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	got = Subscriptions(subs, ParseQuery("pro", "", "name"))
	want = []string{"Canva Pro", "GitHub Pro", "LinkedIn Premium", "Notion Pro"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
}

// TestSubscriptionsStatusFilter проверяет совместную работу фильтра и поиска.
func TestSubscriptionsStatusFilter(t *testing.T) {
	subs := models.DefaultState().Subscriptions

	got := Subscriptions(subs, ParseQuery("", "unused", "amount"))
	want := []string{"Adobe Creative Cloud", "LinkedIn Premium"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}

	got = Subscriptions(subs, ParseQuery("adobe", "active", "amount"))
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

// TestSubscriptionsDoesNotMutateInput проверяет, что вход не меняется.
func TestSubscriptionsDoesNotMutateInput(t *testing.T) {
	subs := models.DefaultState().Subscriptions
	before := append([]models.Subscription(nil), subs...)

	_ = Subscriptions(subs, ParseQuery("", "all", "name"))
	_ = Subscriptions(subs, ParseQuery("", "all", "amount"))

	if !reflect.DeepEqual(subs, before) {
		t.Fatal("expected input to stay unchanged")
	}
}

// TestParseQueryDefaults проверяет значения по умолчанию.
func TestParseQueryDefaults(t *testing.T) {
	got := ParseQuery("net", " ", "")
	want := Query{Search: "net", Status: StatusAll, SortBy: SortByAmount}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

// TestEmailsFilter проверяет фильтрацию отправителей.
func TestEmailsFilter(t *testing.T) {
	emails := models.DefaultState().Emails

	got := Emails(emails, ParseEmailQuery("", "promotional", "subscribed"))
	if len(got) != 4 {
		t.Fatalf("expected 4 promotional senders, got %d", len(got))
	}

	got = Emails(emails, ParseEmailQuery("", "", "unsubscribed"))
	if len(got) != 1 || got[0].Sender != "Medium" {
		t.Fatalf("expected only Medium, got %+v", got)
	}

	got = Emails(emails, ParseEmailQuery("linked", "", ""))
	if len(got) != 1 || got[0].Sender != "LinkedIn" {
		t.Fatalf("expected only LinkedIn, got %+v", got)
	}
}
