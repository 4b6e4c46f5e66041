package view

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"example.com/cleanslate/backend/internal/models"
)

const (
	StatusAll = "all"

	SortByAmount   = "amount"
	SortByName     = "name"
	SortByStatus   = "status"
	SortByCategory = "category"
)

type Query struct {
	Search string
	Status string
	SortBy string
}

// ParseQuery нормализует параметры фильтра, подставляя значения по умолчанию.
func ParseQuery(search, status, sortBy string) Query {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = StatusAll
	}

	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	if sortBy == "" {
		sortBy = SortByAmount
	}

	return Query{Search: search, Status: status, SortBy: sortBy}
}

// Subscriptions возвращает отфильтрованный и отсортированный список подписок.
// Входной слайс не изменяется.
func Subscriptions(subs []models.Subscription, query Query) []models.Subscription {
	folder := cases.Fold()
	needle := folder.String(query.Search)

	out := make([]models.Subscription, 0, len(subs))
	for _, sub := range subs {
		if !matchesSearch(folder, needle, sub.Name, sub.Category) {
			continue
		}
		if query.Status != StatusAll && string(sub.Status) != query.Status {
			continue
		}
		out = append(out, sub)
	}

	sortSubscriptions(out, query.SortBy)
	return out
}

func sortSubscriptions(subs []models.Subscription, sortBy string) {
	switch sortBy {
	case SortByAmount:
		slices.SortStableFunc(subs, func(a, b models.Subscription) int {
			switch {
			case a.Amount > b.Amount:
				return -1
			case a.Amount < b.Amount:
				return 1
			default:
				return 0
			}
		})
	case SortByName:
		sortByKey(subs, func(s models.Subscription) string { return s.Name })
	case SortByStatus:
		sortByKey(subs, func(s models.Subscription) string { return string(s.Status) })
	case SortByCategory:
		sortByKey(subs, func(s models.Subscription) string { return s.Category })
	}
}

func sortByKey(subs []models.Subscription, key func(models.Subscription) string) {
	collator := newCollator()
	slices.SortStableFunc(subs, func(a, b models.Subscription) int {
		return collator.CompareString(key(a), key(b))
	})
}

// newCollator is per call: collate.Collator is not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func matchesSearch(folder cases.Caser, needle string, fields ...string) bool {
	if needle == "" {
		return true
	}

	for _, field := range fields {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}
