package view

import (
	"strings"

	"golang.org/x/text/cases"

	"example.com/cleanslate/backend/internal/models"
)

const (
	SubscribedAll = "all"
	SubscribedYes = "subscribed"
	SubscribedNo  = "unsubscribed"
)

type EmailQuery struct {
	Search     string
	Type       string
	Subscribed string
}

// ParseEmailQuery нормализует параметры фильтра отправителей.
func ParseEmailQuery(search, emailType, subscribed string) EmailQuery {
	emailType = strings.ToLower(strings.TrimSpace(emailType))
	if emailType == "" {
		emailType = StatusAll
	}

	subscribed = strings.ToLower(strings.TrimSpace(subscribed))
	if subscribed == "" {
		subscribed = SubscribedAll
	}

	return EmailQuery{Search: search, Type: emailType, Subscribed: subscribed}
}

// Emails фильтрует отправителей по поиску, типу и статусу подписки, сохраняя порядок.
func Emails(emails []models.EmailSender, query EmailQuery) []models.EmailSender {
	folder := cases.Fold()
	needle := folder.String(query.Search)

	out := make([]models.EmailSender, 0, len(emails))
	for _, email := range emails {
		if !matchesSearch(folder, needle, email.Sender, email.Category) {
			continue
		}
		if query.Type != StatusAll && string(email.Type) != query.Type {
			continue
		}
		switch query.Subscribed {
		case SubscribedYes:
			if email.Unsubscribed {
				continue
			}
		case SubscribedNo:
			if !email.Unsubscribed {
				continue
			}
		}
		out = append(out, email)
	}

	return out
}
