package models

type SubscriptionStatus string

type EmailType string

type EmailFrequency string

type Importance string

type InsightType string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusUnused    SubscriptionStatus = "unused"
	StatusForgotten SubscriptionStatus = "forgotten"
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"

	EmailTypePromotional  EmailType = "promotional"
	EmailTypeNewsletter   EmailType = "newsletter"
	EmailTypeNotification EmailType = "notification"

	FrequencyDaily  EmailFrequency = "daily"
	FrequencyWeekly EmailFrequency = "weekly"

	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"

	InsightTypeWarning InsightType = "warning"
	InsightTypeTip     InsightType = "tip"
	InsightTypeSuccess InsightType = "success"
)

// NextBillingPaused is shown instead of a billing date for paused subscriptions.
const NextBillingPaused = "Paused"

// Statuses returns every subscription status in display order.
func Statuses() []SubscriptionStatus {
	return []SubscriptionStatus{StatusActive, StatusUnused, StatusForgotten, StatusPaused, StatusCancelled}
}

// IsValid сообщает, является ли статус одним из известных значений.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusUnused, StatusForgotten, StatusPaused, StatusCancelled:
		return true
	default:
		return false
	}
}

type Subscription struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Amount         float64            `json:"amount" validate:"gte=0"`
	Status         SubscriptionStatus `json:"status" validate:"oneof=active unused forgotten paused cancelled"`
	LastUsed       string             `json:"lastUsed"`
	Category       string             `json:"category"`
	Logo           string             `json:"logo"`
	NextBilling    string             `json:"nextBilling"`
	YearlyDiscount int                `json:"yearlyDiscount" validate:"gte=0,lte=100"`
}

type EmailSender struct {
	ID            int            `json:"id"`
	Sender        string         `json:"sender"`
	Type          EmailType      `json:"type" validate:"oneof=promotional newsletter notification"`
	Frequency     EmailFrequency `json:"frequency" validate:"oneof=daily weekly"`
	Unsubscribed  bool           `json:"unsubscribed"`
	EmailsPerWeek int            `json:"emailsPerWeek" validate:"gte=0"`
	Category      string         `json:"category"`
	Importance    Importance     `json:"importance" validate:"oneof=low medium high"`
}

type Insight struct {
	ID      int         `json:"id"`
	Type    InsightType `json:"type" validate:"oneof=warning tip success"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Impact  float64     `json:"impact" validate:"gte=0"`
}

type UserProfile struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalSaved  float64 `json:"totalSaved"`
	JoinDate    string  `json:"joinDate"`
	SavingsGoal float64 `json:"savingsGoal"`
}

// AppState is the root aggregate persisted as a single snapshot.
type AppState struct {
	User          UserProfile    `json:"user"`
	Subscriptions []Subscription `json:"subscriptions" validate:"dive"`
	Emails        []EmailSender  `json:"emails" validate:"dive"`
	Insights      []Insight      `json:"insights" validate:"dive"`
}

// Clone возвращает копию состояния, не разделяющую слайсы с оригиналом.
func (s AppState) Clone() AppState {
	out := s
	out.Subscriptions = cloneSlice(s.Subscriptions)
	out.Emails = cloneSlice(s.Emails)
	out.Insights = cloneSlice(s.Insights)
	return out
}

// cloneSlice keeps an empty non-nil slice non-nil so it still encodes as [].
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// FindSubscription возвращает подписку по идентификатору.
func (s AppState) FindSubscription(id int) (Subscription, bool) {
	for _, sub := range s.Subscriptions {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subscription{}, false
}

// FindEmail возвращает отправителя рассылки по идентификатору.
func (s AppState) FindEmail(id int) (EmailSender, bool) {
	for _, email := range s.Emails {
		if email.ID == id {
			return email, true
		}
	}
	return EmailSender{}, false
}
