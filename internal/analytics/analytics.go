package analytics

import "example.com/cleanslate/backend/internal/models"

// minutesPerEmail is the time policy behind TimeWasted.
const minutesPerEmail = 2

type Snapshot struct {
	TotalSubscriptions     int     `json:"totalSubscriptions"`
	ActiveSubscriptions    int     `json:"activeSubscriptions"`
	UnusedSubscriptions    int     `json:"unusedSubscriptions"`
	ForgottenSubscriptions int     `json:"forgottenSubscriptions"`
	PausedSubscriptions    int     `json:"pausedSubscriptions"`
	CancelledSubscriptions int     `json:"cancelledSubscriptions"`
	MonthlySpend           float64 `json:"monthlySpend"`
	YearlySpend            float64 `json:"yearlySpend"`
	PotentialSavings       float64 `json:"potentialSavings"`
	AnnualPotentialSavings float64 `json:"annualPotentialSavings"`
	YearlyDiscount         float64 `json:"yearlyDiscount"`
	EmailsPerWeek          int     `json:"emailsPerWeek"`
	UnsubscribedSenders    int     `json:"unsubscribedSenders"`
	TimeWasted             int     `json:"timeWasted"`
	ProgressToGoal         float64 `json:"progressToGoal"`
	RemainingToGoal        float64 `json:"remainingToGoal"`
}

// Compute пересчитывает все показатели по состоянию с нуля.
func Compute(state models.AppState) Snapshot {
	var snapshot Snapshot

	snapshot.TotalSubscriptions = len(state.Subscriptions)
	for _, sub := range state.Subscriptions {
		switch sub.Status {
		case models.StatusActive:
			snapshot.ActiveSubscriptions++
		case models.StatusUnused:
			snapshot.UnusedSubscriptions++
		case models.StatusForgotten:
			snapshot.ForgottenSubscriptions++
		case models.StatusPaused:
			snapshot.PausedSubscriptions++
		case models.StatusCancelled:
			snapshot.CancelledSubscriptions++
		}

		if sub.Status == models.StatusCancelled {
			continue
		}

		snapshot.MonthlySpend += sub.Amount
		snapshot.YearlyDiscount += sub.Amount * 12 * float64(sub.YearlyDiscount) / 100
		if sub.Status != models.StatusActive {
			snapshot.PotentialSavings += sub.Amount
		}
	}

	snapshot.YearlySpend = snapshot.MonthlySpend * 12
	snapshot.AnnualPotentialSavings = snapshot.PotentialSavings * 12

	for _, email := range state.Emails {
		if email.Unsubscribed {
			snapshot.UnsubscribedSenders++
			continue
		}
		snapshot.EmailsPerWeek += email.EmailsPerWeek
	}
	snapshot.TimeWasted = max(0, snapshot.EmailsPerWeek*minutesPerEmail)

	snapshot.ProgressToGoal = ProgressToGoal(state.User.TotalSaved, state.User.SavingsGoal)
	snapshot.RemainingToGoal = max(0, state.User.SavingsGoal-state.User.TotalSaved)

	return snapshot
}

// ProgressToGoal возвращает процент достижения цели, ограниченный сверху 100.
// Неположительная цель считается уже достигнутой.
func ProgressToGoal(totalSaved, savingsGoal float64) float64 {
	if savingsGoal <= 0 {
		return 100
	}

	return min(100, 100*totalSaved/savingsGoal)
}
