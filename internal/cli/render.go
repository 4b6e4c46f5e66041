package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var statusColors = map[models.SubscriptionStatus]lipgloss.Color{
	models.StatusActive:    lipgloss.Color("42"),
	models.StatusUnused:    lipgloss.Color("214"),
	models.StatusForgotten: lipgloss.Color("203"),
	models.StatusPaused:    lipgloss.Color("33"),
	models.StatusCancelled: lipgloss.Color("241"),
}

func money(value float64) string {
	return "$" + strconv.FormatFloat(value, 'f', 2, 64)
}

func renderStats(user models.UserProfile, snapshot analytics.Snapshot) string {
	rows := [][2]string{
		{"Monthly spend", money(snapshot.MonthlySpend)},
		{"Yearly spend", money(snapshot.YearlySpend)},
		{"Potential savings", money(snapshot.PotentialSavings) + "/mo"},
		{"Yearly billing discount", money(snapshot.YearlyDiscount) + "/yr"},
		{"Subscriptions", fmt.Sprintf("%d total, %d active, %d unused, %d forgotten, %d paused, %d cancelled",
			snapshot.TotalSubscriptions, snapshot.ActiveSubscriptions, snapshot.UnusedSubscriptions,
			snapshot.ForgottenSubscriptions, snapshot.PausedSubscriptions, snapshot.CancelledSubscriptions)},
		{"Emails per week", strconv.Itoa(snapshot.EmailsPerWeek)},
		{"Time spent on email", strconv.Itoa(snapshot.TimeWasted) + " min/week"},
		{"Saved so far", money(user.TotalSaved)},
		{"Goal progress", fmt.Sprintf("%.1f%% of %s (%s to go)", snapshot.ProgressToGoal, money(user.SavingsGoal), money(snapshot.RemainingToGoal))},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(user.Name + "'s CleanSlate"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", row[0])))
		b.WriteString(valueStyle.Render(row[1]))
	}

	return boxStyle.Render(b.String())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderSubscriptions(subs []models.Subscription) string {
	if len(subs) == 0 {
		return mutedStyle.Render("No subscriptions match.")
	}

	t := newTable("ID", "Name", "Amount", "Status", "Last used", "Category", "Next billing")
	for _, sub := range subs {
		status := lipgloss.NewStyle().Foreground(statusColors[sub.Status]).Render(string(sub.Status))
		t.Row(strconv.Itoa(sub.ID), sub.Logo+" "+sub.Name, money(sub.Amount), status, sub.LastUsed, sub.Category, sub.NextBilling)
	}

	return t.Render()
}

func renderEmails(emails []models.EmailSender) string {
	if len(emails) == 0 {
		return mutedStyle.Render("No senders match.")
	}

	t := newTable("ID", "Sender", "Type", "Per week", "Importance", "Subscribed")
	for _, email := range emails {
		subscribed := successStyle.Render("yes")
		if email.Unsubscribed {
			subscribed = mutedStyle.Render("no")
		}
		t.Row(strconv.Itoa(email.ID), email.Sender, string(email.Type), strconv.Itoa(email.EmailsPerWeek), string(email.Importance), subscribed)
	}

	return t.Render()
}

func renderChange(op state.Operation, id int, before models.AppState, change state.Change) string {
	if !change.Changed {
		return mutedStyle.Render(fmt.Sprintf("Nothing to change for id %d", id))
	}

	switch op {
	case state.OpCancelSubscription:
		sub, _ := before.FindSubscription(id)
		saved := change.State.User.TotalSaved - before.User.TotalSaved
		return successStyle.Render(fmt.Sprintf("Cancelled %s, saving %s/month (total saved %s)", sub.Name, money(saved), money(change.State.User.TotalSaved)))
	case state.OpPauseSubscription, state.OpActivateSubscription:
		sub, _ := change.State.FindSubscription(id)
		return successStyle.Render(fmt.Sprintf("%s is now %s", sub.Name, sub.Status))
	case state.OpUnsubscribeEmail:
		email, _ := change.State.FindEmail(id)
		return successStyle.Render(fmt.Sprintf("Unsubscribed from %s (%d emails/week)", email.Sender, change.Analytics.EmailsPerWeek))
	case state.OpResubscribeEmail:
		email, _ := change.State.FindEmail(id)
		return successStyle.Render(fmt.Sprintf("Subscribed to %s again", email.Sender))
	default:
		return successStyle.Render(fmt.Sprintf("Dismissed insight %d", id))
	}
}

func renderResult(result ai.GenerateResult) string {
	return boxStyle.Render(result.Content) + "\n" + mutedStyle.Render(result.Timestamp.Format("2006-01-02 15:04:05 MST"))
}
