package models

// DefaultState возвращает начальное состояние приложения.
// Каждый вызов создает новые слайсы, поэтому результат можно безопасно менять.
func DefaultState() AppState {
	return AppState{
		User: UserProfile{
			Name:        "Sarah Johnson",
			Email:       "sarah.johnson@email.com",
			TotalSaved:  247.80,
			JoinDate:    "2024-01-15",
			SavingsGoal: 300,
		},
		Subscriptions: []Subscription{
			{ID: 1, Name: "Netflix", Amount: 15.99, Status: StatusActive, LastUsed: "2 days ago", Category: "Entertainment", Logo: "🎬", NextBilling: "2025-08-15", YearlyDiscount: 0},
			{ID: 2, Name: "Spotify Premium", Amount: 9.99, Status: StatusActive, LastUsed: "1 hour ago", Category: "Music", Logo: "🎵", NextBilling: "2025-08-12", YearlyDiscount: 20},
			{ID: 3, Name: "Adobe Creative Cloud", Amount: 52.99, Status: StatusUnused, LastUsed: "3 months ago", Category: "Software", Logo: "🎨", NextBilling: "2025-08-20", YearlyDiscount: 16},
			{ID: 4, Name: "Disney+", Amount: 7.99, Status: StatusForgotten, LastUsed: "6 months ago", Category: "Entertainment", Logo: "🏰", NextBilling: "2025-08-18", YearlyDiscount: 0},
			{ID: 5, Name: "LinkedIn Premium", Amount: 29.99, Status: StatusUnused, LastUsed: "2 months ago", Category: "Professional", Logo: "💼", NextBilling: "2025-08-25", YearlyDiscount: 25},
			{ID: 6, Name: "Canva Pro", Amount: 12.99, Status: StatusPaused, LastUsed: "1 month ago", Category: "Design", Logo: "🎯", NextBilling: NextBillingPaused, YearlyDiscount: 10},
			{ID: 7, Name: "GitHub Pro", Amount: 4.00, Status: StatusActive, LastUsed: "Today", Category: "Development", Logo: "💻", NextBilling: "2025-08-11", YearlyDiscount: 16},
			{ID: 8, Name: "Notion Pro", Amount: 8.00, Status: StatusActive, LastUsed: "Yesterday", Category: "Productivity", Logo: "📝", NextBilling: "2025-08-14", YearlyDiscount: 20},
		},
		Emails: []EmailSender{
			{ID: 1, Sender: "TechCrunch", Type: EmailTypePromotional, Frequency: FrequencyDaily, Unsubscribed: false, EmailsPerWeek: 7, Category: "Tech News", Importance: ImportanceLow},
			{ID: 2, Sender: "Groupon", Type: EmailTypePromotional, Frequency: FrequencyDaily, Unsubscribed: false, EmailsPerWeek: 14, Category: "Deals", Importance: ImportanceLow},
			{ID: 3, Sender: "Amazon", Type: EmailTypePromotional, Frequency: FrequencyWeekly, Unsubscribed: false, EmailsPerWeek: 3, Category: "Shopping", Importance: ImportanceMedium},
			{ID: 4, Sender: "Medium", Type: EmailTypeNewsletter, Frequency: FrequencyWeekly, Unsubscribed: true, EmailsPerWeek: 2, Category: "Reading", Importance: ImportanceHigh},
			{ID: 5, Sender: "Udemy", Type: EmailTypePromotional, Frequency: FrequencyWeekly, Unsubscribed: false, EmailsPerWeek: 5, Category: "Education", Importance: ImportanceMedium},
			{ID: 6, Sender: "LinkedIn", Type: EmailTypeNotification, Frequency: FrequencyDaily, Unsubscribed: false, EmailsPerWeek: 10, Category: "Professional", Importance: ImportanceHigh},
		},
		Insights: []Insight{
			{ID: 1, Type: InsightTypeWarning, Title: "Unused Adobe Creative Cloud", Message: "You haven't used Adobe CC in 3 months. Consider pausing to save $52.99/month.", Impact: 52.99},
			{ID: 2, Type: InsightTypeTip, Title: "Annual Billing Savings", Message: "Switch LinkedIn Premium to annual billing to save 25% ($89.97/year).", Impact: 89.97},
			{ID: 3, Type: InsightTypeSuccess, Title: "Great Progress!", Message: "You've already saved $247.80 this year. You're 83% to your $300 goal!", Impact: 0},
		},
	}
}
