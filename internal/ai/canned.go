package ai

import (
	"context"
	"strings"
)

var cannedResponses = map[UseCase]string{
	UseCaseAnalysis: `Based on your subscription analysis, here are my top 3 recommendations:

1. **Cancel Adobe Creative Cloud** - You haven't used it in 3 months, saving $52.99/month ($635.88/year)
2. **Switch to Annual Billing** - LinkedIn Premium offers 25% savings annually, saving $89.97/year
3. **Review Disney+** - Last used 6 months ago, consider sharing with family or canceling to save $7.99/month

**Total potential savings: $60.98/month or $731.76/year**`,
	UseCaseEmail: `Subject: Request to Pause My Subscription

Dear [Service Name] Team,

I hope this email finds you well. I am writing to request a temporary pause on my subscription due to current budget constraints.

I have been a satisfied customer and would like to maintain my account rather than canceling permanently. Could you please let me know if you offer a pause or freeze option for subscriptions?

If a pause isn't available, I would appreciate information about your most affordable plan or any current promotions that might help reduce my monthly cost.

Thank you for your understanding and assistance.

Best regards,
[Your Name]`,
}

// CannedClient answers offline with fixed texts. It picks the text by the
// system prompt the service sent, so it needs no network or API key.
type CannedClient struct{}

// NewCannedClient создает офлайн-клиент с заготовленными ответами.
func NewCannedClient() *CannedClient {
	return &CannedClient{}
}

// Chat возвращает заготовленный ответ для сценария, определенного по системному промпту.
func (c *CannedClient) Chat(ctx context.Context, messages []Message, _ ChatOptions) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	useCase := UseCaseGeneral
	for _, message := range messages {
		if strings.EqualFold(message.Role, "system") {
			useCase = useCaseForSystemPrompt(message.Content)
			break
		}
	}

	if content, ok := cannedResponses[useCase]; ok {
		return content, nil, nil
	}
	return FallbackContent, nil, nil
}

func useCaseForSystemPrompt(prompt string) UseCase {
	for useCase, systemPrompt := range systemPrompts {
		if systemPrompt == prompt {
			return useCase
		}
	}
	return UseCaseGeneral
}
