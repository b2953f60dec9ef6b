package catalog

import "github.com/dukerupert/gamestore/internal/domain"

// Support channel defaults, used when configuration leaves them empty.
const (
	DefaultSupportEmail    = "support@gamestore.ru"
	DefaultSupportTelegram = "@gamestore_support"
	DefaultSupportHours    = "24/7 online"
)

// FAQ returns the frequently asked questions in display order.
func FAQ() []domain.FAQItem {
	return []domain.FAQItem{
		{
			Question: "How do I apply a promo code?",
			Answer:   "Enter the promo code in the field in your cart before paying. The discount is applied to the order total automatically.",
		},
		{
			Question: "Which payment methods are available?",
			Answer:   "We accept bank cards (Visa, MasterCard, MIR), e-wallets and cryptocurrency.",
		},
		{
			Question: "How fast do donations arrive?",
			Answer:   "Purchases are credited instantly after a successful payment. In rare cases it can take up to 5 minutes.",
		},
		{
			Question: "Can I get a refund?",
			Answer:   "Refunds are possible within 24 hours if the donation has not been used in game. Contact our support team.",
		},
	}
}

// NewSupportInfo fills empty channels with the store defaults.
func NewSupportInfo(email, telegram, hours string) domain.SupportInfo {
	info := domain.SupportInfo{
		Email:    email,
		Telegram: telegram,
		Hours:    hours,
	}
	if info.Email == "" {
		info.Email = DefaultSupportEmail
	}
	if info.Telegram == "" {
		info.Telegram = DefaultSupportTelegram
	}
	if info.Hours == "" {
		info.Hours = DefaultSupportHours
	}
	return info
}
