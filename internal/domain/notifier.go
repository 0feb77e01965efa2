package domain

import "github.com/shopspring/decimal"

// Notifier receives discrete alert events derived from wallet state changes.
// The core decides when to emit; implementations decide how to queue or
// render.
type Notifier interface {
	BudgetExceeded(category Category, budget Budget)
	LowBalance(balance, threshold decimal.Decimal)
	TransactionPosted(tx Transaction)
}
