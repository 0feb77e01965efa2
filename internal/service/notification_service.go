package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/domain"
)

// NotificationService queues human-readable alert messages until the
// presentation layer drains them. It implements domain.Notifier.
type NotificationService struct {
	pending []string
}

// NewNotificationService creates an empty notification queue
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// BudgetExceeded queues a budget-exceeded alert for a category.
func (s *NotificationService) BudgetExceeded(category domain.Category, budget domain.Budget) {
	s.add(fmt.Sprintf("Budget exceeded for category %q: limit %s, spent %s",
		category.Name, budget.Limit.StringFixed(2), budget.Spent.StringFixed(2)))
}

// LowBalance queues a low-balance alert.
func (s *NotificationService) LowBalance(balance, threshold decimal.Decimal) {
	s.add(fmt.Sprintf("Low balance: %s (threshold %s)",
		balance.StringFixed(2), threshold.StringFixed(2)))
}

// TransactionPosted queues a confirmation for a posted transaction.
func (s *NotificationService) TransactionPosted(tx domain.Transaction) {
	kind := "Income"
	if tx.Type == domain.TransactionTypeExpense {
		kind = "Expense"
	}
	s.add(fmt.Sprintf("%s: %s (%s)", kind, tx.Amount.StringFixed(2), tx.Category.Name))
}

// Pending returns a copy of the queued messages in arrival order.
func (s *NotificationService) Pending() []string {
	out := make([]string, len(s.pending))
	copy(out, s.pending)
	return out
}

// Clear drops all queued messages.
func (s *NotificationService) Clear() {
	s.pending = s.pending[:0]
}

func (s *NotificationService) add(message string) {
	s.pending = append(s.pending, message)
	log.Info().Str("notification", message).Msg("Notification queued")
}
