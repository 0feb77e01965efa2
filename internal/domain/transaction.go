package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	TransactionStatusApproved TransactionStatus = "approved"
	// Reserved for transfers, which are not implemented. Kept so persisted
	// ledgers containing them still decode.
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusRejected  TransactionStatus = "rejected"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is a single ledger entry. Immutable once created; income and
// expense entries are always approved.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Category    Category          `json:"category"`
	Created     time.Time         `json:"created"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description,omitempty"`
}
