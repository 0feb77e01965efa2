package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/domain"
)

// TransactionService answers ledger history queries and carries the transfer
// stubs. Transfers between users are deliberately not implemented.
type TransactionService struct {
	defaultPeriodMonths int
	now                 func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(defaultPeriodMonths int) *TransactionService {
	return &TransactionService{
		defaultPeriodMonths: defaultPeriodMonths,
		now:                 time.Now,
	}
}

// HistoryBetween returns ledger entries created in [from, to), preserving
// ledger order.
func (s *TransactionService) HistoryBetween(wallet *domain.Wallet, from, to time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range wallet.Ledger {
		if !tx.Created.Before(from) && tx.Created.Before(to) {
			out = append(out, tx)
		}
	}
	return out
}

// DefaultPeriod returns the configured default report window ending now.
func (s *TransactionService) DefaultPeriod() (time.Time, time.Time) {
	to := s.now()
	return to.AddDate(0, -s.defaultPeriodMonths, 0), to
}

// CreateTransfer is a stub; transfers are not available.
func (s *TransactionService) CreateTransfer(fromUserID uuid.UUID, toUserLogin string, amount decimal.Decimal) error {
	return domain.ErrTransfersUnavailable
}

// ApproveTransfer is a stub; transfers are not available.
func (s *TransactionService) ApproveTransfer(userID, transferID uuid.UUID) error {
	return domain.ErrTransfersUnavailable
}

// RejectTransfer is a stub; transfers are not available.
func (s *TransactionService) RejectTransfer(userID, transferID uuid.UUID) error {
	return domain.ErrTransfersUnavailable
}
