package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/domain"
)

func TestHistoryBetween(t *testing.T) {
	svc := NewTransactionService(1)
	food := domain.Category{ID: uuid.New(), Name: "Food", Type: domain.CategoryTypeExpense}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	wallet := domain.NewWallet(uuid.New())
	before := domain.Transaction{ID: uuid.New(), Category: food, Created: from.Add(-time.Second)}
	atStart := domain.Transaction{ID: uuid.New(), Category: food, Created: from}
	inside := domain.Transaction{ID: uuid.New(), Category: food, Created: from.AddDate(0, 0, 10)}
	atEnd := domain.Transaction{ID: uuid.New(), Category: food, Created: to}
	wallet.Ledger = []domain.Transaction{before, atStart, inside, atEnd}

	got := svc.HistoryBetween(wallet, from, to)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries in [from, to), got %d", len(got))
	}
	if got[0].ID != atStart.ID || got[1].ID != inside.ID {
		t.Errorf("history must keep ledger order: %+v", got)
	}
}

func TestDefaultPeriod(t *testing.T) {
	svc := NewTransactionService(3)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	from, to := svc.DefaultPeriod()
	if !to.Equal(now) {
		t.Errorf("period must end now, got %s", to)
	}
	if want := now.AddDate(0, -3, 0); !from.Equal(want) {
		t.Errorf("expected period start %s, got %s", want, from)
	}
}

func TestTransferStubs(t *testing.T) {
	svc := NewTransactionService(1)

	if err := svc.CreateTransfer(uuid.New(), "bob", decimal.NewFromInt(10)); !errors.Is(err, domain.ErrTransfersUnavailable) {
		t.Errorf("CreateTransfer: expected ErrTransfersUnavailable, got %v", err)
	}
	if err := svc.ApproveTransfer(uuid.New(), uuid.New()); !errors.Is(err, domain.ErrTransfersUnavailable) {
		t.Errorf("ApproveTransfer: expected ErrTransfersUnavailable, got %v", err)
	}
	if err := svc.RejectTransfer(uuid.New(), uuid.New()); !errors.Is(err, domain.ErrTransfersUnavailable) {
		t.Errorf("RejectTransfer: expected ErrTransfersUnavailable, got %v", err)
	}
}
