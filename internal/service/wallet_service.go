package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/domain"
)

// WalletService owns the invariant-preserving operations on the wallet
// aggregate. All validation happens before any field is mutated; every
// successful mutation ends with a save, and a failed save is returned to the
// caller with the in-memory mutation intact.
type WalletService struct {
	walletRepo          domain.WalletRepository
	validator           *Validator
	notifier            domain.Notifier
	lowBalanceThreshold decimal.Decimal
	now                 func() time.Time
}

// NewWalletService creates a new WalletService
func NewWalletService(walletRepo domain.WalletRepository, validator *Validator, notifier domain.Notifier, lowBalanceThreshold decimal.Decimal) *WalletService {
	return &WalletService{
		walletRepo:          walletRepo,
		validator:           validator,
		notifier:            notifier,
		lowBalanceThreshold: lowBalanceThreshold,
		now:                 time.Now,
	}
}

// CreateWallet creates and immediately persists an empty wallet for a user.
func (s *WalletService) CreateWallet(userID uuid.UUID) (*domain.Wallet, error) {
	wallet := domain.NewWallet(userID)
	if _, err := s.walletRepo.Save(wallet); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", userID.String()).Msg("Created wallet")
	return wallet, nil
}

// FindWallet loads a wallet by its owner.
func (s *WalletService) FindWallet(userID uuid.UUID) (*domain.Wallet, error) {
	return s.walletRepo.FindByUserID(userID)
}

// AddIncome posts an approved income transaction and grows the balance.
func (s *WalletService) AddIncome(wallet *domain.Wallet, amount decimal.Decimal, category domain.Category, description string) error {
	if !s.validator.ValidAmount(amount) {
		return domain.ErrInvalidAmount
	}

	tx := s.newTransaction(domain.TransactionTypeIncome, amount, category, description)
	wallet.Balance = wallet.Balance.Add(amount)
	wallet.Ledger = append(wallet.Ledger, tx)
	s.notifier.TransactionPosted(tx)

	_, err := s.walletRepo.Save(wallet)
	return err
}

// AddExpense posts an approved expense transaction. The amount must not
// exceed the current balance; the check runs before any mutation so a
// failure leaves balance, ledger and budgets untouched. Enabled budgets on
// expense categories accrue the amount and alert when the limit is crossed.
func (s *WalletService) AddExpense(wallet *domain.Wallet, amount decimal.Decimal, category domain.Category, description string) error {
	if !s.validator.ValidAmount(amount) {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(wallet.Balance) {
		return domain.ErrInsufficientFunds
	}

	tx := s.newTransaction(domain.TransactionTypeExpense, amount, category, description)
	wallet.Balance = wallet.Balance.Sub(amount)
	wallet.Ledger = append(wallet.Ledger, tx)
	s.notifier.TransactionPosted(tx)

	if budget, ok := wallet.Budgets[category.ID]; ok && budget.Enabled && category.Type == domain.CategoryTypeExpense {
		budget.Spent = budget.Spent.Add(amount)
		wallet.Budgets[category.ID] = budget
		if budget.Spent.GreaterThan(budget.Limit) {
			s.notifier.BudgetExceeded(category, budget)
		}
	}

	if wallet.Balance.LessThan(s.lowBalanceThreshold) {
		s.notifier.LowBalance(wallet.Balance, s.lowBalanceThreshold)
	}

	_, err := s.walletRepo.Save(wallet)
	return err
}

// AddCategory appends a new category. Duplicate names are allowed; callers
// resolving categories by name must cope with the ambiguity.
func (s *WalletService) AddCategory(wallet *domain.Wallet, name string, categoryType domain.CategoryType) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, domain.ErrCategoryNameEmpty
	}
	if categoryType != domain.CategoryTypeIncome && categoryType != domain.CategoryTypeExpense {
		return domain.Category{}, domain.ErrInvalidCategoryType
	}

	category := domain.Category{
		ID:   uuid.New(),
		Name: name,
		Type: categoryType,
	}
	wallet.Categories = append(wallet.Categories, category)

	if _, err := s.walletRepo.Save(wallet); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category and any budget keyed to it. Ledger
// entries referencing the category are kept as-is. Unknown ids are a no-op.
func (s *WalletService) DeleteCategory(wallet *domain.Wallet, categoryID uuid.UUID) error {
	idx := -1
	for i, c := range wallet.Categories {
		if c.ID == categoryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	wallet.Categories = append(wallet.Categories[:idx], wallet.Categories[idx+1:]...)
	delete(wallet.Budgets, categoryID)

	_, err := s.walletRepo.Save(wallet)
	return err
}

// SetBudget replaces any existing budget for the category with a fresh one:
// spent reset to zero, enabled, stamped with the current time. Re-setting a
// budget always discards prior spend accumulation.
func (s *WalletService) SetBudget(wallet *domain.Wallet, categoryID uuid.UUID, limit decimal.Decimal) error {
	if !s.validator.ValidAmount(limit) {
		return domain.ErrInvalidBudgetLimit
	}

	wallet.Budgets[categoryID] = domain.Budget{
		CategoryID: categoryID,
		Limit:      limit,
		Spent:      decimal.Zero,
		Enabled:    true,
		SetAt:      s.now(),
	}

	_, err := s.walletRepo.Save(wallet)
	return err
}

// DeleteBudget removes the budget entry if present; otherwise a no-op.
func (s *WalletService) DeleteBudget(wallet *domain.Wallet, categoryID uuid.UUID) error {
	if _, ok := wallet.Budgets[categoryID]; !ok {
		return nil
	}
	delete(wallet.Budgets, categoryID)

	_, err := s.walletRepo.Save(wallet)
	return err
}

// CategoryMonthTotal sums ledger amounts for the category since the first
// instant of the current calendar month. Display only, never persisted.
func (s *WalletService) CategoryMonthTotal(wallet *domain.Wallet, category domain.Category) decimal.Decimal {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return wallet.CategoryTotalSince(category.ID, monthStart)
}

func (s *WalletService) newTransaction(txType domain.TransactionType, amount decimal.Decimal, category domain.Category, description string) domain.Transaction {
	return domain.Transaction{
		ID:          uuid.New(),
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Created:     s.now(),
		Status:      domain.TransactionStatusApproved,
		Description: description,
	}
}
