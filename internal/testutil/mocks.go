package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID    map[uuid.UUID]*domain.User
	ByLogin map[string]*domain.User
	SaveFn  func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:    make(map[uuid.UUID]*domain.User),
		ByLogin: make(map[string]*domain.User),
	}
}

// Save stores the user in both indexes
func (m *MockUserRepository) Save(user *domain.User) (*domain.User, error) {
	if m.SaveFn != nil {
		return m.SaveFn(user)
	}
	m.ByID[user.ID] = user
	m.ByLogin[user.Login] = user
	return user, nil
}

// FindByID retrieves a user by ID
func (m *MockUserRepository) FindByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// FindByLogin retrieves a user by login
func (m *MockUserRepository) FindByLogin(login string) (*domain.User, error) {
	if user, ok := m.ByLogin[login]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// ExistsByLogin reports whether a user with the login is stored
func (m *MockUserRepository) ExistsByLogin(login string) (bool, error) {
	_, ok := m.ByLogin[login]
	return ok, nil
}

// Delete removes the user from both indexes
func (m *MockUserRepository) Delete(id uuid.UUID) error {
	if user, ok := m.ByID[id]; ok {
		delete(m.ByLogin, user.Login)
		delete(m.ByID, id)
	}
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByLogin[user.Login] = user
}

// MockWalletRepository is a mock implementation of domain.WalletRepository
type MockWalletRepository struct {
	Wallets   map[uuid.UUID]*domain.Wallet
	SaveCount int
	SaveFn    func(wallet *domain.Wallet) (*domain.Wallet, error)
}

// NewMockWalletRepository creates a new MockWalletRepository
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		Wallets: make(map[uuid.UUID]*domain.Wallet),
	}
}

// Save stores the wallet keyed by owner
func (m *MockWalletRepository) Save(wallet *domain.Wallet) (*domain.Wallet, error) {
	m.SaveCount++
	if m.SaveFn != nil {
		return m.SaveFn(wallet)
	}
	m.Wallets[wallet.UserID] = wallet
	return wallet, nil
}

// FindByUserID retrieves a wallet by its owner
func (m *MockWalletRepository) FindByUserID(userID uuid.UUID) (*domain.Wallet, error) {
	if wallet, ok := m.Wallets[userID]; ok {
		return wallet, nil
	}
	return nil, domain.ErrWalletNotFound
}

// Delete removes the wallet
func (m *MockWalletRepository) Delete(userID uuid.UUID) error {
	delete(m.Wallets, userID)
	return nil
}

// AddWallet adds a wallet to the mock repository (helper for tests)
func (m *MockWalletRepository) AddWallet(wallet *domain.Wallet) {
	m.Wallets[wallet.UserID] = wallet
}

// BudgetAlert records one budget-exceeded event
type BudgetAlert struct {
	Category domain.Category
	Budget   domain.Budget
}

// BalanceAlert records one low-balance event
type BalanceAlert struct {
	Balance   decimal.Decimal
	Threshold decimal.Decimal
}

// MockNotifier is a recording implementation of domain.Notifier
type MockNotifier struct {
	BudgetAlerts  []BudgetAlert
	BalanceAlerts []BalanceAlert
	Posted        []domain.Transaction
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) BudgetExceeded(category domain.Category, budget domain.Budget) {
	m.BudgetAlerts = append(m.BudgetAlerts, BudgetAlert{Category: category, Budget: budget})
}

func (m *MockNotifier) LowBalance(balance, threshold decimal.Decimal) {
	m.BalanceAlerts = append(m.BalanceAlerts, BalanceAlert{Balance: balance, Threshold: threshold})
}

func (m *MockNotifier) TransactionPosted(tx domain.Transaction) {
	m.Posted = append(m.Posted, tx)
}
