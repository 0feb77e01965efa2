package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category belongs to exactly one wallet. Names are not required to be
// unique; selecting a category by name is ambiguous when duplicates exist.
type Category struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Budget is a per-category spending cap. Setting a budget for a category
// that already has one replaces it wholesale, discarding accumulated spend.
type Budget struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Enabled    bool            `json:"enabled"`
	SetAt      time.Time       `json:"setAt"`
}

// Wallet is the per-user aggregate: running balance, categories in insertion
// order, budgets keyed by category id, and the append-only ledger in
// chronological order. Balance always equals total income minus total expense.
type Wallet struct {
	UserID     uuid.UUID            `json:"userId"`
	Balance    decimal.Decimal      `json:"balance"`
	Categories []Category           `json:"categories"`
	Budgets    map[uuid.UUID]Budget `json:"budgets"`
	Ledger     []Transaction        `json:"transactions"`
}

// NewWallet creates an empty wallet for the given owner.
func NewWallet(userID uuid.UUID) *Wallet {
	return &Wallet{
		UserID:     userID,
		Balance:    decimal.Zero,
		Categories: []Category{},
		Budgets:    map[uuid.UUID]Budget{},
		Ledger:     []Transaction{},
	}
}

// CategoryByID returns the category with the given id, if present.
func (w *Wallet) CategoryByID(id uuid.UUID) (Category, bool) {
	for _, c := range w.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoriesOfType returns the wallet's categories of one type, in insertion
// order.
func (w *Wallet) CategoriesOfType(t CategoryType) []Category {
	var out []Category
	for _, c := range w.Categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// CategoryTotalSince sums the amounts of ledger entries in the given category
// created at or after the given instant.
func (w *Wallet) CategoryTotalSince(categoryID uuid.UUID, since time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range w.Ledger {
		if tx.Category.ID == categoryID && !tx.Created.Before(since) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// WalletRepository defines the interface for wallet persistence operations
type WalletRepository interface {
	Save(wallet *Wallet) (*Wallet, error)
	FindByUserID(userID uuid.UUID) (*Wallet, error)
	Delete(userID uuid.UUID) error
}
