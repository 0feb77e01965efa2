// Package cli is the console collaborator: it drives the session and wallet
// operations strictly sequentially, owns all prompting and rendering, and
// never encodes domain rules of its own.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/eugenekweb/micartera/internal/config"
	"github.com/eugenekweb/micartera/internal/domain"
	"github.com/eugenekweb/micartera/internal/service"
)

// command is one menu entry: a label and its handler. Dispatch is a plain
// table, selected by the number the user types.
type command struct {
	label string
	run   func() error
}

// App wires the services to an interactive prompt loop.
type App struct {
	cfg           *config.Config
	session       *service.Session
	auth          *service.AuthService
	wallets       *service.WalletService
	transactions  *service.TransactionService
	notifications *service.NotificationService

	in  *bufio.Reader
	out io.Writer
}

// New creates a console app over the given collaborators.
func New(cfg *config.Config, session *service.Session, auth *service.AuthService, wallets *service.WalletService, transactions *service.TransactionService, notifications *service.NotificationService) *App {
	return &App{
		cfg:           cfg,
		session:       session,
		auth:          auth,
		wallets:       wallets,
		transactions:  transactions,
		notifications: notifications,
		in:            bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}
}

// Run loops over the menu until the user quits. The session is saved and
// closed on the way out regardless of how the loop ends.
func (a *App) Run() error {
	defer func() {
		if err := a.session.SaveAndClose(); err != nil {
			log.Error().Err(err).Msg("Failed to save session on shutdown")
		}
	}()

	for {
		var quit bool
		var err error
		if a.session.Active() {
			quit, err = a.menu(a.walletMenu())
		} else {
			quit, err = a.menu(a.anonymousMenu())
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			a.report(err)
			if errors.Is(err, domain.ErrStorage) {
				log.Error().Err(err).Msg("Storage failure")
			}
		}
		a.drainNotifications()
		if quit {
			return nil
		}
	}
}

func (a *App) anonymousMenu() []command {
	return []command{
		{"Log in", a.login},
		{"Register", a.register},
	}
}

func (a *App) walletMenu() []command {
	return []command{
		{"Show balance", a.showBalance},
		{"Add income", a.addIncome},
		{"Add expense", a.addExpense},
		{"Categories and month totals", a.showCategories},
		{"Add category", a.addCategory},
		{"Delete category", a.deleteCategory},
		{"Set budget", a.setBudget},
		{"Delete budget", a.deleteBudget},
		{"Transaction history", a.showHistory},
		{"Change password", a.changePassword},
		{"Log out", a.logout},
	}
}

// menu renders the table, reads one choice and runs it. Returns quit=true
// when the user picks 0.
func (a *App) menu(commands []command) (bool, error) {
	fmt.Fprintln(a.out)
	for i, c := range commands {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, c.label)
	}
	fmt.Fprintln(a.out, " 0. Exit")

	choice, err := a.promptInt("> ")
	if err != nil {
		return false, err
	}
	if choice == 0 {
		return true, nil
	}
	if choice < 1 || choice > len(commands) {
		fmt.Fprintln(a.out, "No such option")
		return false, nil
	}
	return false, commands[choice-1].run()
}

func (a *App) login() error {
	login, err := a.prompt("Login: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}
	user, err := a.auth.Authenticate(login, password)
	if err != nil {
		return err
	}
	if err := a.session.Open(user.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, %s\n", user.Login)
	return nil
}

func (a *App) register() error {
	login, err := a.prompt("Login: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}
	user, err := a.auth.Register(login, password)
	if err != nil {
		return err
	}
	if _, err := a.wallets.CreateWallet(user.ID); err != nil {
		return err
	}
	if err := a.session.Open(user.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s\n", user.Login)
	return nil
}

func (a *App) logout() error {
	return a.session.SaveAndClose()
}

func (a *App) showBalance() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Balance: %s\n", wallet.Balance.StringFixed(2))
	return nil
}

func (a *App) addIncome() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	category, err := a.chooseCategory(wallet, domain.CategoryTypeIncome)
	if err != nil {
		return err
	}
	amount, err := a.promptAmount("Amount: ")
	if err != nil {
		return err
	}
	description, err := a.prompt("Description (optional): ")
	if err != nil {
		return err
	}
	return a.wallets.AddIncome(wallet, amount, category, description)
}

func (a *App) addExpense() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	category, err := a.chooseCategory(wallet, domain.CategoryTypeExpense)
	if err != nil {
		return err
	}
	amount, err := a.promptAmount("Amount: ")
	if err != nil {
		return err
	}
	description, err := a.prompt("Description (optional): ")
	if err != nil {
		return err
	}
	return a.wallets.AddExpense(wallet, amount, category, description)
}

func (a *App) showCategories() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	if len(wallet.Categories) == 0 {
		fmt.Fprintln(a.out, "No categories yet")
		return nil
	}
	for _, c := range wallet.Categories {
		total := a.wallets.CategoryMonthTotal(wallet, c)
		fmt.Fprintf(a.out, "%-20s %-8s this month: %s\n", c.Name, c.Type, total.StringFixed(2))
	}
	return nil
}

func (a *App) addCategory() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	name, err := a.prompt("Name: ")
	if err != nil {
		return err
	}
	kind, err := a.prompt("Type (income/expense): ")
	if err != nil {
		return err
	}
	_, err = a.wallets.AddCategory(wallet, name, domain.CategoryType(kind))
	return err
}

func (a *App) deleteCategory() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	category, err := a.chooseFrom(wallet.Categories)
	if err != nil {
		return err
	}
	return a.wallets.DeleteCategory(wallet, category.ID)
}

func (a *App) setBudget() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	category, err := a.chooseFrom(wallet.CategoriesOfType(domain.CategoryTypeExpense))
	if err != nil {
		return err
	}
	limit, err := a.promptAmount("Limit: ")
	if err != nil {
		return err
	}
	return a.wallets.SetBudget(wallet, category.ID, limit)
}

func (a *App) deleteBudget() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	category, err := a.chooseFrom(wallet.Categories)
	if err != nil {
		return err
	}
	return a.wallets.DeleteBudget(wallet, category.ID)
}

func (a *App) showHistory() error {
	wallet, err := a.session.Wallet()
	if err != nil {
		return err
	}
	from, to := a.transactions.DefaultPeriod()
	entries := a.transactions.HistoryBetween(wallet, from, to)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No transactions in the period")
		return nil
	}
	for _, tx := range entries {
		fmt.Fprintf(a.out, "%s  %-7s %10s  %-20s %s\n",
			tx.Created.Format(a.cfg.DateFormat), tx.Type, tx.Amount.StringFixed(2),
			tx.Category.Name, tx.Description)
	}
	return nil
}

func (a *App) changePassword() error {
	user, err := a.session.User()
	if err != nil {
		return err
	}
	password, err := a.promptPassword("New password: ")
	if err != nil {
		return err
	}
	_, err = a.auth.ChangePassword(user.ID, password)
	return err
}

func (a *App) chooseCategory(wallet *domain.Wallet, preferred domain.CategoryType) (domain.Category, error) {
	categories := wallet.CategoriesOfType(preferred)
	if len(categories) == 0 {
		categories = wallet.Categories
	}
	return a.chooseFrom(categories)
}

func (a *App) chooseFrom(categories []domain.Category) (domain.Category, error) {
	if len(categories) == 0 {
		return domain.Category{}, fmt.Errorf("%w: no categories to choose from", domain.ErrValidation)
	}
	for i, c := range categories {
		fmt.Fprintf(a.out, "%2d. %s (%s)\n", i+1, c.Name, c.Type)
	}
	choice, err := a.promptInt("Category: ")
	if err != nil {
		return domain.Category{}, err
	}
	if choice < 1 || choice > len(categories) {
		return domain.Category{}, fmt.Errorf("%w: no such category", domain.ErrValidation)
	}
	return categories[choice-1], nil
}

func (a *App) drainNotifications() {
	for _, message := range a.notifications.Pending() {
		fmt.Fprintf(a.out, "! %s\n", message)
	}
	a.notifications.Clear()
}

func (a *App) report(err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrSession):
		fmt.Fprintf(a.out, "%s\n", err)
	default:
		fmt.Fprintf(a.out, "Operation failed: %s\n", err)
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) promptInt(label string) (int, error) {
	line, err := a.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: expected a number", domain.ErrValidation)
	}
	return n, nil
}

func (a *App) promptAmount(label string) (decimal.Decimal, error) {
	line, err := a.prompt(label)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

// promptPassword reads without echo when stdin is a terminal, falling back
// to a plain line read otherwise (tests, pipes).
func (a *App) promptPassword(label string) (string, error) {
	fmt.Fprint(a.out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReaderWriter overrides the app's streams (used by tests).
func (a *App) ReaderWriter(in io.Reader, out io.Writer) {
	a.in = bufio.NewReader(in)
	a.out = out
}
