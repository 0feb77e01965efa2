package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/config"
	"github.com/eugenekweb/micartera/internal/service"
	"github.com/eugenekweb/micartera/internal/testutil"
)

func newTestApp(t *testing.T, script string) (*App, *testutil.MockWalletRepository, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		DateFormat:          "2006-01-02 15:04",
		DefaultPeriodMonths: 1,
		LowBalanceThreshold: decimal.NewFromInt(1000),
		Validation: config.ValidationConfig{
			LoginPattern:      "^[a-zA-Z0-9_-]+$",
			LoginMinLength:    3,
			LoginMaxLength:    20,
			PasswordMinLength: 3,
			PasswordMaxLength: 32,
		},
	}
	userRepo := testutil.NewMockUserRepository()
	walletRepo := testutil.NewMockWalletRepository()
	validator, err := service.NewValidator(cfg.Validation)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	notifications := service.NewNotificationService()
	auth := service.NewAuthService(userRepo, validator, service.NewBcryptHasher())
	wallets := service.NewWalletService(walletRepo, validator, notifications, cfg.LowBalanceThreshold)
	transactions := service.NewTransactionService(cfg.DefaultPeriodMonths)
	session := service.NewSession(userRepo, walletRepo)

	app := New(cfg, session, auth, wallets, transactions, notifications)
	out := &bytes.Buffer{}
	app.ReaderWriter(strings.NewReader(script), out)
	return app, walletRepo, out
}

func TestRegisterAddCategoryAndIncome(t *testing.T) {
	// Register alice, add a Salary income category, post 2000.00 of income,
	// show balance, exit.
	script := strings.Join([]string{
		"2",          // register
		"alice",      // login
		"pw123",      // password
		"5",          // add category
		"Salary",     // name
		"income",     // type
		"2",          // add income
		"1",          // the only category
		"2000.00",    // amount
		"march pay",  // description
		"1",          // show balance
		"0",          // exit
	}, "\n") + "\n"

	app, walletRepo, out := newTestApp(t, script)
	if err := app.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(walletRepo.Wallets) != 1 {
		t.Fatalf("expected one persisted wallet, got %d", len(walletRepo.Wallets))
	}
	var balance decimal.Decimal
	for _, w := range walletRepo.Wallets {
		balance = w.Balance
	}
	if !balance.Equal(decimal.RequireFromString("2000.00")) {
		t.Errorf("expected persisted balance 2000.00, got %s", balance)
	}
	if !strings.Contains(out.String(), "Balance: 2000.00") {
		t.Errorf("balance was not rendered:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Income: 2000.00 (Salary)") {
		t.Errorf("transaction notification was not drained:\n%s", out.String())
	}
}

func TestInsufficientFundsIsReportedNotFatal(t *testing.T) {
	script := strings.Join([]string{
		"2",       // register
		"bob",     // login
		"pw123",   // password
		"5",       // add category
		"Food",    // name
		"expense", // type
		"3",       // add expense with zero balance
		"1",       // the only category
		"50.00",   // amount
		"",        // description
		"0",       // exit
	}, "\n") + "\n"

	app, _, out := newTestApp(t, script)
	if err := app.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "insufficient funds") {
		t.Errorf("validation failure should be rendered and the loop kept alive:\n%s", out.String())
	}
}

func TestUnknownMenuOption(t *testing.T) {
	script := "99\n0\n"

	app, _, out := newTestApp(t, script)
	if err := app.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "No such option") {
		t.Errorf("out-of-range choice should be reported:\n%s", out.String())
	}
}
