package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/eugenekweb/micartera/internal/domain"
	"github.com/eugenekweb/micartera/internal/testutil"
)

func newTestSession(t *testing.T) (*Session, *testutil.MockUserRepository, *testutil.MockWalletRepository) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	walletRepo := testutil.NewMockWalletRepository()
	return NewSession(userRepo, walletRepo), userRepo, walletRepo
}

func seedUserAndWallet(userRepo *testutil.MockUserRepository, walletRepo *testutil.MockWalletRepository, login string) *domain.User {
	user := &domain.User{ID: uuid.New(), Login: login}
	userRepo.AddUser(user)
	walletRepo.AddWallet(domain.NewWallet(user.ID))
	return user
}

func TestSessionStartsInactive(t *testing.T) {
	session, _, _ := newTestSession(t)

	if session.Active() {
		t.Errorf("fresh session must be inactive")
	}
	if _, err := session.User(); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
	if _, err := session.Wallet(); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSessionOpen(t *testing.T) {
	session, userRepo, walletRepo := newTestSession(t)
	user := seedUserAndWallet(userRepo, walletRepo, "alice")

	if err := session.Open(user.ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	current, err := session.User()
	if err != nil || current.ID != user.ID {
		t.Errorf("expected alice current, got %v %v", current, err)
	}
	wallet, err := session.Wallet()
	if err != nil || wallet.UserID != user.ID {
		t.Errorf("expected alice's wallet current, got %v %v", wallet, err)
	}
}

func TestSessionOpenMissingUser(t *testing.T) {
	session, _, _ := newTestSession(t)

	err := session.Open(uuid.New())
	if !errors.Is(err, domain.ErrSession) || !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected a session error wrapping user-not-found, got %v", err)
	}
	if session.Active() {
		t.Errorf("failed open must leave the session inactive")
	}
}

func TestSessionOpenMissingWalletKeepsPriorState(t *testing.T) {
	session, userRepo, walletRepo := newTestSession(t)
	alice := seedUserAndWallet(userRepo, walletRepo, "alice")
	// bob has a user file but no wallet.
	bob := &domain.User{ID: uuid.New(), Login: "bob"}
	userRepo.AddUser(bob)

	if err := session.Open(alice.ID); err != nil {
		t.Fatalf("open alice: %v", err)
	}
	err := session.Open(bob.ID)
	if !errors.Is(err, domain.ErrSession) || !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected a session error wrapping wallet-not-found, got %v", err)
	}

	// Alice stays current; no partial session.
	current, err := session.User()
	if err != nil || current.ID != alice.ID {
		t.Errorf("failed open must keep the prior session, got %v %v", current, err)
	}
}

func TestSaveAndCloseClearsSlot(t *testing.T) {
	session, userRepo, walletRepo := newTestSession(t)
	user := seedUserAndWallet(userRepo, walletRepo, "alice")
	if err := session.Open(user.ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	saves := walletRepo.SaveCount

	if err := session.SaveAndClose(); err != nil {
		t.Fatalf("save and close: %v", err)
	}
	if session.Active() {
		t.Errorf("session must be inactive after close")
	}
	if walletRepo.SaveCount != saves+1 {
		t.Errorf("close must persist the wallet")
	}
	if _, err := session.Wallet(); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession after close, got %v", err)
	}
}

func TestSaveAndCloseWithoutSessionIsNoop(t *testing.T) {
	session, _, walletRepo := newTestSession(t)

	if err := session.SaveAndClose(); err != nil {
		t.Errorf("close without a session must be a no-op, got %v", err)
	}
	if walletRepo.SaveCount != 0 {
		t.Errorf("no-op close must not persist anything")
	}
	// Calling it twice is equally safe.
	if err := session.SaveAndClose(); err != nil {
		t.Errorf("repeated close must stay a no-op, got %v", err)
	}
}

func TestSaveAndCloseFailureKeepsSession(t *testing.T) {
	session, userRepo, walletRepo := newTestSession(t)
	user := seedUserAndWallet(userRepo, walletRepo, "alice")
	if err := session.Open(user.ID); err != nil {
		t.Fatalf("open: %v", err)
	}

	boom := &domain.StorageError{Op: "write", Path: "wallet.json", Err: errors.New("disk full")}
	walletRepo.SaveFn = func(w *domain.Wallet) (*domain.Wallet, error) { return nil, boom }

	err := session.SaveAndClose()
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected the storage error to propagate, got %v", err)
	}
	if !session.Active() {
		t.Errorf("failed close must keep the session so the caller can retry")
	}

	walletRepo.SaveFn = nil
	if err := session.SaveAndClose(); err != nil {
		t.Errorf("retry after the failure should succeed, got %v", err)
	}
}
