package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eugenekweb/micartera/internal/domain"
)

// Session binds one authenticated user to one loaded wallet. It is an
// explicit object handed to callers, not process-global state; at most one
// (user, wallet) pair is held, both populated or neither.
type Session struct {
	userRepo   domain.UserRepository
	walletRepo domain.WalletRepository

	user   *domain.User
	wallet *domain.Wallet
}

// NewSession creates an inactive session over the given repositories
func NewSession(userRepo domain.UserRepository, walletRepo domain.WalletRepository) *Session {
	return &Session{
		userRepo:   userRepo,
		walletRepo: walletRepo,
	}
}

// Open loads the user and wallet for the id and makes them current. If
// either load misses, the session keeps its prior state; a half-loaded
// session is never exposed.
func (s *Session) Open(userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %w", domain.ErrSession, err)
		}
		return err
	}
	wallet, err := s.walletRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return fmt.Errorf("%w: %w", domain.ErrSession, err)
		}
		return err
	}

	s.user = user
	s.wallet = wallet
	log.Info().Str("login", user.Login).Msg("Session opened")
	return nil
}

// Active reports whether a user/wallet pair is loaded.
func (s *Session) Active() bool {
	return s.user != nil && s.wallet != nil
}

// User returns the current user or ErrNoActiveSession.
func (s *Session) User() (*domain.User, error) {
	if !s.Active() {
		return nil, domain.ErrNoActiveSession
	}
	return s.user, nil
}

// Wallet returns the current wallet or ErrNoActiveSession.
func (s *Session) Wallet() (*domain.Wallet, error) {
	if !s.Active() {
		return nil, domain.ErrNoActiveSession
	}
	return s.wallet, nil
}

// SaveAndClose persists the current user and wallet, then clears the slot.
// Safe to call unconditionally: with no active session it is a no-op. On a
// failed save the slot is kept so the caller can retry; the in-memory state
// may be ahead of disk and must not be dropped silently.
func (s *Session) SaveAndClose() error {
	if !s.Active() {
		return nil
	}
	if _, err := s.userRepo.Save(s.user); err != nil {
		log.Error().Err(err).Str("login", s.user.Login).Msg("Failed to persist user on close")
		return err
	}
	if _, err := s.walletRepo.Save(s.wallet); err != nil {
		log.Error().Err(err).Str("login", s.user.Login).Msg("Failed to persist wallet on close")
		return err
	}
	log.Info().Str("login", s.user.Login).Msg("Session closed")
	s.user = nil
	s.wallet = nil
	return nil
}
