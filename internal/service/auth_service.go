package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/eugenekweb/micartera/internal/domain"
)

// CredentialHasher turns plaintext passwords into stored hashes and checks
// candidates against them. The algorithm choice stays behind this interface.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher is the default CredentialHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher at the library default cost
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService handles registration, authentication and password changes
type AuthService struct {
	userRepo  domain.UserRepository
	validator *Validator
	hasher    CredentialHasher
	now       func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, validator *Validator, hasher CredentialHasher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		now:       time.Now,
	}
}

// Register creates a new user after validating the credential shape and
// login uniqueness.
func (s *AuthService) Register(login, password string) (*domain.User, error) {
	if !s.validator.ValidLogin(login) {
		return nil, domain.ErrInvalidLogin
	}
	if !s.validator.ValidPassword(password) {
		return nil, domain.ErrInvalidPassword
	}
	taken, err := s.userRepo.ExistsByLogin(login)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrLoginTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		Created:      s.now(),
	}
	if _, err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	log.Info().Str("login", login).Msg("Registered user")
	return user, nil
}

// Authenticate verifies a login/password pair. Unknown logins and wrong
// passwords surface distinct authentication-class errors; neither touches
// session state.
func (s *AuthService) Authenticate(login, password string) (*domain.User, error) {
	log.Debug().Str("login", login).Msg("Authentication attempt")
	user, err := s.userRepo.FindByLogin(login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Warn().Str("login", login).Msg("Authentication failed: unknown login")
			return nil, domain.ErrUnknownLogin
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Warn().Str("login", login).Msg("Authentication failed: wrong password")
		return nil, domain.ErrWrongPassword
	}
	log.Info().Str("login", login).Msg("Authenticated user")
	return user, nil
}

// ChangePassword re-hashes and persists a new password for an existing user.
func (s *AuthService) ChangePassword(userID uuid.UUID, newPassword string) (*domain.User, error) {
	if !s.validator.ValidPassword(newPassword) {
		return nil, domain.ErrInvalidPassword
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	if _, err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	log.Info().Str("login", user.Login).Msg("Password changed")
	return user, nil
}
