package file

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eugenekweb/micartera/internal/domain"
)

// WalletRepository persists wallets as <storage>/wallets/<userID>_wallet.json
type WalletRepository struct {
	dir string
}

// NewWalletRepository creates the wallets directory if needed
func NewWalletRepository(storagePath string) (*WalletRepository, error) {
	dir := filepath.Join(storagePath, "wallets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &WalletRepository{dir: dir}, nil
}

func (r *WalletRepository) path(userID uuid.UUID) string {
	return filepath.Join(r.dir, userID.String()+"_wallet.json")
}

// Save overwrites the wallet's file with the full serialized aggregate.
func (r *WalletRepository) Save(wallet *domain.Wallet) (*domain.Wallet, error) {
	data, err := encode(wallet)
	if err != nil {
		return nil, &domain.StorageError{Op: "encode", Path: r.path(wallet.UserID), Err: err}
	}
	if err := writeAtomic(r.path(wallet.UserID), data); err != nil {
		log.Error().Err(err).Str("user_id", wallet.UserID.String()).Msg("Failed to save wallet")
		return nil, err
	}
	return wallet, nil
}

// FindByUserID returns ErrWalletNotFound when no file exists for the owner.
// A file that exists but does not parse is a storage error, not a miss.
func (r *WalletRepository) FindByUserID(userID uuid.UUID) (*domain.Wallet, error) {
	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, &domain.StorageError{Op: "read", Path: r.path(userID), Err: err}
	}
	var wallet domain.Wallet
	if err := decode(data, &wallet); err != nil {
		log.Error().Err(err).Str("path", r.path(userID)).Msg("Corrupt wallet file")
		return nil, &domain.StorageError{Op: "decode", Path: r.path(userID), Err: err}
	}
	if wallet.Budgets == nil {
		wallet.Budgets = map[uuid.UUID]domain.Budget{}
	}
	return &wallet, nil
}

// Delete removes the wallet's file; deleting a missing wallet is a no-op.
func (r *WalletRepository) Delete(userID uuid.UUID) error {
	if err := os.Remove(r.path(userID)); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete wallet file")
		return &domain.StorageError{Op: "remove", Path: r.path(userID), Err: err}
	}
	return nil
}
