package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eugenekweb/micartera/internal/domain"
)

// UserRepository persists users as <storage>/users/<id>.json
type UserRepository struct {
	dir string
}

// NewUserRepository creates the users directory if needed
func NewUserRepository(storagePath string) (*UserRepository, error) {
	dir := filepath.Join(storagePath, "users")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &UserRepository{dir: dir}, nil
}

func (r *UserRepository) path(id uuid.UUID) string {
	return filepath.Join(r.dir, id.String()+".json")
}

// Save overwrites the user's file with the full serialized entity.
func (r *UserRepository) Save(user *domain.User) (*domain.User, error) {
	data, err := encode(user)
	if err != nil {
		return nil, &domain.StorageError{Op: "encode", Path: r.path(user.ID), Err: err}
	}
	if err := writeAtomic(r.path(user.ID), data); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to save user")
		return nil, err
	}
	return user, nil
}

// FindByID returns ErrUserNotFound when no file exists for the id. A file
// that exists but does not parse is a storage error, not a miss.
func (r *UserRepository) FindByID(id uuid.UUID) (*domain.User, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, &domain.StorageError{Op: "read", Path: r.path(id), Err: err}
	}
	var user domain.User
	if err := decode(data, &user); err != nil {
		log.Error().Err(err).Str("path", r.path(id)).Msg("Corrupt user file")
		return nil, &domain.StorageError{Op: "decode", Path: r.path(id), Err: err}
	}
	return &user, nil
}

// FindByLogin scans every user file; there is no secondary index. O(n) in
// registered users, acceptable for a local single-user tool.
func (r *UserRepository) FindByLogin(login string) (*domain.User, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &domain.StorageError{Op: "readdir", Path: r.dir, Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.StorageError{Op: "read", Path: path, Err: err}
		}
		var user domain.User
		if err := decode(data, &user); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Corrupt user file")
			return nil, &domain.StorageError{Op: "decode", Path: path, Err: err}
		}
		if user.Login == login {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ExistsByLogin reports whether any user file carries the login.
func (r *UserRepository) ExistsByLogin(login string) (bool, error) {
	_, err := r.FindByLogin(login)
	if err == domain.ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the user's file; deleting a missing user is a no-op.
func (r *UserRepository) Delete(id uuid.UUID) error {
	if err := os.Remove(r.path(id)); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to delete user file")
		return &domain.StorageError{Op: "remove", Path: r.path(id), Err: err}
	}
	return nil
}
