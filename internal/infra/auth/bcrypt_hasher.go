package auth

import (
	"crm/config"
	"crm/internal/domain/service"
	"crm/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHashSource is hashed once at construction so DummyCheck compares
// against a hash of the configured cost.
const dummyHashSource = "crm-dummy-password-never-valid"

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	dummyHash []byte
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyHashSource), cost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy hash")
	}

	return &bcryptHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) DummyCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
