package service

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/eugenekweb/micartera/internal/config"
)

// Validator holds the pure predicate checks consumed by the wallet and auth
// services before any mutation.
type Validator struct {
	loginPattern    *regexp.Regexp
	passwordPattern *regexp.Regexp
	loginMin        int
	loginMax        int
	passwordMin     int
	passwordMax     int
}

// NewValidator compiles the configured shape patterns.
func NewValidator(cfg config.ValidationConfig) (*Validator, error) {
	loginPattern, err := regexp.Compile(cfg.LoginPattern)
	if err != nil {
		return nil, err
	}
	var passwordPattern *regexp.Regexp
	if cfg.PasswordPattern != "" {
		if passwordPattern, err = regexp.Compile(cfg.PasswordPattern); err != nil {
			return nil, err
		}
	}
	return &Validator{
		loginPattern:    loginPattern,
		passwordPattern: passwordPattern,
		loginMin:        cfg.LoginMinLength,
		loginMax:        cfg.LoginMaxLength,
		passwordMin:     cfg.PasswordMinLength,
		passwordMax:     cfg.PasswordMaxLength,
	}, nil
}

// ValidAmount reports whether amount is positive with at most two decimal
// places.
func (v *Validator) ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(2))
}

// ValidLogin checks length bounds and the configured login pattern.
func (v *Validator) ValidLogin(login string) bool {
	if len(login) < v.loginMin || len(login) > v.loginMax {
		return false
	}
	return v.loginPattern.MatchString(login)
}

// ValidPassword checks length bounds and, when configured, the password
// pattern.
func (v *Validator) ValidPassword(password string) bool {
	if len(password) < v.passwordMin || len(password) > v.passwordMax {
		return false
	}
	if v.passwordPattern != nil {
		return v.passwordPattern.MatchString(password)
	}
	return true
}
