package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// bcrypt silently ignores anything past 72 bytes.
	MaxPasswordBytes = 72
)

// passwordCost is a variable so tests can trade strength for speed.
var passwordCost = bcrypt.DefaultCost

// User models an account holder. PasswordHash is only ever written through
// SetPassword and is never serialized.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Bio          *string
	ImageURL     *string
	CreatedAt    time.Time
}

// NewUser builds an unsaved user. The username is trimmed and must not be
// empty.
func NewUser(username string, bio, imageURL *string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewValidationError("username", "Username is required")
	}
	return &User{
		Username:  username,
		Bio:       bio,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SetPassword applies the password policy and stores the bcrypt hash of
// plain. The plaintext is not retained.
func (u *User) SetPassword(plain string) error {
	if err := CheckPasswordPolicy(plain); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// Authenticate reports whether plain matches the stored hash.
func (u *User) Authenticate(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// CheckPasswordPolicy rejects blank, short and over-long passwords.
func CheckPasswordPolicy(plain string) error {
	switch {
	case strings.TrimSpace(plain) == "":
		return NewValidationError("password", "Password is required")
	case len([]rune(plain)) < MinPasswordLength:
		return NewValidationError("password", "Password must be at least %d characters", MinPasswordLength)
	case len(plain) > MaxPasswordBytes:
		return NewValidationError("password", "Password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}
