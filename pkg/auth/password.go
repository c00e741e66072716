package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatchedPassword = errors.New("password does not match")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword also fails for empty or non-bcrypt hashes, so seeded rows
// without a usable password can never log in.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrMismatchedPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedPassword
	}
	return nil
}
