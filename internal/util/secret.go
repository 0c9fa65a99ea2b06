package util

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "inquirydesk/pkg/errors"
)

// HashSecret returns the bcrypt hash stored as an account's secret
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", apperrors.New(apperrors.ErrCodeValidation, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.New(apperrors.ErrCodeValidation, "secret is too long")
		}
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// CheckSecret reports whether secret matches hash
func CheckSecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
