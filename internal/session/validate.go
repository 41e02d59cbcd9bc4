package session

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLen = 6
	maxNameLen     = 60
)

// ValidateLogin checks login input before any request is made
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return validation("Email and password are required")
	}
	return validateEmail(email)
}

// ValidateRegister checks registration input before any request is made
func ValidateRegister(name, email, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(email) == "" || password == "" {
		return validation("All fields are required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return validation("Name must be at most 60 characters")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return validation("Password must be at least 6 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validation("Invalid email format")
	}
	return nil
}
