// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// minContactMessageLen mirrors the contact form's minimum message length.
const minContactMessageLen = 30

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 250 {
		return fmt.Errorf("name must not exceed 250 characters")
	}
	return nil
}

// ValidateEmail checks email format and length.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 250 {
		return fmt.Errorf("email must not exceed 250 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
// The 72-byte cap is bcrypt's input limit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}
	return nil
}

// ValidateImageURL checks that a post image URL is an absolute http(s) URL.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("image URL is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("image URL is invalid")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image URL must use http or https")
	}
	return nil
}

// ValidateContactMessage checks a contact-form message body.
func ValidateContactMessage(message string) error {
	if len(strings.TrimSpace(message)) < minContactMessageLen {
		return fmt.Errorf("message must be at least %d characters long", minContactMessageLen)
	}
	return nil
}
