package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Field validation lives in the domain so the stores never trust the
// transport layer to have sanitized or validated input.

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// RequireString rejects empty or whitespace-only values.
func RequireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationErrorf("%s must not be blank", field)
	}
	return nil
}

// NormalizeEmail validates the address shape and returns it trimmed and
// lowercased, the form every store query uses.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", validationErrorf("email must not be blank")
	}
	if !emailPattern.MatchString(email) {
		return "", validationErrorf("email address is not valid")
	}
	return email, nil
}

// IsStudentEmail reports whether the address belongs to an .edu domain.
// Students may only register with one.
func IsStudentEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), ".edu")
}

// ValidatePassword enforces the minimum credential shape: at least six
// characters, no spaces, and at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return validationErrorf("password must be at least 6 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return validationErrorf("password must not contain spaces")
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return validationErrorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidatePersonName checks a first or last name: non-blank, letters plus
// the usual separators.
func ValidatePersonName(field, name string) error {
	if err := RequireString(field, name); err != nil {
		return err
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return validationErrorf("%s may only contain letters, spaces, hyphens, and apostrophes", field)
		}
	}
	return nil
}

// ValidateContact checks a phone number: 10 to 15 digits, ignoring an
// optional leading + and common separators.
func ValidateContact(contact string) error {
	if err := RequireString("contact", contact); err != nil {
		return err
	}
	digits := 0
	for i, r := range contact {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return validationErrorf("contact number contains invalid characters")
		}
	}
	if digits < 10 || digits > 15 {
		return validationErrorf("contact number must contain 10 to 15 digits")
	}
	return nil
}

// ParseUserType converts the external user-type string into the enum.
func ParseUserType(userType string) (UserType, error) {
	switch UserType(strings.ToLower(strings.TrimSpace(userType))) {
	case TypeStudent:
		return TypeStudent, nil
	case TypeBroker:
		return TypeBroker, nil
	default:
		return "", validationErrorf("user type must be student or broker")
	}
}

// ValidatePropertyID checks the shape of a property id (24-char hex, the
// document store's canonical object id encoding).
func ValidatePropertyID(id string) error {
	if len(id) != 24 {
		return validationErrorf("property id must be a 24-character hex string")
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return validationErrorf("property id must be a 24-character hex string")
		}
	}
	return nil
}

// ValidatePincode checks a postal code: 4 to 10 digits.
func ValidatePincode(pincode string) error {
	if err := RequireString("pincode", pincode); err != nil {
		return err
	}
	if len(pincode) < 4 || len(pincode) > 10 {
		return validationErrorf("pincode must be 4 to 10 digits")
	}
	for _, r := range pincode {
		if !unicode.IsDigit(r) {
			return validationErrorf("pincode must contain only digits")
		}
	}
	return nil
}
