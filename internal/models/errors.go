// Package models defines the data structures for NeverNoShow.
package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Field keys reported by ValidateForm.
const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldLandlordID  = "landlordId"
)

// Validation messages.
const (
	MsgFullNameRequired    = "Full name is required (minimum 2 characters)"
	MsgEmailRequired       = "Valid email address is required"
	MsgPhoneRequired       = "Valid phone number is required (minimum 7 digits)"
	MsgPhoneRequiredStrict = "Valid phone number is required"
	MsgLandlordIDRequired  = "Landlord ID is required"
)

// ValidationMode selects which contact-field rules apply.
type ValidationMode string

const (
	// ValidationLoose is the rule set used on the persisted-submission path.
	ValidationLoose ValidationMode = "loose"
	// ValidationStrict applies the regex checks of the older form handler.
	ValidationStrict ValidationMode = "strict"
)

// ParseValidationMode maps a configured name to a mode. Empty means loose.
func ParseValidationMode(name string) (ValidationMode, error) {
	switch mode := ValidationMode(strings.ToLower(strings.TrimSpace(name))); mode {
	case "":
		return ValidationLoose, nil
	case ValidationLoose, ValidationStrict:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q", name)
	}
}

var (
	strictEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	strictPhonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// FormErrors maps a field key to a user-facing message.
type FormErrors map[string]string

// Fields returns the failing field keys in sorted order.
func (e FormErrors) Fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateForm checks a submission payload and returns every failing field,
// or nil when the form is acceptable.
func ValidateForm(f *TenantFormData, mode ValidationMode) FormErrors {
	errs := FormErrors{}

	if len(strings.TrimSpace(f.FullName)) < 2 {
		errs[FieldFullName] = MsgFullNameRequired
	}

	if !isValidEmail(f.Email, mode) {
		errs[FieldEmail] = MsgEmailRequired
	}

	if mode == ValidationStrict {
		if !strictPhonePattern.MatchString(f.PhoneNumber) {
			errs[FieldPhoneNumber] = MsgPhoneRequiredStrict
		}
	} else if len(PhoneDigits(f.PhoneNumber)) < 7 {
		errs[FieldPhoneNumber] = MsgPhoneRequired
	}

	if f.LandlordID == "" {
		errs[FieldLandlordID] = MsgLandlordIDRequired
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PhoneDigits strips everything but ASCII digits.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isValidEmail(email string, mode ValidationMode) bool {
	if email == "" {
		return false
	}
	if mode == ValidationStrict {
		return strictEmailPattern.MatchString(email)
	}
	return strings.Contains(email, "@")
}
