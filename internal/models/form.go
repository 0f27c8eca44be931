// Package models defines the data structures for NeverNoShow.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Employment status values accepted by the tenant form.
const (
	EmploymentEmployed     = "employed"
	EmploymentSelfEmployed = "self-employed"
	EmploymentStudent      = "student"
	EmploymentUnemployed   = "unemployed"
	EmploymentOther        = "other"
)

// Credit score bands.
const (
	CreditExcellent = "excellent"
	CreditGood      = "good"
	CreditFair      = "fair"
	CreditPoor      = "poor"
)

// Eviction history answers.
const (
	EvictionsNone            = "no"
	EvictionsOlderThan3Years = "more-than-3-years"
	EvictionsYes             = "yes"
)

// NoRentalHistory is the rentalHistory answer for first-time renters.
const NoRentalHistory = "no-history"

// FlexString holds a form value that may arrive as a JSON string or a JSON number.
type FlexString string

// UnmarshalJSON accepts strings, numbers and null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

// String returns the raw value.
func (f FlexString) String() string {
	return string(f)
}

// Int parses the leading integer of the value the way a lenient form parser
// does: surrounding whitespace and an optional sign are accepted and parsing
// stops at the first non-digit. ok is false when no digits lead the value.
func (f FlexString) Int() (n int, ok bool) {
	return ParseLeadingInt(string(f))
}

// ParseLeadingInt parses the integer prefix of s. Values past the int range
// saturate at math.MaxInt or math.MinInt.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits, saturated := 0, 0, false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if saturated {
			continue
		}
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			saturated = true
			continue
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}
	switch {
	case saturated && neg:
		return math.MinInt, true
	case saturated:
		return math.MaxInt, true
	case neg:
		return -n, true
	}
	return n, true
}

// TenantFormData is the payload a tenant submits through the landlord's link.
// The weighted profile reads the screening fields; the legacy profile reads
// PreviousNoShow and AdditionalComments.
type TenantFormData struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	LandlordID  string `json:"landlordId"`

	EmploymentStatus  string     `json:"employmentStatus,omitempty"`
	MonthlyIncome     FlexString `json:"monthlyIncome,omitempty"`
	CreditScore       string     `json:"creditScore,omitempty"`
	PreviousEvictions string     `json:"previousEvictions,omitempty"`
	RentalHistory     FlexString `json:"rentalHistory,omitempty"`

	EmergencyContact string `json:"emergencyContact,omitempty"`
	MoveInDate       string `json:"moveInDate,omitempty"`
	ReasonForMoving  string `json:"reasonForMoving,omitempty"`
	HasPets          string `json:"hasPets,omitempty"`

	PreviousNoShow     bool   `json:"previousNoShow,omitempty"`
	AdditionalComments string `json:"additionalComments,omitempty"`
}

// EmailDomain returns the part of the email after the first "@".
func (f *TenantFormData) EmailDomain() string {
	_, domain, found := strings.Cut(f.Email, "@")
	if !found {
		return ""
	}
	if i := strings.Index(domain, "@"); i >= 0 {
		domain = domain[:i]
	}
	return domain
}
