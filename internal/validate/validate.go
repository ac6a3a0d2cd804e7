// Package validate holds the canonical input rules for checkout and payment.
// The thresholds are named here once so near-duplicate callers cannot drift.
package validate

import (
	"regexp"
	"strings"
)

const (
	MinNameLength    = 2
	MinAddressLength = 5
	MaxOrderIDLength = 50
)

var (
	// Kenyan mobile numbers: 254 or 0 prefix, then the 7xx or 1xx ranges.
	phoneRegex = regexp.MustCompile(`^(254|0)[71][0-9]{8}$`)

	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// M-Pesa receipt numbers are short alphanumeric tokens.
	mpesaCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8,12}$`)

	orderCodeRegex = regexp.MustCompile(`^SLM[0-9]{6}$`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Sanitize strips the characters that would let a stored value smuggle markup
// into downstream displays, then trims surrounding whitespace. It is not a
// substitute for output encoding.
func Sanitize(input string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', '&':
			return -1
		}
		return r
	}, input))
}

// Phone reports whether phone is a valid Kenyan mobile/landline number after
// stripping internal whitespace.
func Phone(phone string) bool {
	return phoneRegex.MatchString(whitespaceRegex.ReplaceAllString(phone, ""))
}

// NormalizePhone removes internal whitespace so "0722 123 456" matches the
// number stored at checkout.
func NormalizePhone(phone string) string {
	return whitespaceRegex.ReplaceAllString(phone, "")
}

func Email(email string) bool {
	return emailRegex.MatchString(email)
}

func Name(name string) bool {
	return len(strings.TrimSpace(name)) >= MinNameLength
}

func Address(address string) bool {
	return len(strings.TrimSpace(address)) >= MinAddressLength
}

// Amount checks an order total against the configured ceiling.
func Amount(amount float64, maxAmount float64) bool {
	return amount > 0 && amount <= maxAmount
}

// MpesaCode reports whether code looks like an M-Pesa transaction code. Codes
// are matched case-insensitively; store them with NormalizeMpesaCode.
func MpesaCode(code string) bool {
	return mpesaCodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

func NormalizeMpesaCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// OrderCode reports whether code matches the generated order-code format.
func OrderCode(code string) bool {
	return orderCodeRegex.MatchString(code)
}
