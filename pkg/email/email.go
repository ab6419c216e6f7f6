package email

import (
	"net/mail"
	"strings"
	"unicode"
)

// Normalize trims surrounding whitespace and lowercases the address.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsValid reports whether address is a bare RFC 5322 address without a
// display name.
func IsValid(address string) bool {
	if address == "" || strings.ContainsAny(address, " \t\r\n") {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	return parsed.Address == address && parsed.Name == ""
}

// DisplayName derives a human readable name from the local part,
// e.g. "jane.doe@example.com" becomes "Jane Doe".
func DisplayName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Member"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
