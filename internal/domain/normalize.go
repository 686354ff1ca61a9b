package domain

import (
	"strings"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeIdentifier trims and lower-cases an email-shaped identifier.
func NormalizeIdentifier(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// MaxIdentifierLength bounds identifiers (RFC 5321 path limit).
const MaxIdentifierLength = 254

// ValidateIdentifier checks that id (already normalized) looks like an
// email address. When requiredDomain is non-empty the address must belong
// to it.
func ValidateIdentifier(id, requiredDomain string) error {
	if id == "" {
		return NewValidationError("identifier", "required")
	}
	if len(id) > MaxIdentifierLength {
		return NewValidationError("identifier", "too long")
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return NewValidationError("identifier", "must not contain whitespace")
	}

	at := strings.LastIndex(id, "@")
	if at <= 0 || at != strings.Index(id, "@") {
		return NewValidationError("identifier", "must be an email address")
	}
	domainPart := id[at+1:]
	if domainPart == "" || !strings.Contains(domainPart, ".") ||
		strings.HasPrefix(domainPart, ".") || strings.HasSuffix(domainPart, ".") {
		return NewValidationError("identifier", "must be an email address")
	}

	if requiredDomain != "" && domainPart != strings.ToLower(requiredDomain) {
		return NewValidationError("identifier", "must be a @"+strings.ToLower(requiredDomain)+" address")
	}
	return nil
}
