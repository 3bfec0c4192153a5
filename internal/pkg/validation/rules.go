package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern is the accepted e-mail address format
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// NPMPattern is the student number format: 8 to 12 digits
	NPMPattern = `^\d{8,12}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	NPM   *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	NPM:   regexp.MustCompile(NPMPattern),
}

// IsValidEmail reports whether the value is an acceptable e-mail address
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidNPM reports whether the value is an acceptable student number
func IsValidNPM(value string) bool {
	return CompiledPatterns.NPM.MatchString(value)
}

// IsValidPassword reports whether the value meets the password policy
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}
