// Package redact strips sensitive material from strings before they reach
// logs or error responses. Errors bubbling up from the database driver or
// the auth layer can carry connection strings, tokens, or hash material
// that must never be echoed back to a client.
package redact

import "regexp"

// Placeholders substituted for matched sensitive content.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

var (
	// Database connection strings with inline credentials.
	dsnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password assignments in config dumps or query strings.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Signed JWTs are three base64url sections starting with eyJ.
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// Argon2 PHC strings embed the salt and derived key.
	phcHashRegex = regexp.MustCompile(`\$argon2(id|i|d)\$[^\s'"]+`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$]+)?`,
	)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dsnRegex, CredentialPlaceholder},
		{passwordRegex, CredentialPlaceholder},
		{jwtRegex, TokenPlaceholder},
		{phcHashRegex, CredentialPlaceholder},
		{sqlRegex, SQLPlaceholder},
		{emailRegex, EmailPlaceholder},
		{unixPathRegex, PathPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
