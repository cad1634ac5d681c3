package logger

import (
	"regexp"
	"strings"
)

// Sensitive field patterns to filter from logs
var (
	passwordPattern = regexp.MustCompile(`(?i)(password|passwd|pwd)[\s:=]+[^\s]+`)
	basicPattern    = regexp.MustCompile(`(?i)(authorization:?\s*basic)\s+[^\s]+`)
	apiKeyPattern   = regexp.MustCompile(`(?i)(x-api-key|api[_-]?key|apikey)[\s:=]+[^\s]+`)
	secretPattern   = regexp.MustCompile(`(?i)(secret|token)[\s:=]+[^\s]+`)
)

const (
	redactedPlaceholder = "[REDACTED]"
	maskVisibleChars    = 2
)

var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"authorization",
	"api_key", "apikey", "api-key",
	"secret", "token",
	"password_hash", "passwordhash",
}

// SanitizeLogMessage removes sensitive information from log messages
func SanitizeLogMessage(message string) string {
	message = passwordPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = basicPattern.ReplaceAllString(message, "${1} "+redactedPlaceholder)
	message = apiKeyPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	return message
}

// IsSensitiveKey reports whether a field name is likely to carry a secret
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitiveKey := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitiveKey) {
			return true
		}
	}
	return false
}

// SanitizeMap removes sensitive keys from a map
func SanitizeMap(data map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(data))
	for k, v := range data {
		if IsSensitiveKey(k) {
			sanitized[k] = redactedPlaceholder
			continue
		}
		if s, ok := v.(string); ok {
			sanitized[k] = SanitizeLogMessage(s)
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}

// MaskSecret keeps a short prefix of a secret so log lines can be correlated
// without exposing the value.
func MaskSecret(secret string) string {
	if len(secret) <= maskVisibleChars {
		return strings.Repeat("*", len(secret))
	}
	return secret[:maskVisibleChars] + strings.Repeat("*", len(secret)-maskVisibleChars)
}
