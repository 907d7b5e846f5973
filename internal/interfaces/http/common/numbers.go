package common

import (
	"strconv"
	"strings"
)

// MaxRequestBody limits JSON request bodies for all API endpoints.
const MaxRequestBody = 1 << 20

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}
