package utils

import (
	"regexp"
	"strings"
)

// ValidationRules contains common validation patterns shared by the HTTP
// surface's request parsing.
var ValidationRules = struct {
	// EthereumAddress matches valid Ethereum addresses
	EthereumAddress *regexp.Regexp
}{
	EthereumAddress: regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`),
}

// ValidateEthereumAddress validates if a string is a valid Ethereum address
func ValidateEthereumAddress(address string) bool {
	if address == "" {
		return false
	}
	return ValidationRules.EthereumAddress.MatchString(address)
}

// SanitizeInput removes null bytes and surrounding whitespace, and blanks
// out strings containing obvious script-injection markers. Used on request
// inputs that might get echoed back in an error message.
func SanitizeInput(input string) string {
	cleaned := strings.ReplaceAll(input, "\x00", "")
	cleaned = strings.TrimSpace(cleaned)

	dangerous := []string{
		"<script", "</script>", "javascript:", "vbscript:",
		"onload=", "onerror=", "onclick=",
	}

	lowerInput := strings.ToLower(cleaned)
	for _, pattern := range dangerous {
		if strings.Contains(lowerInput, pattern) {
			return ""
		}
	}

	return cleaned
}
