package errors

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// ValidateFilePath checks a path given on the command line before it is read.
// Absolute paths and parent references are allowed; the checks only reject
// input that can never name a file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateKeyPrefix validates a cache key namespace prefix.
// Empty prefixes are valid and disable scoping.
func ValidateKeyPrefix(prefix string) error {
	if len(prefix) > 128 {
		return New(ErrCodeInvalidConfig, "cache prefix too long (max 128 characters)")
	}
	for _, r := range prefix {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "cache prefix cannot contain whitespace or control characters")
		}
	}
	return nil
}

// ValidateAddr validates a host:port network address.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid address %q", addr)
	}
	if strings.TrimSpace(host) != host {
		return New(ErrCodeInvalidConfig, "address host cannot contain whitespace: %q", addr)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return New(ErrCodeInvalidConfig, "invalid port in address %q", addr)
	}

	return nil
}
