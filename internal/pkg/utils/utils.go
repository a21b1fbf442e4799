package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates a UUID v4 string.
func GenerateUUID() string {
	return uuid.New().String()
}

var dangerousMarkup = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^<]*(?:<[^<]*)*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)<link`),
	regexp.MustCompile(`(?i)<meta`),
}

// SanitizeText strips script blocks, inline handlers and embedding tags from
// free text typed into request forms, then trims it.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	for _, re := range dangerousMarkup {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Fingerprint returns a stable base64 SHA-256 of the joined parts.
func Fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
