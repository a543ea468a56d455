package utils

import (
	"crypto/rand"
	"regexp"
	"strings"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 5
)

var (
	usernameCharset   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	notUsernameChars  = regexp.MustCompile(`[^a-z0-9_]`)
	minUsernameLength = 3
)

// EmailLocalPart returns everything before the first '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// GenerateUsername derives an initial username from an email address:
// the lower-cased local part with foreign characters replaced by '_',
// followed by '_' and a random five character suffix.
func GenerateUsername(email string) string {
	base := notUsernameChars.ReplaceAllString(strings.ToLower(EmailLocalPart(email)), "_")
	if base == "" {
		base = "user"
	}
	return base + "_" + RandomSuffix(suffixLength)
}

// RandomSuffix returns n characters from [a-z0-9].
func RandomSuffix(n int) string {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	out := make([]byte, n)
	for i, b := range raw {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out)
}

// IsUsernameCharset reports whether s is non-empty and made of [A-Za-z0-9_].
func IsUsernameCharset(s string) bool {
	return usernameCharset.MatchString(s)
}

func IsValidUsername(s string) bool {
	return IsUsernameCharset(s) && len(s) >= minUsernameLength
}
