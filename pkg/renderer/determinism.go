package renderer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func normalizeLFString(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}

func normalizeLFBytes(input []byte) []byte {
	return []byte(normalizeLFString(string(input)))
}

// Digest returns the hex sha256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
