package util

import (
	"crypto/sha1" //nolint:gosec // Cloudinary's default request signature is SHA-1.
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// HexDigest hashes payload with the named algorithm ("sha1" or "sha256") and
// returns the hex-encoded digest.
func HexDigest(algorithm, payload string) (string, error) {
	var h hash.Hash
	switch strings.ToLower(algorithm) {
	case "", "sha1":
		h = sha1.New() //nolint:gosec
	case "sha256":
		h = sha256.New()
	default:
		return "", fmt.Errorf("unsupported digest algorithm: %s", algorithm)
	}
	_, _ = h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil)), nil
}
