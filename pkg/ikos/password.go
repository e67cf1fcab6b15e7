package ikos

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashPassword returns the SHA-256 digest of plain, base64 encoded, which is
// the form the platform expects passwords to be sent in. The server hashes
// again on its side; this only keeps the clear text off the wire.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:])
}
