package ingest

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the hex-encoded sha256 digest of the resume bytes.
// The digest is both the blob storage address and a dedup signal: the same
// file uploaded twice collapses to one identity even when the extractor finds
// no email or phone in it.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
