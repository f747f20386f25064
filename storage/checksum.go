package storage

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Checksum returns a short BLAKE2b fingerprint of a document, used to tell
// document revisions apart in logs.
func Checksum(data []byte) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
