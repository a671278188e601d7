package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key computes a deterministic content hash over the given parts. Parts
// are length-prefixed before hashing so that ("ab","c") and ("a","bc")
// never collide.
func Key(parts ...string) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		n := len(p)
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
