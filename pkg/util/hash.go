package util

import (
	"crypto/md5"
	"encoding/hex"
)

// HashBytes returns the hex MD5 of b, used as a weak ETag for response bodies.
func HashBytes(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
