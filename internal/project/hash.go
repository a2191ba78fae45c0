package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит ключ кэша: H( content || salt1 || salt2 ... ).
// Порядок salts должен быть детерминированным.
func Combine(content Digest, salts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write(s)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Hex renders the digest for file names.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
