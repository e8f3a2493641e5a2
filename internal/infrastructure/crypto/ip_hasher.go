package crypto

import (
	"encoding/hex"
	"errors"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// IPHasher one-way hashes client addresses so they can be stored and compared
// without ever persisting the raw IP.
type IPHasher interface {
	HashIP(ip string) string
}

// Blake2bIPHasher computes a keyed BLAKE2b-256 of the canonical IP text.
type Blake2bIPHasher struct {
	key []byte
}

// NewBlake2bIPHasher creates a hasher. The key must be at most 64 bytes; an
// empty key is accepted for local development.
func NewBlake2bIPHasher(key string) (*Blake2bIPHasher, error) {
	if len(key) > blake2b.Size {
		return nil, errors.New("ip hash key must be at most 64 bytes")
	}
	return &Blake2bIPHasher{key: []byte(key)}, nil
}

// HashIP returns a 64-char lowercase hex digest. Equivalent spellings of the
// same address (e.g. IPv4-mapped IPv6) hash identically.
func (h *Blake2bIPHasher) HashIP(ip string) string {
	canonical := strings.TrimSpace(ip)
	if parsed := net.ParseIP(canonical); parsed != nil {
		if v4 := parsed.To4(); v4 != nil {
			parsed = v4
		}
		canonical = parsed.String()
	}

	mac, err := blake2b.New256(h.key)
	if err != nil {
		// key length is checked in the constructor
		panic(err)
	}
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
