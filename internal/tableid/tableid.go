package tableid

import (
	"crypto/rand"
	"fmt"
)

// Crockford's base32 alphabet, lowercased
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// idBytes of entropy yield 16 base32 characters.
const idBytes = 10

// New returns a short random table identifier, e.g. "b7qk2m9p0xvw3ahz".
// IDs are 16 characters of Crockford base32 over 80 bits of entropy,
// which is plenty for distinguishing concurrent sessions.
func New() string {
	var buf [idBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	out := make([]byte, 0, idBytes*8/5)
	var acc, bits uint
	for _, b := range buf {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, alphabet[(acc>>bits)&0x1f])
		}
	}
	return string(out)
}

// Validate checks that an ID has the expected shape
func Validate(id string) error {
	if len(id) != idBytes*8/5 {
		return fmt.Errorf("table ID must be %d characters, got %d", idBytes*8/5, len(id))
	}
	for i := 0; i < len(id); i++ {
		valid := false
		for j := 0; j < len(alphabet); j++ {
			if id[i] == alphabet[j] {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %q at position %d", string(id[i]), i)
		}
	}
	return nil
}
