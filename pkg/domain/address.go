// Package domain defines the shared identifier types used across features.
//
// Every persisted record is keyed by a 32-byte opaque Address. Addresses for
// derived records (memberships, nominations, markets, positions...) are
// computed deterministically from their parent record and a discriminating
// seed, so callers and the host environment agree on record locations without
// a directory service.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	dErrors "sovereign/pkg/domain-errors"
)

// AddressLen is the fixed byte length of every record address and identity key.
const AddressLen = 32

// Address is an opaque 32-byte record key.
type Address [AddressLen]byte

// ParseAddress parses a 64-character hex string into an Address.
// The zero address is rejected: it is reserved as the "unset" marker.
func ParseAddress(s string) (Address, error) {
	var a Address
	if len(s) != AddressLen*2 {
		return a, dErrors.New(dErrors.CodeValidation, "address must be 64 hex characters")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, dErrors.Wrap(err, dErrors.CodeValidation, "address is not valid hex")
	}
	copy(a[:], raw)
	if a.IsZero() {
		return a, dErrors.New(dErrors.CodeValidation, "zero address is not allowed")
	}
	return a, nil
}

// MustAddress parses a hex address and panics on failure. Test helper.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(fmt.Sprintf("domain: invalid address %q: %v", s, err))
	}
	return a
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero reserved value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler so addresses serialize as hex
// in JSON payloads.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Derive computes a deterministic child address from seed parts. Each part is
// length-prefixed before hashing so ("ab","c") and ("a","bc") cannot collide.
func Derive(seeds ...[]byte) Address {
	h := sha256.New()
	for _, seed := range seeds {
		var n [2]byte
		n[0] = byte(len(seed) >> 8)
		n[1] = byte(len(seed))
		h.Write(n[:])
		h.Write(seed)
	}
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}
