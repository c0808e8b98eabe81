package ledger

import (
	"fmt"
)

const (
	checksumLength = 5

	p3 = 26 * 26 * 26
	p5 = 26 * 26 * 26 * 26 * 26
	m  = 1_000_003
	w  = 31
)

// ChecksumError is returned when the checksum of an address does not match
// the ledger.
type ChecksumError struct {
	Address  string
	Expected string
	Actual   string
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected '%s' but got '%s'",
		e.Address, e.Expected, e.Actual)
}

// Checksum returns the checksum of the address for the ledger. The address is
// the textual form "shard.realm.num" of an entity.
func (id ID) Checksum(address string) string {
	digits := make([]int, len(address))
	for i, c := range address {
		if c == '.' {
			digits[i] = 10
		} else {
			digits[i] = int(c - '0')
		}
	}

	var s0, s1, s int
	for i, d := range digits {
		s = (w*s + d) % p3

		if i%2 == 0 {
			s0 = (s0 + d) % 11
		} else {
			s1 = (s1 + d) % 11
		}
	}

	var sh int
	for _, b := range append(append([]byte{}, id...), 0, 0, 0, 0, 0, 0) {
		sh = (w*sh + int(b)) % p5
	}

	c := ((((len(address)%5)*11+s0)*11+s1)*p3 + s + sh) % p5
	c = (c * m) % p5

	letters := make([]byte, checksumLength)
	for i := checksumLength - 1; i >= 0; i-- {
		letters[i] = byte('a' + c%26)
		c /= 26
	}

	return string(letters)
}

// Validate returns nil if the checksum belongs to the address for the ledger,
// otherwise a *ChecksumError.
func (id ID) Validate(address, checksum string) error {
	expected := id.Checksum(address)
	if expected != checksum {
		return &ChecksumError{
			Address:  address,
			Expected: expected,
			Actual:   checksum,
		}
	}

	return nil
}
