// Package entity defines the identifiers of the entities of a ledger:
// accounts, contracts, files, tokens, topics and non-fungible tokens.
//
// Identifiers are written "shard.realm.num", optionally followed by the
// checksum of the address for a given ledger, as in "0.0.123-vfmkw". The
// checksum is kept when the identifier is parsed so that it can be validated
// against the ledger before a request is submitted.
package entity

import (
	"fmt"
	"strconv"
	"strings"

	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// address is the textual form of an entity without its checksum.
func address(shard, realm, num uint64) string {
	return fmt.Sprintf("%d.%d.%d", shard, realm, num)
}

func withChecksum(addr, checksum string) string {
	if checksum == "" {
		return addr
	}

	return addr + "-" + checksum
}

// split parses "shard.realm.last" with an optional checksum suffix and returns
// the last part untouched.
func split(text string) (shard, realm uint64, last, checksum string, err error) {
	parts := strings.SplitN(text, ".", 3)
	if len(parts) != 3 {
		return 0, 0, "", "", xerrors.Errorf("expected <shard>.<realm>.<num> but got '%s'", text)
	}

	shard, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, "", "", xerrors.Errorf("invalid shard: %v", err)
	}

	realm, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, "", "", xerrors.Errorf("invalid realm: %v", err)
	}

	last = parts[2]

	index := strings.IndexByte(last, '-')
	if index >= 0 {
		checksum = last[index+1:]
		last = last[:index]

		if !isChecksum(checksum) {
			return 0, 0, "", "", xerrors.Errorf("invalid checksum '%s'", checksum)
		}
	}

	return shard, realm, last, checksum, nil
}

func isChecksum(text string) bool {
	if len(text) != 5 {
		return false
	}

	for _, c := range text {
		if c < 'a' || c > 'z' {
			return false
		}
	}

	return true
}

// parseNum parses the identifier of an entity that only has the numeric form.
func parseNum(text string) (shard, realm, num uint64, checksum string, err error) {
	shard, realm, last, checksum, err := split(text)
	if err != nil {
		return 0, 0, 0, "", err
	}

	num, err = strconv.ParseUint(last, 10, 64)
	if err != nil {
		return 0, 0, 0, "", xerrors.Errorf("invalid num: %v", err)
	}

	return shard, realm, num, checksum, nil
}

// validate checks the checksum of the address when there is one.
func validate(id ledger.ID, shard, realm, num uint64, checksum string) error {
	if checksum == "" {
		return nil
	}

	return id.Validate(address(shard, realm, num), checksum)
}
