package crypto

import (
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

// HashAlgorithm is the identifier of a hash algorithm.
type HashAlgorithm int

const (
	// Sha384 is the algorithm of the transaction hashes.
	Sha384 HashAlgorithm = iota
	// Keccak256 is the algorithm used by the EVM and by secp256k1 signatures.
	Keccak256
)

// HashFactory is an interface to produce a hash digest.
type HashFactory interface {
	New() hash.Hash
}

// hashFactory is a hash factory that is using SHA algorithms.
//
// - implements crypto.HashFactory
type hashFactory struct {
	hashType HashAlgorithm
}

// NewHashFactory returns a new instance of the factory.
func NewHashFactory(a HashAlgorithm) HashFactory {
	return hashFactory{a}
}

// New implements crypto.HashFactory. It returns a new Hash instance.
func (f hashFactory) New() hash.Hash {
	switch f.hashType {
	case Sha384:
		return sha512.New384()
	case Keccak256:
		return sha3.NewLegacyKeccak256()
	default:
		panic("unknown hash type")
	}
}
