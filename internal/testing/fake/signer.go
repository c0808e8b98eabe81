package fake

import "go.dedis.ch/hedera/hapi"

// Signer is a fake signer that produces an Ed25519 signature pair made of the
// prefix and a constant signature.
type Signer struct {
	Prefix []byte
	Calls  *Call
	err    error
}

// NewSigner returns a fake signer with the public key prefix.
func NewSigner(prefix []byte) Signer {
	return Signer{Prefix: prefix, Calls: &Call{}}
}

// NewBadSigner returns a fake signer that always returns an error.
func NewBadSigner() Signer {
	return Signer{Calls: &Call{}, err: fakeErr}
}

// Sign returns the signature pair of the message.
func (s Signer) Sign(message []byte) (*hapi.SignaturePair, error) {
	if s.Calls != nil {
		s.Calls.Add(message)
	}

	if s.err != nil {
		return nil, s.err
	}

	pair := &hapi.SignaturePair{
		PubKeyPrefix: s.Prefix,
		Signature:    &hapi.SignaturePair_Ed25519{Ed25519: []byte("signature")},
	}

	return pair, nil
}
