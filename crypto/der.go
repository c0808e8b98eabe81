package crypto

import (
	"encoding/asn1"

	"go.dedis.ch/hedera/crypto/ed25519"
	"go.dedis.ch/hedera/crypto/secp256k1"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/xerrors"
)

// parseDER parses a SubjectPublicKeyInfo. The secp256k1 curve is accepted
// either as the algorithm or as the parameter of an EC public key.
func parseDER(data []byte) (PublicKey, error) {
	input := cryptobyte.String(data)

	var spki, algo cryptobyte.String
	if !input.ReadASN1(&spki, cbasn1.SEQUENCE) || !input.Empty() {
		return PublicKey{}, xerrors.New("malformed DER sequence")
	}

	var oid asn1.ObjectIdentifier
	if !spki.ReadASN1(&algo, cbasn1.SEQUENCE) || !algo.ReadASN1ObjectIdentifier(&oid) {
		return PublicKey{}, xerrors.New("malformed DER algorithm")
	}

	if oid.Equal(secp256k1.ECPublicKeyOID) {
		var curve asn1.ObjectIdentifier
		if !algo.ReadASN1ObjectIdentifier(&curve) {
			return PublicKey{}, xerrors.New("malformed DER curve")
		}

		oid = curve
	}

	var bits asn1.BitString
	if !spki.ReadASN1BitString(&bits) || !spki.Empty() {
		return PublicKey{}, xerrors.New("malformed DER key")
	}

	switch {
	case oid.Equal(ed25519.OID):
		return ed25519PublicKey(bits.Bytes)
	case oid.Equal(secp256k1.OID):
		return secp256k1PublicKey(bits.Bytes)
	default:
		return PublicKey{}, xerrors.Errorf("unsupported algorithm %v", oid)
	}
}
