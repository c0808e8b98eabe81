// Package token implements the transaction that creates a token and the query
// of the information of a non-fungible token.
package token

import (
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"golang.org/x/xerrors"
)

const (
	// CreateType is the type of the serialized token creation.
	CreateType = "tokenCreate"

	// NftInfoQueryType is the type of the serialized query of the
	// information of a non-fungible token.
	NftInfoQueryType = "tokenNftInfo"
)

var (
	createFormats       = registry.New()
	nftInfoQueryFormats = registry.New()
	nftInfoFormats      = registry.New()
)

// RegisterCreateFormat registers the engine for the provided format.
func RegisterCreateFormat(f serde.Format, e serde.FormatEngine) {
	createFormats.Register(f, e)
}

// RegisterNftInfoQueryFormat registers the engine for the provided format.
func RegisterNftInfoQueryFormat(f serde.Format, e serde.FormatEngine) {
	nftInfoQueryFormats.Register(f, e)
}

// RegisterNftInfoFormat registers the engine for the provided format.
func RegisterNftInfoFormat(f serde.Format, e serde.FormatEngine) {
	nftInfoFormats.Register(f, e)
}

// Type is the kind of units of a token.
type Type int

const (
	// FungibleCommon is the type of tokens whose units are interchangeable.
	FungibleCommon Type = iota
	// NonFungibleUnique is the type of tokens whose units are unique and
	// identified by a serial number.
	NonFungibleUnique
)

var typeNames = map[Type]string{
	FungibleCommon:    "fungibleCommon",
	NonFungibleUnique: "nonFungibleUnique",
}

// TypeFromProtobuf returns the type of the wire enum. Unknown values are
// FungibleCommon.
func TypeFromProtobuf(pb hapi.TokenType) Type {
	if pb == hapi.TokenType_NON_FUNGIBLE_UNIQUE {
		return NonFungibleUnique
	}

	return FungibleCommon
}

// ToProtobuf returns the wire enum of the type.
func (t Type) ToProtobuf() hapi.TokenType {
	if t == NonFungibleUnique {
		return hapi.TokenType_NON_FUNGIBLE_UNIQUE
	}

	return hapi.TokenType_FUNGIBLE_COMMON
}

// String implements fmt.Stringer.
func (t Type) String() string {
	name, found := typeNames[t]
	if !found {
		return typeNames[FungibleCommon]
	}

	return name
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	for typ, name := range typeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}

	return xerrors.Errorf("unknown token type '%s'", text)
}

// SupplyType tells whether the supply of a token has a maximum.
type SupplyType int

const (
	// Infinite is the supply type without maximum.
	Infinite SupplyType = iota
	// Finite is the supply type bounded by the max supply.
	Finite
)

var supplyTypeNames = map[SupplyType]string{
	Infinite: "infinite",
	Finite:   "finite",
}

// SupplyTypeFromProtobuf returns the supply type of the wire enum. Unknown
// values are Infinite.
func SupplyTypeFromProtobuf(pb hapi.TokenSupplyType) SupplyType {
	if pb == hapi.TokenSupplyType_FINITE {
		return Finite
	}

	return Infinite
}

// ToProtobuf returns the wire enum of the supply type.
func (t SupplyType) ToProtobuf() hapi.TokenSupplyType {
	if t == Finite {
		return hapi.TokenSupplyType_FINITE
	}

	return hapi.TokenSupplyType_INFINITE
}

// String implements fmt.Stringer.
func (t SupplyType) String() string {
	name, found := supplyTypeNames[t]
	if !found {
		return supplyTypeNames[Infinite]
	}

	return name
}

// MarshalText implements encoding.TextMarshaler.
func (t SupplyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SupplyType) UnmarshalText(text []byte) error {
	for typ, name := range supplyTypeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}

	return xerrors.Errorf("unknown supply type '%s'", text)
}
