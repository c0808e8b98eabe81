package token

import (
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// CustomFee is a fee charged to the transfers of a token.
type CustomFee interface {
	// ToProtobuf returns the wire message of the fee.
	ToProtobuf() *hapi.CustomFee

	// ValidateChecksums returns an error if an identifier of the fee has a
	// checksum that does not belong to the ledger.
	ValidateChecksums(id ledger.ID) error
}

// FeeCollector is the part common to every custom fee: the account that
// collects the fee, and whether every collector of the token is exempt from
// the fee.
type FeeCollector struct {
	FeeCollectorAccountID  *entity.AccountID
	AllCollectorsAreExempt bool
}

func (c FeeCollector) toProtobuf() *hapi.CustomFee {
	pb := &hapi.CustomFee{AllCollectorsAreExempt: c.AllCollectorsAreExempt}

	if c.FeeCollectorAccountID != nil {
		pb.FeeCollectorAccountID = c.FeeCollectorAccountID.ToProtobuf()
	}

	return pb
}

func (c FeeCollector) validateChecksums(id ledger.ID) error {
	if c.FeeCollectorAccountID == nil {
		return nil
	}

	err := c.FeeCollectorAccountID.ValidateChecksum(id)
	if err != nil {
		return xerrors.Errorf("fee collector account id: %w", err)
	}

	return nil
}

func feeCollectorFromProtobuf(pb *hapi.CustomFee) FeeCollector {
	c := FeeCollector{AllCollectorsAreExempt: pb.AllCollectorsAreExempt}

	if pb.FeeCollectorAccountID != nil {
		id := entity.AccountIDFromProtobuf(pb.FeeCollectorAccountID)
		c.FeeCollectorAccountID = &id
	}

	return c
}

// FixedFee is a fixed amount of hbars, or of units of the denominating token
// when it is set.
//
// - implements token.CustomFee
type FixedFee struct {
	FeeCollector

	Amount              int64
	DenominatingTokenID *entity.TokenID
}

func (f FixedFee) fixedToProtobuf() *hapi.FixedFee {
	pb := &hapi.FixedFee{Amount: f.Amount}

	if f.DenominatingTokenID != nil {
		pb.DenominatingTokenID = f.DenominatingTokenID.ToProtobuf()
	}

	return pb
}

// ToProtobuf implements token.CustomFee.
func (f FixedFee) ToProtobuf() *hapi.CustomFee {
	pb := f.FeeCollector.toProtobuf()
	pb.Fee = &hapi.CustomFee_FixedFee{FixedFee: f.fixedToProtobuf()}

	return pb
}

// ValidateChecksums implements token.CustomFee. It validates the fee
// collector and the denominating token.
func (f FixedFee) ValidateChecksums(id ledger.ID) error {
	err := f.FeeCollector.validateChecksums(id)
	if err != nil {
		return err
	}

	if f.DenominatingTokenID != nil {
		err = f.DenominatingTokenID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("denominating token id: %w", err)
		}
	}

	return nil
}

func fixedFeeFromProtobuf(pb *hapi.FixedFee) FixedFee {
	f := FixedFee{}

	if pb == nil {
		return f
	}

	f.Amount = pb.Amount

	if pb.DenominatingTokenID != nil {
		id := entity.TokenIDFromProtobuf(pb.DenominatingTokenID)
		f.DenominatingTokenID = &id
	}

	return f
}

// FractionalFee is a fraction of the transferred units, bounded by a minimum
// and a maximum amount. A maximum of zero means no maximum.
//
// - implements token.CustomFee
type FractionalFee struct {
	FeeCollector

	Numerator     int64
	Denominator   int64
	MinimumAmount int64
	MaximumAmount int64
	// NetOfTransfers charges the fee to the sender on top of the transferred
	// units, instead of deducting it from the units received.
	NetOfTransfers bool
}

// ToProtobuf implements token.CustomFee.
func (f FractionalFee) ToProtobuf() *hapi.CustomFee {
	pb := f.FeeCollector.toProtobuf()
	pb.Fee = &hapi.CustomFee_FractionalFee{FractionalFee: &hapi.FractionalFee{
		FractionalAmount: &hapi.Fraction{Numerator: f.Numerator, Denominator: f.Denominator},
		MinimumAmount:    f.MinimumAmount,
		MaximumAmount:    f.MaximumAmount,
		NetOfTransfers:   f.NetOfTransfers,
	}}

	return pb
}

// ValidateChecksums implements token.CustomFee.
func (f FractionalFee) ValidateChecksums(id ledger.ID) error {
	return f.FeeCollector.validateChecksums(id)
}

// RoyaltyFee is a fraction of the value exchanged for a non-fungible token,
// with a fallback fee charged when nothing is exchanged.
//
// - implements token.CustomFee
type RoyaltyFee struct {
	FeeCollector

	Numerator   int64
	Denominator int64
	// FallbackFee is the fee charged when no value is exchanged. Its fee
	// collector is ignored.
	FallbackFee *FixedFee
}

// ToProtobuf implements token.CustomFee.
func (f RoyaltyFee) ToProtobuf() *hapi.CustomFee {
	royalty := &hapi.RoyaltyFee{
		ExchangeValueFraction: &hapi.Fraction{Numerator: f.Numerator, Denominator: f.Denominator},
	}

	if f.FallbackFee != nil {
		royalty.FallbackFee = f.FallbackFee.fixedToProtobuf()
	}

	pb := f.FeeCollector.toProtobuf()
	pb.Fee = &hapi.CustomFee_RoyaltyFee{RoyaltyFee: royalty}

	return pb
}

// ValidateChecksums implements token.CustomFee. It validates the fee
// collector and the fallback fee.
func (f RoyaltyFee) ValidateChecksums(id ledger.ID) error {
	err := f.FeeCollector.validateChecksums(id)
	if err != nil {
		return err
	}

	if f.FallbackFee != nil {
		err = f.FallbackFee.ValidateChecksums(id)
		if err != nil {
			return xerrors.Errorf("fallback fee: %w", err)
		}
	}

	return nil
}

// CustomFeeFromProtobuf returns the custom fee of the wire message.
func CustomFeeFromProtobuf(pb *hapi.CustomFee) (CustomFee, error) {
	if pb == nil {
		return nil, xerrors.New("empty custom fee")
	}

	collector := feeCollectorFromProtobuf(pb)

	switch fee := pb.Fee.(type) {
	case *hapi.CustomFee_FixedFee:
		f := fixedFeeFromProtobuf(fee.FixedFee)
		f.FeeCollector = collector

		return f, nil
	case *hapi.CustomFee_FractionalFee:
		f := FractionalFee{FeeCollector: collector}

		if fee.FractionalFee != nil {
			f.Numerator, f.Denominator = fractionFromProtobuf(fee.FractionalFee.FractionalAmount)
			f.MinimumAmount = fee.FractionalFee.MinimumAmount
			f.MaximumAmount = fee.FractionalFee.MaximumAmount
			f.NetOfTransfers = fee.FractionalFee.NetOfTransfers
		}

		return f, nil
	case *hapi.CustomFee_RoyaltyFee:
		f := RoyaltyFee{FeeCollector: collector}

		if fee.RoyaltyFee != nil {
			f.Numerator, f.Denominator = fractionFromProtobuf(fee.RoyaltyFee.ExchangeValueFraction)

			if fee.RoyaltyFee.FallbackFee != nil {
				fallback := fixedFeeFromProtobuf(fee.RoyaltyFee.FallbackFee)
				f.FallbackFee = &fallback
			}
		}

		return f, nil
	default:
		return nil, xerrors.Errorf("unsupported custom fee of type '%T'", fee)
	}
}

func fractionFromProtobuf(pb *hapi.Fraction) (int64, int64) {
	if pb == nil {
		return 0, 0
	}

	return pb.Numerator, pb.Denominator
}
