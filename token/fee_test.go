package token

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
)

func TestFixedFee_ToProtobuf(t *testing.T) {
	fee := FixedFee{
		FeeCollector: FeeCollector{
			FeeCollectorAccountID:  &entity.AccountID{Num: 5},
			AllCollectorsAreExempt: true,
		},
		Amount:              10,
		DenominatingTokenID: &entity.TokenID{Num: 9},
	}

	pb := fee.ToProtobuf()
	require.True(t, pb.AllCollectorsAreExempt)
	require.Equal(t, int64(5), pb.FeeCollectorAccountID.GetAccountNum())

	fixed, ok := pb.Fee.(*hapi.CustomFee_FixedFee)
	require.True(t, ok)
	require.Equal(t, int64(10), fixed.FixedFee.Amount)
	require.Equal(t, entity.TokenID{Num: 9}, entity.TokenIDFromProtobuf(fixed.FixedFee.DenominatingTokenID))

	pb = FixedFee{Amount: 1}.ToProtobuf()
	require.Nil(t, pb.FeeCollectorAccountID)
	require.Nil(t, pb.Fee.(*hapi.CustomFee_FixedFee).FixedFee.DenominatingTokenID)
}

func TestCustomFeeFromProtobuf(t *testing.T) {
	collector := FeeCollector{FeeCollectorAccountID: &entity.AccountID{Num: 5}}

	fees := []CustomFee{
		FixedFee{FeeCollector: collector, Amount: 10, DenominatingTokenID: &entity.TokenID{Num: 9}},
		FractionalFee{
			FeeCollector:   FeeCollector{AllCollectorsAreExempt: true},
			Numerator:      1,
			Denominator:    20,
			MinimumAmount:  2,
			MaximumAmount:  100,
			NetOfTransfers: true,
		},
		RoyaltyFee{
			FeeCollector: collector,
			Numerator:    1,
			Denominator:  10,
			FallbackFee:  &FixedFee{Amount: 3},
		},
		RoyaltyFee{Numerator: 1, Denominator: 2},
	}

	for _, fee := range fees {
		pb := fee.ToProtobuf()

		// Through the wire to check the encoding of each kind.
		decodedpb := new(hapi.CustomFee)
		require.NoError(t, hapi.Unmarshal(hapi.Marshal(pb), decodedpb))

		decoded, err := CustomFeeFromProtobuf(decodedpb)
		require.NoError(t, err)
		require.Equal(t, fee, decoded)
	}

	_, err := CustomFeeFromProtobuf(nil)
	require.EqualError(t, err, "empty custom fee")

	_, err = CustomFeeFromProtobuf(&hapi.CustomFee{})
	require.EqualError(t, err, "unsupported custom fee of type '<nil>'")

	fee, err := CustomFeeFromProtobuf(&hapi.CustomFee{Fee: &hapi.CustomFee_FractionalFee{}})
	require.NoError(t, err)
	require.Equal(t, FractionalFee{}, fee)
}

func TestCustomFee_ValidateChecksums(t *testing.T) {
	fee := FixedFee{
		FeeCollector:        FeeCollector{FeeCollectorAccountID: &entity.AccountID{Num: 5, Checksum: "ktach"}},
		DenominatingTokenID: &entity.TokenID{Num: 9, Checksum: "sgpgx"},
	}
	require.NoError(t, fee.ValidateChecksums(ledger.Mainnet))

	err := fee.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"fee collector account id: checksum mismatch for 0.0.5: expected 'ugljq' but got 'ktach'")

	fee.FeeCollectorAccountID = nil
	err = fee.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"denominating token id: checksum mismatch for 0.0.9: expected 'buaog' but got 'sgpgx'")

	fractional := FractionalFee{
		FeeCollector: FeeCollector{FeeCollectorAccountID: &entity.AccountID{Num: 5, Checksum: "ktach"}},
	}
	require.NoError(t, fractional.ValidateChecksums(ledger.Mainnet))
	require.Error(t, fractional.ValidateChecksums(ledger.Testnet))

	royalty := RoyaltyFee{FallbackFee: &fee}
	require.NoError(t, royalty.ValidateChecksums(ledger.Mainnet))

	err = royalty.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"fallback fee: denominating token id: checksum mismatch for 0.0.9: expected 'buaog' but got 'sgpgx'")

	royalty.FeeCollectorAccountID = &entity.AccountID{Num: 5, Checksum: "ktach"}
	err = royalty.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"fee collector account id: checksum mismatch for 0.0.5: expected 'ugljq' but got 'ktach'")
}
