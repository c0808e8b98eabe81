package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// validStartOffset is subtracted from the current time so that a new
// transaction is already valid when it reaches a node with a clock late.
const validStartOffset = 10 * time.Second

const scheduledSuffix = "?scheduled"

// ID is the identifier of a transaction: the account that pays for it and the
// time from which it is valid.
type ID struct {
	AccountID  entity.AccountID
	ValidStart time.Time
	Scheduled  bool
	Nonce      int32
}

// NewID returns a new identifier paid by the account that is valid from now.
func NewID(payer entity.AccountID) ID {
	return ID{
		AccountID:  payer,
		ValidStart: time.Now().Add(-validStartOffset).UTC(),
	}
}

// ParseID parses "account@seconds.nanos" optionally followed by "?scheduled"
// and "/nonce".
func ParseID(text string) (ID, error) {
	index := strings.IndexByte(text, '@')
	if index < 0 {
		return ID{}, xerrors.Errorf("invalid transaction id: expected "+
			"<account>@<seconds>.<nanos> but got '%s'", text)
	}

	account, rest := text[:index], text[index+1:]

	accountID, err := entity.ParseAccountID(account)
	if err != nil {
		return ID{}, xerrors.Errorf("invalid transaction id: %v", err)
	}

	id := ID{AccountID: accountID}

	index = strings.IndexByte(rest, '/')
	if index >= 0 {
		nonce, err := strconv.ParseInt(rest[index+1:], 10, 32)
		if err != nil {
			return ID{}, xerrors.Errorf("invalid transaction id: invalid nonce: %v", err)
		}

		id.Nonce = int32(nonce)
		rest = rest[:index]
	}

	if strings.HasSuffix(rest, scheduledSuffix) {
		id.Scheduled = true
		rest = strings.TrimSuffix(rest, scheduledSuffix)
	}

	secs, nanos, found := strings.Cut(rest, ".")
	if !found {
		return ID{}, xerrors.Errorf("invalid transaction id: expected "+
			"<seconds>.<nanos> but got '%s'", rest)
	}

	s, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return ID{}, xerrors.Errorf("invalid transaction id: invalid seconds: %v", err)
	}

	ns, err := strconv.ParseInt(nanos, 10, 32)
	if err != nil {
		return ID{}, xerrors.Errorf("invalid transaction id: invalid nanos: %v", err)
	}

	id.ValidStart = time.Unix(s, ns).UTC()

	return id, nil
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.format(id.AccountID.String())
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum of the payer computed for the ledger.
func (id ID) ToStringWithChecksum(l ledger.ID) string {
	return id.format(id.AccountID.ToStringWithChecksum(l))
}

func (id ID) format(account string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s@%d.%09d", account, id.ValidStart.Unix(), id.ValidStart.Nanosecond())

	if id.Scheduled {
		b.WriteString(scheduledSuffix)
	}

	if id.Nonce != 0 {
		fmt.Fprintf(&b, "/%d", id.Nonce)
	}

	return b.String()
}

// ValidateChecksum validates the checksum of the payer.
func (id ID) ValidateChecksum(l ledger.ID) error {
	return id.AccountID.ValidateChecksum(l)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id ID) ToProtobuf() *hapi.TransactionID {
	return &hapi.TransactionID{
		TransactionValidStart: hapi.NewTimestamp(id.ValidStart),
		AccountID:             id.AccountID.ToProtobuf(),
		Scheduled:             id.Scheduled,
		Nonce:                 id.Nonce,
	}
}

// IDFromProtobuf returns the identifier of the wire message.
func IDFromProtobuf(pb *hapi.TransactionID) ID {
	if pb == nil {
		return ID{}
	}

	return ID{
		AccountID:  entity.AccountIDFromProtobuf(pb.AccountID),
		ValidStart: pb.TransactionValidStart.AsTime(),
		Scheduled:  pb.Scheduled,
		Nonce:      pb.Nonce,
	}
}
