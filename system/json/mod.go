package json

import (
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/system"
	"golang.org/x/xerrors"
)

func init() {
	system.RegisterUndeleteFormat(serde.FormatJSON, undeleteFormat{})
}

// UndeleteJSON is the JSON message of a system undelete.
type UndeleteJSON struct {
	Type       string             `json:"$type"`
	FileID     *entity.FileID     `json:"fileId,omitempty"`
	ContractID *entity.ContractID `json:"contractId,omitempty"`
}

// undeleteFormat is the engine to encode and decode system undeletes in JSON
// format.
//
// - implements serde.FormatEngine
type undeleteFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the undelete.
func (f undeleteFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	u, ok := msg.(*system.Undelete)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := UndeleteJSON{
		Type:       system.UndeleteType,
		FileID:     u.GetFileID(),
		ContractID: u.GetContractID(),
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the undelete of the
// data. The contract wins when both are present.
func (f undeleteFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := UndeleteJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal system undelete: %v", err)
	}

	u := system.NewUndelete()

	if m.FileID != nil {
		u.SetFileID(*m.FileID)
	}

	if m.ContractID != nil {
		u.SetContractID(*m.ContractID)
	}

	return u, nil
}
