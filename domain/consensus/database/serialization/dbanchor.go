package serialization

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the DbAnchor message:
//
//	message DbAnchor {
//	  bytes predecessor = 1;       // absent for the genesis link
//	  uint64 localHeight = 2;
//	  bytes localBlockHash = 3;
//	  repeated bytes team = 4;
//	  bytes externalTxId = 5;
//	  uint64 externalHeight = 6;
//	}
const (
	dbAnchorPredecessorField    protowire.Number = 1
	dbAnchorLocalHeightField    protowire.Number = 2
	dbAnchorLocalBlockHashField protowire.Number = 3
	dbAnchorTeamField           protowire.Number = 4
	dbAnchorExternalTxIDField   protowire.Number = 5
	dbAnchorExternalHeightField protowire.Number = 6
)

// DbAnchor is the persisted form of an anchor.
type DbAnchor struct {
	Predecessor    []byte
	LocalHeight    uint64
	LocalBlockHash []byte
	Team           [][]byte
	ExternalTxID   []byte
	ExternalHeight uint64
}

// Marshal encodes the anchor in protobuf wire format.
func (x *DbAnchor) Marshal() []byte {
	var b []byte
	if x.Predecessor != nil {
		b = protowire.AppendTag(b, dbAnchorPredecessorField, protowire.BytesType)
		b = protowire.AppendBytes(b, x.Predecessor)
	}
	b = protowire.AppendTag(b, dbAnchorLocalHeightField, protowire.VarintType)
	b = protowire.AppendVarint(b, x.LocalHeight)
	b = protowire.AppendTag(b, dbAnchorLocalBlockHashField, protowire.BytesType)
	b = protowire.AppendBytes(b, x.LocalBlockHash)
	for _, member := range x.Team {
		b = protowire.AppendTag(b, dbAnchorTeamField, protowire.BytesType)
		b = protowire.AppendBytes(b, member)
	}
	b = protowire.AppendTag(b, dbAnchorExternalTxIDField, protowire.BytesType)
	b = protowire.AppendBytes(b, x.ExternalTxID)
	b = protowire.AppendTag(b, dbAnchorExternalHeightField, protowire.VarintType)
	b = protowire.AppendVarint(b, x.ExternalHeight)
	return b
}

// Unmarshal decodes b into x. Unknown fields are skipped.
func (x *DbAnchor) Unmarshal(b []byte) error {
	*x = DbAnchor{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "failed to parse DbAnchor tag")
		}
		b = b[n:]

		switch {
		case num == dbAnchorPredecessorField && typ == protowire.BytesType:
			x.Predecessor, n = consumeBytesCopy(b)
		case num == dbAnchorLocalHeightField && typ == protowire.VarintType:
			x.LocalHeight, n = protowire.ConsumeVarint(b)
		case num == dbAnchorLocalBlockHashField && typ == protowire.BytesType:
			x.LocalBlockHash, n = consumeBytesCopy(b)
		case num == dbAnchorTeamField && typ == protowire.BytesType:
			var member []byte
			member, n = consumeBytesCopy(b)
			x.Team = append(x.Team, member)
		case num == dbAnchorExternalTxIDField && typ == protowire.BytesType:
			x.ExternalTxID, n = consumeBytesCopy(b)
		case num == dbAnchorExternalHeightField && typ == protowire.VarintType:
			x.ExternalHeight, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "failed to parse DbAnchor field %d", num)
		}
		b = b[n:]
	}
	return nil
}

func consumeBytesCopy(b []byte) ([]byte, int) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, n
	}
	return append([]byte{}, v...), n
}
