package consensushashing

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"google.golang.org/protobuf/encoding/protowire"
)

// AuthVoteHash returns the hash a quorum member signs when attesting a block.
// It commits to everything but the signer, so all matching votes share it.
func AuthVoteHash(vote *externalapi.AuthVote) *externalapi.DomainHash {
	hash := chainhash.DoubleHashH(serializeAuthVote(vote))
	return externalapi.NewDomainHashFromByteArray((*[externalapi.DomainHashSize]byte)(&hash))
}

func serializeAuthVote(vote *externalapi.AuthVote) []byte {
	var b []byte
	vote.Link.Predecessor().WhenSome(func(id externalapi.ExternalTxID) {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, id[:])
	})
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, vote.LocalHeight)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, vote.LocalBlockHash.ByteSlice())
	for _, member := range vote.Team {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, member[:])
	}
	return b
}
