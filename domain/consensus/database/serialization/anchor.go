package serialization

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// AnchorToDBAnchor converts Anchor to DbAnchor
func AnchorToDBAnchor(anchor *externalapi.Anchor) *DbAnchor {
	var predecessor []byte
	anchor.Link.Predecessor().WhenSome(func(id externalapi.ExternalTxID) {
		predecessor = id.ByteSlice()
	})

	team := make([][]byte, len(anchor.Team))
	for i, member := range anchor.Team {
		team[i] = append([]byte{}, member[:]...)
	}

	return &DbAnchor{
		Predecessor:    predecessor,
		LocalHeight:    anchor.LocalHeight,
		LocalBlockHash: anchor.LocalBlockHash.ByteSlice(),
		Team:           team,
		ExternalTxID:   anchor.ExternalTxID.ByteSlice(),
		ExternalHeight: anchor.ExternalHeight,
	}
}

// DBAnchorToAnchor converts DbAnchor to Anchor
func DBAnchorToAnchor(dbAnchor *DbAnchor) (*externalapi.Anchor, error) {
	link := externalapi.GenesisLink()
	if dbAnchor.Predecessor != nil {
		predecessor, err := externalapi.NewExternalTxIDFromByteSlice(dbAnchor.Predecessor)
		if err != nil {
			return nil, errors.Wrap(err, "invalid anchor predecessor")
		}
		link = externalapi.LinkedTo(predecessor)
	}

	localBlockHash, err := externalapi.NewDomainHashFromByteSlice(dbAnchor.LocalBlockHash)
	if err != nil {
		return nil, errors.Wrap(err, "invalid anchor local block hash")
	}

	team := make([]externalapi.TeamMemberID, len(dbAnchor.Team))
	for i, member := range dbAnchor.Team {
		if len(member) != externalapi.TeamMemberIDSize {
			return nil, errors.Errorf("invalid team member id size. Want: %d, got: %d",
				externalapi.TeamMemberIDSize, len(member))
		}
		copy(team[i][:], member)
	}

	externalTxID, err := externalapi.NewExternalTxIDFromByteSlice(dbAnchor.ExternalTxID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid anchor external tx id")
	}

	return &externalapi.Anchor{
		Link:           link,
		LocalHeight:    dbAnchor.LocalHeight,
		LocalBlockHash: localBlockHash,
		Team:           team,
		ExternalTxID:   externalTxID,
		ExternalHeight: dbAnchor.ExternalHeight,
	}, nil
}

// SerializeAnchor serializes an anchor for storage
func SerializeAnchor(anchor *externalapi.Anchor) []byte {
	return AnchorToDBAnchor(anchor).Marshal()
}

// DeserializeAnchor deserializes a stored anchor
func DeserializeAnchor(anchorBytes []byte) (*externalapi.Anchor, error) {
	dbAnchor := &DbAnchor{}
	err := dbAnchor.Unmarshal(anchorBytes)
	if err != nil {
		return nil, err
	}
	return DBAnchorToAnchor(dbAnchor)
}
