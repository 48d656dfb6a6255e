package anchorvotes

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/anchornet/anchord/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// NewAnchor combines quorum votes into an anchor. All votes must attest the
// same predecessor, local block and team, and no member may vote twice.
// The returned anchor has no external tx id until it is observed in the
// notary chain.
func NewAnchor(votes []*externalapi.AuthVote) (*externalapi.Anchor, error) {
	if len(votes) == 0 {
		return nil, errors.WithStack(ruleerrors.ErrNoAuthVotes)
	}

	first := votes[0]
	firstHash := consensushashing.AuthVoteHash(first)
	signers := make(map[externalapi.TeamMemberID]struct{}, len(votes))
	for i, vote := range votes {
		if i > 0 && !consensushashing.AuthVoteHash(vote).Equal(firstHash) {
			return nil, errors.Wrapf(ruleerrors.ErrInconsistentAuthVotes,
				"vote %d attests height %d (%s) while vote 0 attests height %d (%s)",
				i, vote.LocalHeight, vote.LocalBlockHash, first.LocalHeight, first.LocalBlockHash)
		}
		if _, ok := signers[vote.Signer]; ok {
			return nil, errors.Wrapf(ruleerrors.ErrInconsistentAuthVotes,
				"member %x voted more than once", vote.Signer)
		}
		signers[vote.Signer] = struct{}{}
	}

	team := make([]externalapi.TeamMemberID, len(first.Team))
	copy(team, first.Team)
	return &externalapi.Anchor{
		Link:           first.Link,
		LocalHeight:    first.LocalHeight,
		LocalBlockHash: first.LocalBlockHash.Clone(),
		Team:           team,
	}, nil
}
