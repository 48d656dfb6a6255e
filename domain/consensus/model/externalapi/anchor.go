package externalapi

import (
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// TeamMemberIDSize is the size of a quorum team member identifier.
const TeamMemberIDSize = 20

// TeamMemberID identifies a quorum team member by the hash160 of its key.
type TeamMemberID [TeamMemberIDSize]byte

// AnchorLink is the predecessor linkage of an anchor: either the genesis link
// or a link to the notary transaction carrying the predecessor anchor.
type AnchorLink struct {
	predecessor fn.Option[ExternalTxID]
}

// GenesisLink returns the link of an anchor that has no predecessor.
func GenesisLink() AnchorLink {
	return AnchorLink{predecessor: fn.None[ExternalTxID]()}
}

// LinkedTo returns a link to the anchor carried by the given notary transaction.
func LinkedTo(predecessor *ExternalTxID) AnchorLink {
	return AnchorLink{predecessor: fn.Some(*predecessor)}
}

// IsGenesis returns whether the link is the genesis link.
func (link AnchorLink) IsGenesis() bool {
	return link.predecessor.IsNone()
}

// Predecessor returns the predecessor's external tx id, if any.
func (link AnchorLink) Predecessor() fn.Option[ExternalTxID] {
	return link.predecessor
}

// Equal returns whether both links point at the same predecessor.
func (link AnchorLink) Equal(other AnchorLink) bool {
	return link.predecessor == other.predecessor
}

func (link AnchorLink) String() string {
	return fn.ElimOption(link.predecessor,
		func() string { return "genesis" },
		func(id ExternalTxID) string { return id.String() },
	)
}

// AuthVote is a single quorum member's attestation of a local chain block.
type AuthVote struct {
	Link           AnchorLink
	LocalHeight    uint64
	LocalBlockHash *DomainHash
	Team           []TeamMemberID
	Signer         TeamMemberID
}

// Anchor is a checkpoint of a local chain block committed into the notary
// chain. ExternalTxID and ExternalHeight are assigned when the anchor is
// observed in a notary chain transaction.
type Anchor struct {
	Link           AnchorLink
	LocalHeight    uint64
	LocalBlockHash *DomainHash
	Team           []TeamMemberID

	ExternalTxID   *ExternalTxID
	ExternalHeight uint64
}

// Clone returns a clone of Anchor
func (anchor *Anchor) Clone() *Anchor {
	teamClone := make([]TeamMemberID, len(anchor.Team))
	copy(teamClone, anchor.Team)

	var localBlockHashClone *DomainHash
	if anchor.LocalBlockHash != nil {
		localBlockHashClone = anchor.LocalBlockHash.Clone()
	}
	var externalTxIDClone *ExternalTxID
	if anchor.ExternalTxID != nil {
		externalTxIDClone = anchor.ExternalTxID.Clone()
	}

	return &Anchor{
		Link:           anchor.Link,
		LocalHeight:    anchor.LocalHeight,
		LocalBlockHash: localBlockHashClone,
		Team:           teamClone,
		ExternalTxID:   externalTxIDClone,
		ExternalHeight: anchor.ExternalHeight,
	}
}

// IsConfirmed returns whether the anchor's notary transaction is at or below
// the given notary chain height.
func (anchor *Anchor) IsConfirmed(externalHeight uint64) bool {
	return anchor.ExternalHeight <= externalHeight
}

func (anchor *Anchor) String() string {
	return fmt.Sprintf("anchor %s (local height %d, external height %d, prev %s)",
		anchor.ExternalTxID, anchor.LocalHeight, anchor.ExternalHeight, anchor.Link)
}
