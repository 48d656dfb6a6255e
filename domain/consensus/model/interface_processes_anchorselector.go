package model

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// AnchorSelector picks the anchor that should be active out of a set of
// stored anchors
type AnchorSelector interface {
	SelectBest(anchors []*externalapi.Anchor, externalHeight uint64,
		currentActive fn.Option[*externalapi.Anchor]) (best fn.Option[*externalapi.Anchor], changed bool)
}
