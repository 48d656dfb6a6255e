package model

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// AnchorActivator holds the active anchor and re-derives it whenever the
// notary chain height or the anchor set changes. Every trigger returns
// whether the active anchor changed.
type AnchorActivator interface {
	OnExternalHeightChanged(externalHeight uint64) bool
	OnAnchorInserted(anchor *externalapi.Anchor) bool
	OnAnchorDeleted(externalTxID *externalapi.ExternalTxID) bool

	ActiveAnchor() fn.Option[*externalapi.Anchor]
	ExternalHeight() uint64
}
