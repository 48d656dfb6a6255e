package anchoractivator

import (
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// anchorActivator holds the active anchor. It is either empty or holds an
// anchor that SelectBest returned for the current store contents and
// external height.
type anchorActivator struct {
	anchorStore    model.AnchorStore
	anchorSelector model.AnchorSelector

	externalHeight uint64
	active         fn.Option[*externalapi.Anchor]
}

// New instantiates a new AnchorActivator and derives the active anchor out
// of the anchors already in anchorStore
func New(anchorStore model.AnchorStore, anchorSelector model.AnchorSelector,
	externalHeight uint64) model.AnchorActivator {

	aa := &anchorActivator{
		anchorStore:    anchorStore,
		anchorSelector: anchorSelector,
		externalHeight: externalHeight,
		active:         fn.None[*externalapi.Anchor](),
	}
	aa.reselect("startup")
	return aa
}

// OnExternalHeightChanged re-derives the active anchor at the new notary
// chain height. The height may decrease.
func (aa *anchorActivator) OnExternalHeightChanged(externalHeight uint64) bool {
	if externalHeight < aa.externalHeight {
		log.Infof("Notary chain height went down from %d to %d", aa.externalHeight, externalHeight)
	}
	aa.externalHeight = externalHeight
	return aa.reselect("external height change")
}

// OnAnchorInserted re-derives the active anchor after anchor was put into
// the store
func (aa *anchorActivator) OnAnchorInserted(anchor *externalapi.Anchor) bool {
	log.Tracef("Anchor %s inserted", anchor)
	return aa.reselect("anchor insertion")
}

// OnAnchorDeleted re-derives the active anchor after the anchor carried by
// externalTxID was removed from the store
func (aa *anchorActivator) OnAnchorDeleted(externalTxID *externalapi.ExternalTxID) bool {
	log.Tracef("Anchor %s deleted", externalTxID)
	return aa.reselect("anchor deletion")
}

func (aa *anchorActivator) ActiveAnchor() fn.Option[*externalapi.Anchor] {
	return aa.active
}

func (aa *anchorActivator) ExternalHeight() uint64 {
	return aa.externalHeight
}

func (aa *anchorActivator) reselect(reason string) bool {
	best, changed := aa.anchorSelector.SelectBest(aa.anchorStore.All(), aa.externalHeight, aa.active)
	if !changed {
		return false
	}

	aa.active = best
	best.WhenSome(func(anchor *externalapi.Anchor) {
		log.Infof("Activated anchor %s on %s", anchor, reason)
	})
	if best.IsNone() {
		log.Infof("No anchor is active after %s", reason)
	}
	return true
}
