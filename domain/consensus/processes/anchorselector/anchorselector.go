package anchorselector

import (
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/lightningnetwork/lnd/fn/v2"
)

type anchorSelector struct{}

// New instantiates a new AnchorSelector
func New() model.AnchorSelector {
	return &anchorSelector{}
}

// SelectBest returns the best anchor out of the given ones whose whole
// ancestor chain is stored and confirmed at externalHeight. changed reports
// whether the result differs from currentActive by external tx id.
func (as *anchorSelector) SelectBest(anchors []*externalapi.Anchor, externalHeight uint64,
	currentActive fn.Option[*externalapi.Anchor]) (best fn.Option[*externalapi.Anchor], changed bool) {

	validator := newChainValidator(anchors, externalHeight)

	var bestAnchor *externalapi.Anchor
	for _, anchor := range anchors {
		if !anchor.IsConfirmed(externalHeight) {
			continue
		}
		if !validator.hasValidChain(anchor) {
			continue
		}
		if bestAnchor == nil || isBetter(anchor, bestAnchor) {
			bestAnchor = anchor
		}
	}

	best = fn.None[*externalapi.Anchor]()
	if bestAnchor != nil {
		best = fn.Some(bestAnchor)
	}
	changed = !sameAnchor(best, currentActive)
	if changed {
		log.Debugf("Best anchor changed from %s to %s at external height %d",
			describe(currentActive), describe(best), externalHeight)
	}
	return best, changed
}

// isBetter returns whether a is preferred over b: higher local height
// first, then lower external tx id.
func isBetter(a, b *externalapi.Anchor) bool {
	if a.LocalHeight != b.LocalHeight {
		return a.LocalHeight > b.LocalHeight
	}
	return a.ExternalTxID.Less(b.ExternalTxID)
}

func sameAnchor(a, b fn.Option[*externalapi.Anchor]) bool {
	if a.IsNone() || b.IsNone() {
		return a.IsNone() == b.IsNone()
	}
	return a.UnsafeFromSome().ExternalTxID.Equal(b.UnsafeFromSome().ExternalTxID)
}

func describe(anchor fn.Option[*externalapi.Anchor]) string {
	return fn.ElimOption(anchor,
		func() string { return "none" },
		func(a *externalapi.Anchor) string { return a.String() },
	)
}
