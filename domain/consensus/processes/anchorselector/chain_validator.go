package anchorselector

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// chainValidator walks predecessor links within one selection pass. Every
// anchor whose chain validity was proven is remembered, so each anchor is
// walked at most once per pass.
type chainValidator struct {
	byExternalTxID map[externalapi.ExternalTxID]*externalapi.Anchor
	externalHeight uint64
	validity       map[externalapi.ExternalTxID]bool
}

func newChainValidator(anchors []*externalapi.Anchor, externalHeight uint64) *chainValidator {
	byExternalTxID := make(map[externalapi.ExternalTxID]*externalapi.Anchor, len(anchors))
	for _, anchor := range anchors {
		byExternalTxID[*anchor.ExternalTxID] = anchor
	}
	return &chainValidator{
		byExternalTxID: byExternalTxID,
		externalHeight: externalHeight,
		validity:       make(map[externalapi.ExternalTxID]bool, len(anchors)),
	}
}

// hasValidChain returns whether anchor and all of its ancestors are present
// and confirmed, back to a genesis anchor.
func (cv *chainValidator) hasValidChain(anchor *externalapi.Anchor) bool {
	var path []*externalapi.Anchor
	valid := true

	current := anchor
	for {
		if known, ok := cv.validity[*current.ExternalTxID]; ok {
			valid = known
			break
		}
		path = append(path, current)

		if !current.IsConfirmed(cv.externalHeight) {
			cv.logBrokenChain(anchor, errors.Wrapf(ruleerrors.ErrBrokenAnchorChain,
				"ancestor %s is unconfirmed at external height %d", current, cv.externalHeight))
			valid = false
			break
		}
		if current.Link.IsGenesis() {
			break
		}

		predecessorID := current.Link.Predecessor().UnsafeFromSome()
		predecessor, ok := cv.byExternalTxID[predecessorID]
		if !ok {
			cv.logBrokenChain(anchor, ruleerrors.NewErrBrokenAnchorChain(predecessorID))
			valid = false
			break
		}
		if predecessor.LocalHeight >= current.LocalHeight {
			panic(errors.Errorf("stored anchor %s is not higher than its predecessor %s",
				current, predecessor))
		}
		current = predecessor
	}

	for _, walked := range path {
		cv.validity[*walked.ExternalTxID] = valid
	}
	return valid
}

func (cv *chainValidator) logBrokenChain(anchor *externalapi.Anchor, err error) {
	log.Debugf("Anchor %s excluded from selection: %s", anchor, err)
}
