package model

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// AnchorStore represents a store of notary anchors keyed by the external
// transaction that carries them
type AnchorStore interface {
	Insert(dbContext DBWriter, anchor *externalapi.Anchor, externalTxID *externalapi.ExternalTxID,
		externalHeight uint64, overwrite bool) (bool, error)
	DeleteByExternalTxID(dbContext DBWriter, externalTxID *externalapi.ExternalTxID) (bool, error)
	Get(externalTxID *externalapi.ExternalTxID) fn.Option[*externalapi.Anchor]
	FindByPredecessor(link externalapi.AnchorLink) []*externalapi.Anchor
	All() []*externalapi.Anchor
	Count() int
	Load(dbContext DBReader) error
}
