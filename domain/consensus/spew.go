package consensus

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/davecgh/go-spew/spew"
)

func spewTransaction(transaction *externalapi.DomainTransaction) string {
	return spew.Sdump(transaction)
}
