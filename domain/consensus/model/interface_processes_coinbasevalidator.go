package model

import "github.com/anchornet/anchord/domain/consensus/model/externalapi"

// CoinbaseValidator checks a coinbase transaction against the reward rules
// in effect at the given block height
type CoinbaseValidator interface {
	ValidateCoinbase(coinbase *externalapi.DomainTransaction, blockHeight uint64) error
}
