package constants

import "math"

const (
	// TransactionVersion is the current latest supported transaction version.
	TransactionVersion = 1

	// SatoshiPerCoin is the number of base units in one coin.
	SatoshiPerCoin = 100_000_000

	// MaxSatoshi is the maximum transaction amount allowed in base units.
	MaxSatoshi = 1_200_000_000 * SatoshiPerCoin

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint64 = math.MaxUint64

	// MaxCoinbaseHeightMarkerLength is the longest script number push the
	// coinbase height marker may use.
	MaxCoinbaseHeightMarkerLength = 8
)
