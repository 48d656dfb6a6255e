// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/anchornet/anchord/domain/consensus/utils/constants"
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
)

// Coin is the fixed-point base of amounts and of the foundation share.
const Coin = constants.SatoshiPerCoin

// Params defines the consensus parameters of a network. A Params value
// must not be modified once consensus has been built from it.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// DIP1Height is the height from which the foundation reward rules
	// are enforced on coinbase transactions.
	DIP1Height uint64

	// BaseSubsidy is the subsidy of a block below the first reduction.
	BaseSubsidy uint64

	// SubsidyReductionInterval is the number of blocks after which the
	// subsidy is halved. Zero disables the reduction.
	SubsidyReductionInterval uint64

	// FoundationShare is the fraction of the subsidy paid to the
	// foundation, expressed over Coin.
	FoundationShare uint64

	// FoundationShareScript is the script public key the foundation share
	// must be paid to.
	FoundationShareScript []byte

	// NotaryNetParams are the parameters of the notary chain anchors are
	// committed into. Foundation addresses are decoded against them.
	NotaryNetParams *btcchaincfg.Params
}

// Clone returns a deep copy of the params so they can be overridden
// without affecting the package-level values.
func (p *Params) Clone() *Params {
	clone := *p
	clone.FoundationShareScript = make([]byte, len(p.FoundationShareScript))
	copy(clone.FoundationShareScript, p.FoundationShareScript)
	return &clone
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                     "anchord-mainnet",
	DIP1Height:               356500,
	BaseSubsidy:              200 * Coin,
	SubsidyReductionInterval: 1_050_000,
	FoundationShare:          10 * Coin / 100,
	FoundationShareScript:    mustPayToScriptHash("a1ad5ba9b5b3b4c9b46dcb32b0d6a0e66bfd1d6b"),
	NotaryNetParams:          &btcchaincfg.MainNetParams,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:                     "anchord-testnet",
	DIP1Height:               20000,
	BaseSubsidy:              200 * Coin,
	SubsidyReductionInterval: 1_050_000,
	FoundationShare:          10 * Coin / 100,
	FoundationShareScript:    mustPayToScriptHash("2e4c6a0ae8b5b0e8e3a3e6e2d1b72d09c5a3f1b4"),
	NotaryNetParams:          &btcchaincfg.TestNet3Params,
}

// RegtestParams defines the network parameters for the regression test
// network.
var RegtestParams = Params{
	Name:                     "anchord-regtest",
	DIP1Height:               10000000,
	BaseSubsidy:              50 * Coin,
	SubsidyReductionInterval: 150,
	FoundationShare:          19 * Coin / 10 / 100,
	FoundationShareScript:    mustFoundationScript(RegtestFoundationAddress, &btcchaincfg.RegressionNetParams),
	NotaryNetParams:          &btcchaincfg.RegressionNetParams,
}
