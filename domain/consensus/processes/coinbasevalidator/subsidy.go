package coinbasevalidator

import (
	"math/bits"

	"github.com/anchornet/anchord/domain/consensus/utils/constants"
)

// fixedPointBase is the denominator of the foundation share.
const fixedPointBase = constants.SatoshiPerCoin

// calcBlockSubsidy returns the subsidy amount a block at the provided height
// should have. This is mainly used for determining how much the coinbase for
// newly generated blocks awards as well as validating the coinbase for blocks
// has the expected value.
//
// The subsidy is halved every SubsidyReductionInterval blocks. Mathematically
// this is: baseSubsidy / 2^(height/SubsidyReductionInterval)
func (v *coinbaseValidator) calcBlockSubsidy(blockHeight uint64) uint64 {
	if v.subsidyReductionInterval == 0 {
		return v.baseSubsidy
	}

	halvings := blockHeight / v.subsidyReductionInterval
	if halvings >= 64 {
		return 0
	}
	return v.baseSubsidy >> halvings
}

// calcFoundationReward returns subsidy * foundationShare / fixedPointBase,
// truncated. The product is computed in 128 bits so it can't overflow.
func (v *coinbaseValidator) calcFoundationReward(subsidy uint64) uint64 {
	if v.foundationShare >= fixedPointBase {
		return subsidy
	}
	hi, lo := bits.Mul64(subsidy, v.foundationShare)
	quotient, _ := bits.Div64(hi, lo, fixedPointBase)
	return quotient
}
