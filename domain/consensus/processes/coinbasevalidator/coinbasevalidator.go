package coinbasevalidator

import (
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/infrastructure/logger"
)

type coinbaseValidator struct {
	dip1Height               uint64
	baseSubsidy              uint64
	subsidyReductionInterval uint64
	foundationShare          uint64
	foundationShareScript    []byte
}

// New instantiates a new CoinbaseValidator
func New(
	dip1Height uint64,
	baseSubsidy uint64,
	subsidyReductionInterval uint64,
	foundationShare uint64,
	foundationShareScript []byte) model.CoinbaseValidator {

	return &coinbaseValidator{
		dip1Height:               dip1Height,
		baseSubsidy:              baseSubsidy,
		subsidyReductionInterval: subsidyReductionInterval,
		foundationShare:          foundationShare,
		foundationShareScript:    foundationShareScript,
	}
}

// ValidateCoinbase checks the coinbase of the block at blockHeight. Below
// the DIP1 height only its shape and tokens are checked. From the DIP1
// height on it must also pay the foundation its share and emit exactly the
// block subsidy.
func (v *coinbaseValidator) ValidateCoinbase(coinbase *externalapi.DomainTransaction, blockHeight uint64) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateCoinbase")
	defer onEnd()

	err := v.checkCoinbaseStructure(coinbase, blockHeight)
	if err != nil {
		return err
	}

	err = v.checkNativeTokens(coinbase)
	if err != nil {
		return err
	}

	if blockHeight < v.dip1Height {
		return nil
	}

	subsidy := v.calcBlockSubsidy(blockHeight)
	err = v.checkFoundationReward(coinbase, subsidy)
	if err != nil {
		return err
	}

	return v.checkCoinbaseAmount(coinbase, subsidy)
}
