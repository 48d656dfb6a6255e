package coinbasevalidator

import (
	"bytes"

	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/anchornet/anchord/domain/consensus/utils/constants"
	"github.com/anchornet/anchord/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

func (v *coinbaseValidator) checkCoinbaseStructure(coinbase *externalapi.DomainTransaction, blockHeight uint64) error {
	if len(coinbase.Inputs) != 1 {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction,
			"coinbase has %d inputs instead of exactly 1", len(coinbase.Inputs))
	}
	input := coinbase.Inputs[0]
	if !input.PreviousOutpoint.IsNull() {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction,
			"coinbase input spends %s:%d instead of the null outpoint",
			externalapi.DomainHash(input.PreviousOutpoint.TransactionID), input.PreviousOutpoint.Index)
	}
	if len(coinbase.Outputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase has no outputs")
	}

	expectedMarker, err := transactionhelper.CoinbaseHeightMarker(blockHeight)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(input.SignatureScript, expectedMarker) {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseHeight,
			"coinbase signature script %x doesn't start with the height marker %x of height %d (found %s)",
			input.SignatureScript, expectedMarker, blockHeight, describeHeightMarker(input.SignatureScript))
	}
	return nil
}

func (v *coinbaseValidator) checkNativeTokens(coinbase *externalapi.DomainTransaction) error {
	for i, output := range coinbase.Outputs {
		if !output.TokenID.IsNative() {
			return errors.Wrapf(ruleerrors.ErrWrongTokenKind,
				"coinbase output %d carries token %d", i, output.TokenID)
		}
	}
	return nil
}

// checkFoundationReward looks for an output other than the primary reward
// output paying at least the foundation share to the foundation script.
func (v *coinbaseValidator) checkFoundationReward(coinbase *externalapi.DomainTransaction, subsidy uint64) error {
	foundationReward := v.calcFoundationReward(subsidy)
	for _, output := range coinbase.Outputs[1:] {
		if output.Value >= foundationReward && bytes.Equal(output.ScriptPublicKey, v.foundationShareScript) {
			return nil
		}
	}
	return errors.Wrapf(ruleerrors.ErrMissingFoundationReward,
		"coinbase doesn't pay at least %d to the foundation script %x", foundationReward, v.foundationShareScript)
}

func (v *coinbaseValidator) checkCoinbaseAmount(coinbase *externalapi.DomainTransaction, subsidy uint64) error {
	var total uint64
	for i, output := range coinbase.Outputs {
		if output.Value > constants.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseAmount,
				"coinbase output %d value %d is higher than the max allowed value of %d",
				i, output.Value, uint64(constants.MaxSatoshi))
		}
		total += output.Value
		if total > constants.MaxSatoshi {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseAmount,
				"coinbase outputs up to %d sum above the max allowed value of %d",
				i, uint64(constants.MaxSatoshi))
		}
	}
	if total != subsidy {
		log.Debugf("Coinbase pays %d while the subsidy is %d", total, subsidy)
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseAmount,
			"coinbase pays %d while the block subsidy is %d", total, subsidy)
	}
	return nil
}
