package transactionhelper

import (
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/utils/constants"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// CoinbaseHeightMarker returns the script prefix that commits a coinbase to
// its block height: a minimal script number push of the height.
func CoinbaseHeightMarker(blockHeight uint64) ([]byte, error) {
	marker, err := txscript.NewScriptBuilder().AddInt64(int64(blockHeight)).Script()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build the height marker for height %d", blockHeight)
	}
	return marker, nil
}

// NewCoinbaseTransaction returns a coinbase transaction for the given height
// paying the given outputs
func NewCoinbaseTransaction(blockHeight uint64,
	outputs []*externalapi.DomainTransactionOutput) (*externalapi.DomainTransaction, error) {

	signatureScript, err := txscript.NewScriptBuilder().
		AddInt64(int64(blockHeight)).
		AddOp(txscript.OP_0).
		Script()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build the coinbase signature script for height %d", blockHeight)
	}

	return &externalapi.DomainTransaction{
		Version: constants.TransactionVersion,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: *externalapi.NewNullOutpoint(),
			SignatureScript:  signatureScript,
			Sequence:         constants.MaxTxInSequenceNum,
		}},
		Outputs:  outputs,
		LockTime: 0,
	}, nil
}

// NewNativeOutput returns an output paying value native coins to the given
// script
func NewNativeOutput(value uint64, scriptPublicKey []byte) *externalapi.DomainTransactionOutput {
	return &externalapi.DomainTransactionOutput{
		Value:           value,
		ScriptPublicKey: scriptPublicKey,
		TokenID:         externalapi.NativeTokenID,
	}
}
