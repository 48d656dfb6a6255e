package testutils

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// OpTrueScript returns a P2SH script paying to an anyone-can-spend address,
// used as the miner's script in tests
func OpTrueScript() []byte {
	redeemScript := []byte{txscript.OP_TRUE}
	scriptPublicKey, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(redeemScript)).
		AddOp(txscript.OP_EQUAL).
		Script()
	if err != nil {
		panic(errors.Wrapf(err, "Couldn't build opTrueScript. This should never happen"))
	}
	return scriptPublicKey
}
