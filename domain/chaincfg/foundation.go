package chaincfg

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// RegtestFoundationAddress is the address the regtest foundation share is
// paid to.
const RegtestFoundationAddress = "2NCWAKfEehP3qibkLKYQjXaWMK23k4EDMVS"

// FoundationScriptFromAddress returns the script public key paying to the
// given address on the given network.
func FoundationScriptFromAddress(address string, netParams *btcchaincfg.Params) ([]byte, error) {
	decodedAddress, err := btcutil.DecodeAddress(address, netParams)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode foundation address %s", address)
	}
	if !decodedAddress.IsForNet(netParams) {
		return nil, errors.Errorf("foundation address %s is not for %s", address, netParams.Name)
	}
	script, err := txscript.PayToAddrScript(decodedAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build a script for foundation address %s", address)
	}
	return script, nil
}

func mustFoundationScript(address string, netParams *btcchaincfg.Params) []byte {
	script, err := FoundationScriptFromAddress(address, netParams)
	if err != nil {
		panic(err)
	}
	return script
}

func mustPayToScriptHash(scriptHashHex string) []byte {
	scriptHash, err := hex.DecodeString(scriptHashHex)
	if err != nil {
		panic(errors.Wrapf(err, "invalid script hash %s", scriptHashHex))
	}
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(scriptHash).
		AddOp(txscript.OP_EQUAL).
		Script()
	if err != nil {
		panic(err)
	}
	return script
}
