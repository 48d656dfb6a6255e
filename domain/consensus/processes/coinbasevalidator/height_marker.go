package coinbasevalidator

import (
	"fmt"

	"github.com/anchornet/anchord/domain/consensus/utils/constants"
	"github.com/btcsuite/btcd/txscript"
)

// extractCoinbaseHeight decodes the script number pushed by the first
// opcode of a coinbase signature script.
func extractCoinbaseHeight(signatureScript []byte) (uint64, bool) {
	tokenizer := txscript.MakeScriptTokenizer(0, signatureScript)
	if !tokenizer.Next() {
		return 0, false
	}

	opcode := tokenizer.Opcode()
	switch {
	case opcode == txscript.OP_0:
		return 0, true
	case opcode >= txscript.OP_1 && opcode <= txscript.OP_16:
		return uint64(opcode-txscript.OP_1) + 1, true
	}

	data := tokenizer.Data()
	if len(data) == 0 || len(data) > constants.MaxCoinbaseHeightMarkerLength {
		return 0, false
	}
	// Script numbers are little endian with the sign in the top bit of the
	// last byte. Heights are never negative.
	if data[len(data)-1]&0x80 != 0 {
		return 0, false
	}
	var height uint64
	for i, b := range data {
		height |= uint64(b) << (8 * i)
	}
	return height, true
}

func describeHeightMarker(signatureScript []byte) string {
	height, ok := extractCoinbaseHeight(signatureScript)
	if !ok {
		return "no height"
	}
	return fmt.Sprintf("height %d", height)
}
