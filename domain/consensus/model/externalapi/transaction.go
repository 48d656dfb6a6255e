package externalapi

import "math"

// DomainTransactionID represents the ID of a local chain transaction
type DomainTransactionID DomainHash

// TokenID identifies the asset an output carries. The zero value is the
// native coin.
type TokenID uint32

// NativeTokenID is the token id of the chain's native coin.
const NativeTokenID TokenID = 0

// IsNative returns whether the token is the native coin.
func (id TokenID) IsNative() bool {
	return id == NativeTokenID
}

// DomainTransaction represents a local chain transaction
type DomainTransaction struct {
	Version  uint16
	Inputs   []*DomainTransactionInput
	Outputs  []*DomainTransactionOutput
	LockTime uint64
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &DomainTransaction{
		Version:  tx.Version,
		Inputs:   inputsClone,
		Outputs:  outputsClone,
		LockTime: tx.LockTime,
	}
}

// DomainTransactionInput represents a local chain transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	signatureScriptClone := make([]byte, len(input.SignatureScript))
	copy(signatureScriptClone, input.SignatureScript)

	return &DomainTransactionInput{
		PreviousOutpoint: *input.PreviousOutpoint.Clone(),
		SignatureScript:  signatureScriptClone,
		Sequence:         input.Sequence,
	}
}

// DomainOutpoint represents a local chain transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NullOutpointIndex is the outpoint index of a coinbase input.
const NullOutpointIndex = math.MaxUint32

// NewNullOutpoint returns the outpoint a coinbase input spends.
func NewNullOutpoint() *DomainOutpoint {
	return &DomainOutpoint{Index: NullOutpointIndex}
}

// IsNull returns whether the outpoint references no previous output.
func (op *DomainOutpoint) IsNull() bool {
	return op.Index == NullOutpointIndex && op.TransactionID == DomainTransactionID{}
}

// Clone returns a clone of DomainOutpoint
func (op *DomainOutpoint) Clone() *DomainOutpoint {
	return &DomainOutpoint{
		TransactionID: op.TransactionID,
		Index:         op.Index,
	}
}

// DomainTransactionOutput represents a local chain transaction output
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey []byte
	TokenID         TokenID
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	scriptPublicKeyClone := make([]byte, len(output.ScriptPublicKey))
	copy(scriptPublicKeyClone, output.ScriptPublicKey)

	return &DomainTransactionOutput{
		Value:           output.Value,
		ScriptPublicKey: scriptPublicKeyClone,
		TokenID:         output.TokenID,
	}
}
