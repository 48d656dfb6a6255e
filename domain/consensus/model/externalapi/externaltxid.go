package externalapi

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// ExternalTxID identifies the notary chain transaction that carries an anchor.
// It is kept in the notary chain's internal byte order; String renders the
// conventional byte-reversed hex.
type ExternalTxID chainhash.Hash

// NewExternalTxIDFromString parses a notary chain transaction id in its
// byte-reversed hex form. Short strings are zero-padded on the left.
func NewExternalTxIDFromString(txIDString string) (*ExternalTxID, error) {
	hash, err := chainhash.NewHashFromStr(txIDString)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid external tx id %q", txIDString)
	}
	txID := ExternalTxID(*hash)
	return &txID, nil
}

// NewExternalTxIDFromByteSlice constructs an ExternalTxID out of its raw bytes.
func NewExternalTxIDFromByteSlice(txIDBytes []byte) (*ExternalTxID, error) {
	hash, err := chainhash.NewHash(txIDBytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	txID := ExternalTxID(*hash)
	return &txID, nil
}

// String returns the byte-reversed hex encoding of the id.
func (id ExternalTxID) String() string {
	return chainhash.Hash(id).String()
}

// ByteSlice returns a copy of the raw id bytes.
func (id *ExternalTxID) ByteSlice() []byte {
	idBytes := make([]byte, chainhash.HashSize)
	copy(idBytes, id[:])
	return idBytes
}

// Equal returns whether id equals to other
func (id *ExternalTxID) Equal(other *ExternalTxID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return *id == *other
}

// Compare compares the raw bytes of id and other lexicographically.
func (id *ExternalTxID) Compare(other *ExternalTxID) int {
	return bytes.Compare(id[:], other[:])
}

// Less returns true if id sorts before other.
func (id *ExternalTxID) Less(other *ExternalTxID) bool {
	return id.Compare(other) < 0
}

// Clone clones the id
func (id *ExternalTxID) Clone() *ExternalTxID {
	idClone := *id
	return &idClone
}
