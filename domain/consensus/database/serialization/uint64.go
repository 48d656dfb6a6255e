package serialization

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// SerializeUint64 encodes a single number as a varint
func SerializeUint64(value uint64) []byte {
	return protowire.AppendVarint(nil, value)
}

// DeserializeUint64 decodes a number encoded by SerializeUint64
func DeserializeUint64(valueBytes []byte) (uint64, error) {
	value, n := protowire.ConsumeVarint(valueBytes)
	if n < 0 {
		return 0, errors.Wrap(protowire.ParseError(n), "failed to parse uint64")
	}
	if n != len(valueBytes) {
		return 0, errors.Errorf("unexpected %d trailing bytes after uint64", len(valueBytes)-n)
	}
	return value, nil
}
