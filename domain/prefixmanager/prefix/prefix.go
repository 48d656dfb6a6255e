package prefix

import "github.com/pkg/errors"

const (
	prefixZero byte = 0
	prefixOne  byte = 1
)

// Prefix is the database prefix all consensus data of one notary state
// lives under. Two prefixes exist so a fresh state can be built while the
// old one is still on disk.
type Prefix struct {
	value byte
}

// Zero returns the prefix a new database starts with
func Zero() *Prefix {
	return &Prefix{value: prefixZero}
}

// Serialize serializes the prefix into a byte slice
func (p *Prefix) Serialize() []byte {
	return []byte{p.value}
}

// Equal returns whether p equals to other
func (p *Prefix) Equal(other *Prefix) bool {
	return p.value == other.value
}

// Flip returns the other prefix
func (p *Prefix) Flip() *Prefix {
	if p.value == prefixZero {
		return &Prefix{value: prefixOne}
	}
	return &Prefix{value: prefixZero}
}

func (p *Prefix) String() string {
	if p.value == prefixZero {
		return "prefix-0"
	}
	return "prefix-1"
}

// Deserialize deserializes a prefix from a byte slice
func Deserialize(prefixBytes []byte) (*Prefix, error) {
	if len(prefixBytes) != 1 {
		return nil, errors.Errorf("invalid length %d for prefix", len(prefixBytes))
	}

	if prefixBytes[0] != prefixZero && prefixBytes[0] != prefixOne {
		return nil, errors.Errorf("invalid prefix %x", prefixBytes)
	}

	return &Prefix{value: prefixBytes[0]}, nil
}
