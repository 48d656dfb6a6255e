package serialization

import (
	"reflect"
	"testing"

	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/davecgh/go-spew/spew"
	"google.golang.org/protobuf/encoding/protowire"
)

func mustExternalTxID(t *testing.T, s string) *externalapi.ExternalTxID {
	id, err := externalapi.NewExternalTxIDFromString(s)
	if err != nil {
		t.Fatalf("NewExternalTxIDFromString(%s): %s", s, err)
	}
	return id
}

func TestAnchorSerialization(t *testing.T) {
	blockHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{0x15})
	tests := []struct {
		name   string
		anchor *externalapi.Anchor
	}{
		{
			name: "genesis link, empty team",
			anchor: &externalapi.Anchor{
				Link:           externalapi.GenesisLink(),
				LocalHeight:    15,
				LocalBlockHash: blockHash,
				Team:           []externalapi.TeamMemberID{},
				ExternalTxID:   mustExternalTxID(t, "bc1"),
				ExternalHeight: 1,
			},
		},
		{
			name: "linked, two members",
			anchor: &externalapi.Anchor{
				Link:           externalapi.LinkedTo(mustExternalTxID(t, "bc1")),
				LocalHeight:    30,
				LocalBlockHash: blockHash,
				Team:           []externalapi.TeamMemberID{{1}, {2, 3}},
				ExternalTxID:   mustExternalTxID(t, "bd1"),
				ExternalHeight: 2,
			},
		},
	}

	for _, test := range tests {
		serialized := SerializeAnchor(test.anchor)
		deserialized, err := DeserializeAnchor(serialized)
		if err != nil {
			t.Fatalf("%s: DeserializeAnchor: %s", test.name, err)
		}
		if !reflect.DeepEqual(deserialized, test.anchor) {
			t.Fatalf("%s: round trip mismatch.\nwant: %s\ngot: %s",
				test.name, spew.Sdump(test.anchor), spew.Sdump(deserialized))
		}
	}
}

func TestDbAnchorSkipsUnknownFields(t *testing.T) {
	anchor := &externalapi.Anchor{
		Link:           externalapi.GenesisLink(),
		LocalHeight:    7,
		LocalBlockHash: &externalapi.DomainHash{},
		Team:           []externalapi.TeamMemberID{},
		ExternalTxID:   mustExternalTxID(t, "be1"),
		ExternalHeight: 3,
	}
	serialized := SerializeAnchor(anchor)
	serialized = protowire.AppendTag(serialized, 99, protowire.BytesType)
	serialized = protowire.AppendBytes(serialized, []byte("future"))

	deserialized, err := DeserializeAnchor(serialized)
	if err != nil {
		t.Fatalf("DeserializeAnchor: %s", err)
	}
	if deserialized.LocalHeight != 7 || deserialized.ExternalHeight != 3 {
		t.Fatalf("DeserializeAnchor: unexpected anchor %s", spew.Sdump(deserialized))
	}
}

func TestDeserializeAnchorErrors(t *testing.T) {
	validAnchor := &externalapi.Anchor{
		Link:           externalapi.GenesisLink(),
		LocalBlockHash: &externalapi.DomainHash{},
		ExternalTxID:   mustExternalTxID(t, "bb1"),
	}
	valid := SerializeAnchor(validAnchor)

	tests := []struct {
		name  string
		bytes []byte
	}{
		{name: "truncated", bytes: valid[:len(valid)-1]},
		{name: "bad block hash", bytes: (&DbAnchor{LocalBlockHash: []byte{1, 2}, ExternalTxID: validAnchor.ExternalTxID.ByteSlice()}).Marshal()},
		{name: "bad team member", bytes: (&DbAnchor{LocalBlockHash: make([]byte, 32), Team: [][]byte{{1}}, ExternalTxID: validAnchor.ExternalTxID.ByteSlice()}).Marshal()},
		{name: "missing tx id", bytes: (&DbAnchor{LocalBlockHash: make([]byte, 32)}).Marshal()},
	}
	for _, test := range tests {
		_, err := DeserializeAnchor(test.bytes)
		if err == nil {
			t.Errorf("%s: DeserializeAnchor unexpectedly succeeded", test.name)
		}
	}
}

func TestUint64Serialization(t *testing.T) {
	for _, value := range []uint64{0, 1, 127, 128, 1 << 40, ^uint64(0)} {
		deserialized, err := DeserializeUint64(SerializeUint64(value))
		if err != nil {
			t.Fatalf("DeserializeUint64(%d): %s", value, err)
		}
		if deserialized != value {
			t.Fatalf("DeserializeUint64: want %d, got %d", value, deserialized)
		}
	}
	_, err := DeserializeUint64(append(SerializeUint64(5), 0))
	if err == nil {
		t.Fatalf("DeserializeUint64: trailing bytes unexpectedly accepted")
	}
}
