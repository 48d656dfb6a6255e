package testutils

import (
	"testing"

	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
)

// ExternalTxID parses a short hex notary tx id such as "bc1", failing the
// test on error
func ExternalTxID(t testing.TB, txID string) *externalapi.ExternalTxID {
	id, err := externalapi.NewExternalTxIDFromString(txID)
	if err != nil {
		t.Fatalf("NewExternalTxIDFromString(%s): %s", txID, err)
	}
	return id
}

// NewAnchor builds an anchor at the given local height, linked to
// predecessor (genesis when empty) and carried by txID at externalHeight
func NewAnchor(t testing.TB, txID string, predecessor string,
	localHeight uint64, externalHeight uint64) *externalapi.Anchor {

	link := externalapi.GenesisLink()
	if predecessor != "" {
		link = externalapi.LinkedTo(ExternalTxID(t, predecessor))
	}
	return &externalapi.Anchor{
		Link:           link,
		LocalHeight:    localHeight,
		LocalBlockHash: externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{byte(localHeight)}),
		Team:           []externalapi.TeamMemberID{{1}},
		ExternalTxID:   ExternalTxID(t, txID),
		ExternalHeight: externalHeight,
	}
}
