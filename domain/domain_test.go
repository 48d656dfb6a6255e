package domain_test

import (
	"testing"

	"github.com/anchornet/anchord/domain"
	"github.com/anchornet/anchord/domain/chaincfg"
	"github.com/anchornet/anchord/domain/consensus"
	"github.com/anchornet/anchord/domain/consensus/utils/testutils"
	"github.com/anchornet/anchord/infrastructure/db/database/ldb"
)

func TestResetNotaryState(t *testing.T) {
	testutils.ForAllNets(t, func(t *testing.T, params *chaincfg.Params) {
		db, err := ldb.NewLevelDB(t.TempDir(), 8)
		if err != nil {
			t.Fatalf("NewLevelDB: %+v", err)
		}
		defer db.Close()

		consensusConfig := &consensus.Config{Params: *params}
		domainInstance, err := domain.New(consensusConfig, db)
		if err != nil {
			t.Fatalf("New: %+v", err)
		}

		anchor := testutils.NewAnchor(t, "bc1", "", 15, 1)
		_, err = domainInstance.Consensus().AddAnchor(anchor, anchor.ExternalTxID, 1, false)
		if err != nil {
			t.Fatalf("AddAnchor: %+v", err)
		}
		_, err = domainInstance.Consensus().UpdateExternalHeight(1)
		if err != nil {
			t.Fatalf("UpdateExternalHeight: %+v", err)
		}
		if domainInstance.Consensus().ActiveAnchor().IsNone() {
			t.Fatalf("expected bc1 to be active")
		}

		// The state survives reopening the domain
		reopened, err := domain.New(consensusConfig, db)
		if err != nil {
			t.Fatalf("New: %+v", err)
		}
		if reopened.Consensus().ExternalHeight() != 1 || reopened.Consensus().ActiveAnchor().IsNone() {
			t.Fatalf("reopened domain lost the notary state")
		}

		err = reopened.ResetNotaryState()
		if err != nil {
			t.Fatalf("ResetNotaryState: %+v", err)
		}
		if reopened.Consensus().AnchorCount() != 0 {
			t.Fatalf("expected no anchors after a reset but got %d", reopened.Consensus().AnchorCount())
		}
		if reopened.Consensus().ExternalHeight() != 0 {
			t.Fatalf("expected external height 0 after a reset but got %d", reopened.Consensus().ExternalHeight())
		}
		if reopened.Consensus().ActiveAnchor().IsSome() {
			t.Fatalf("expected no active anchor after a reset")
		}

		// The reset is persisted
		afterReset, err := domain.New(consensusConfig, db)
		if err != nil {
			t.Fatalf("New: %+v", err)
		}
		if afterReset.Consensus().AnchorCount() != 0 {
			t.Fatalf("expected no anchors after reopening a reset domain but got %d",
				afterReset.Consensus().AnchorCount())
		}
	})
}
