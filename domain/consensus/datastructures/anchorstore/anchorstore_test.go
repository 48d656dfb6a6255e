package anchorstore

import (
	"errors"
	"testing"

	"github.com/anchornet/anchord/domain/consensus/database"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/anchornet/anchord/domain/consensus/utils/testutils"
)

var prefixBucket = database.MakeBucket([]byte("test"))

func TestInsertDuplicateAndOverwrite(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestInsertDuplicateAndOverwrite")
	defer teardown()
	store := New(prefixBucket)

	bc1 := testutils.ExternalTxID(t, "bc1")
	anchor := testutils.NewAnchor(t, "bc1", "", 15, 1)
	inserted, err := store.Insert(dbManager, anchor, bc1, 1, false)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}
	if !inserted {
		t.Fatalf("Insert: expected the first insert to succeed")
	}

	replacement := testutils.NewAnchor(t, "bc1", "", 16, 1)
	inserted, err = store.Insert(dbManager, replacement, bc1, 2, false)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}
	if inserted {
		t.Fatalf("Insert: expected a duplicate without overwrite to be a no-op")
	}
	stored := store.Get(bc1).UnwrapOr(nil)
	if stored == nil || stored.LocalHeight != 15 || stored.ExternalHeight != 1 {
		t.Fatalf("Get: duplicate insert changed the stored anchor: %v", stored)
	}

	inserted, err = store.Insert(dbManager, replacement, bc1, 2, true)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}
	if !inserted {
		t.Fatalf("Insert: expected overwrite to succeed")
	}
	stored = store.Get(bc1).UnwrapOr(nil)
	if stored == nil || stored.LocalHeight != 16 || stored.ExternalHeight != 2 {
		t.Fatalf("Get: overwrite didn't replace the stored anchor: %v", stored)
	}
	if store.Count() != 1 {
		t.Fatalf("Count: expected 1, got %d", store.Count())
	}
}

func TestInsertAssignsExternalPlacement(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestInsertAssignsExternalPlacement")
	defer teardown()
	store := New(prefixBucket)

	anchor := &externalapi.Anchor{
		Link:           externalapi.GenesisLink(),
		LocalHeight:    15,
		LocalBlockHash: &externalapi.DomainHash{},
	}
	bd1 := testutils.ExternalTxID(t, "bd1")
	_, err := store.Insert(dbManager, anchor, bd1, 7, false)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}
	stored := store.Get(bd1).UnwrapOr(nil)
	if stored == nil || !stored.ExternalTxID.Equal(bd1) || stored.ExternalHeight != 7 {
		t.Fatalf("Get: expected the anchor placed at %s/7, got %v", bd1, stored)
	}
	if anchor.ExternalTxID != nil {
		t.Fatalf("Insert: the caller's anchor was modified")
	}
}

func TestInsertRejectsNonIncreasingHeights(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestInsertRejectsNonIncreasingHeights")
	defer teardown()
	store := New(prefixBucket)

	_, err := store.Insert(dbManager, testutils.NewAnchor(t, "bc1", "", 15, 1), testutils.ExternalTxID(t, "bc1"), 1, false)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}
	_, err = store.Insert(dbManager, testutils.NewAnchor(t, "bd1", "bc1", 30, 1), testutils.ExternalTxID(t, "bd1"), 1, false)
	if err != nil {
		t.Fatalf("Insert: %s", err)
	}

	tests := []struct {
		name      string
		anchor    *externalapi.Anchor
		overwrite bool
	}{
		{name: "equal to predecessor", anchor: testutils.NewAnchor(t, "be1", "bc1", 15, 1)},
		{name: "below predecessor", anchor: testutils.NewAnchor(t, "be1", "bd1", 20, 1)},
		{name: "overwrite above successor", anchor: testutils.NewAnchor(t, "bc1", "", 30, 1), overwrite: true},
		{name: "links to itself", anchor: testutils.NewAnchor(t, "be1", "be1", 40, 1)},
	}
	for _, test := range tests {
		inserted, err := store.Insert(dbManager, test.anchor, test.anchor.ExternalTxID, 1, test.overwrite)
		if !errors.Is(err, ruleerrors.ErrAnchorHeightNotIncreasing) {
			t.Errorf("%s: expected ErrAnchorHeightNotIncreasing, got %v", test.name, err)
		}
		if inserted {
			t.Errorf("%s: rejected insert reported success", test.name)
		}
	}
	if store.Count() != 2 {
		t.Fatalf("Count: rejected inserts changed the store, got %d anchors", store.Count())
	}
}

func TestFindByPredecessorAndDelete(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestFindByPredecessorAndDelete")
	defer teardown()
	store := New(prefixBucket)

	for _, anchor := range []*externalapi.Anchor{
		testutils.NewAnchor(t, "bc1", "", 15, 1),
		testutils.NewAnchor(t, "be1", "bc1", 30, 1),
		testutils.NewAnchor(t, "bd1", "bc1", 30, 1),
		testutils.NewAnchor(t, "bb1", "", 10, 1),
	} {
		_, err := store.Insert(dbManager, anchor, anchor.ExternalTxID, anchor.ExternalHeight, false)
		if err != nil {
			t.Fatalf("Insert %s: %s", anchor, err)
		}
	}

	children := store.FindByPredecessor(externalapi.LinkedTo(testutils.ExternalTxID(t, "bc1")))
	if len(children) != 2 {
		t.Fatalf("FindByPredecessor: expected 2 children, got %d", len(children))
	}
	if !children[0].ExternalTxID.Equal(testutils.ExternalTxID(t, "bd1")) {
		t.Fatalf("FindByPredecessor: expected bd1 first, got %s", children[0].ExternalTxID)
	}
	genesisChildren := store.FindByPredecessor(externalapi.GenesisLink())
	if len(genesisChildren) != 2 {
		t.Fatalf("FindByPredecessor(genesis): expected 2 anchors, got %d", len(genesisChildren))
	}

	deleted, err := store.DeleteByExternalTxID(dbManager, testutils.ExternalTxID(t, "bd1"))
	if err != nil {
		t.Fatalf("DeleteByExternalTxID: %s", err)
	}
	if !deleted {
		t.Fatalf("DeleteByExternalTxID: expected bd1 to be deleted")
	}
	deleted, err = store.DeleteByExternalTxID(dbManager, testutils.ExternalTxID(t, "bd1"))
	if err != nil {
		t.Fatalf("DeleteByExternalTxID: %s", err)
	}
	if deleted {
		t.Fatalf("DeleteByExternalTxID: deleting a missing anchor reported success")
	}
	if store.Get(testutils.ExternalTxID(t, "bd1")).IsSome() {
		t.Fatalf("Get: deleted anchor is still returned")
	}
	children = store.FindByPredecessor(externalapi.LinkedTo(testutils.ExternalTxID(t, "bc1")))
	if len(children) != 1 {
		t.Fatalf("FindByPredecessor: expected 1 child after delete, got %d", len(children))
	}
}

func TestLoad(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestLoad")
	defer teardown()
	store := New(prefixBucket)

	for _, anchor := range []*externalapi.Anchor{
		testutils.NewAnchor(t, "bc1", "", 15, 1),
		testutils.NewAnchor(t, "bd1", "bc1", 30, 2),
		testutils.NewAnchor(t, "be1", "bc1", 30, 3),
	} {
		_, err := store.Insert(dbManager, anchor, anchor.ExternalTxID, anchor.ExternalHeight, false)
		if err != nil {
			t.Fatalf("Insert %s: %s", anchor, err)
		}
	}
	_, err := store.DeleteByExternalTxID(dbManager, testutils.ExternalTxID(t, "be1"))
	if err != nil {
		t.Fatalf("DeleteByExternalTxID: %s", err)
	}

	reloaded := New(prefixBucket)
	err = reloaded.Load(dbManager)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	all := reloaded.All()
	if len(all) != 2 {
		t.Fatalf("Load: expected 2 anchors, got %d", len(all))
	}
	bd1 := reloaded.Get(testutils.ExternalTxID(t, "bd1")).UnwrapOr(nil)
	if bd1 == nil || bd1.ExternalHeight != 2 || bd1.Link.IsGenesis() {
		t.Fatalf("Load: unexpected bd1 %v", bd1)
	}
	if len(reloaded.FindByPredecessor(externalapi.LinkedTo(testutils.ExternalTxID(t, "bc1")))) != 1 {
		t.Fatalf("Load: predecessor index wasn't rebuilt")
	}

	// Anchors from other buckets are not loaded
	other := New(database.MakeBucket([]byte("other")))
	err = other.Load(dbManager)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if other.Count() != 0 {
		t.Fatalf("Load: expected an empty store, got %d anchors", other.Count())
	}
}

func TestInsertPredecessorAfterSuccessor(t *testing.T) {
	dbManager, _, teardown := testutils.NewTestDBManager(t, "TestInsertPredecessorAfterSuccessor")
	defer teardown()
	store := New(prefixBucket)

	// be1 arrives before the anchor it links to
	be1 := testutils.NewAnchor(t, "be1", "bc1", 20, 2)
	_, err := store.Insert(dbManager, be1, be1.ExternalTxID, 2, false)
	if err != nil {
		t.Fatalf("Insert be1: %s", err)
	}

	tooHigh := testutils.NewAnchor(t, "bc1", "", 25, 1)
	_, err = store.Insert(dbManager, tooHigh, tooHigh.ExternalTxID, 1, false)
	if !errors.Is(err, ruleerrors.ErrAnchorHeightNotIncreasing) {
		t.Fatalf("Insert bc1 above its stored successor: expected ErrAnchorHeightNotIncreasing, got %v", err)
	}
	if store.Get(tooHigh.ExternalTxID).IsSome() {
		t.Fatalf("Get: a rejected predecessor was stored")
	}

	below := testutils.NewAnchor(t, "bc1", "", 15, 1)
	inserted, err := store.Insert(dbManager, below, below.ExternalTxID, 1, false)
	if err != nil || !inserted {
		t.Fatalf("Insert bc1 below its stored successor: inserted %t, err %v", inserted, err)
	}

	// Deleting the successor lifts the restriction
	_, err = store.DeleteByExternalTxID(dbManager, be1.ExternalTxID)
	if err != nil {
		t.Fatalf("DeleteByExternalTxID: %s", err)
	}
	inserted, err = store.Insert(dbManager, tooHigh, tooHigh.ExternalTxID, 1, true)
	if err != nil || !inserted {
		t.Fatalf("Insert bc1 after deleting its successor: inserted %t, err %v", inserted, err)
	}
}
