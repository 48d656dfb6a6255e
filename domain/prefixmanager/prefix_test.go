package prefixmanager

import (
	"testing"

	"github.com/anchornet/anchord/domain/prefixmanager/prefix"
	"github.com/anchornet/anchord/infrastructure/db/database"
	"github.com/anchornet/anchord/infrastructure/db/database/ldb"
)

func prepareDatabaseForTest(t *testing.T, testName string) (database.Database, func()) {
	db, err := ldb.NewLevelDB(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
}

func TestActivePrefixInitializesToZero(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestActivePrefixInitializesToZero")
	defer teardown()

	activePrefix, err := ActivePrefix(db)
	if err != nil {
		t.Fatalf("ActivePrefix: %s", err)
	}
	if !activePrefix.Equal(prefix.Zero()) {
		t.Fatalf("expected %s but got %s", prefix.Zero(), activePrefix)
	}

	activePrefix, err = ActivePrefix(db)
	if err != nil {
		t.Fatalf("ActivePrefix: %s", err)
	}
	if !activePrefix.Equal(prefix.Zero()) {
		t.Fatalf("expected %s after reopening but got %s", prefix.Zero(), activePrefix)
	}
}

func TestSwitchAndDeleteInactivePrefix(t *testing.T) {
	db, teardown := prepareDatabaseForTest(t, "TestSwitchAndDeleteInactivePrefix")
	defer teardown()

	oldPrefix, err := ActivePrefix(db)
	if err != nil {
		t.Fatalf("ActivePrefix: %s", err)
	}
	oldKey := database.MakeBucket(oldPrefix.Serialize()).Bucket([]byte("anchors")).Key([]byte("bc1"))
	err = db.Put(oldKey, []byte("anchor"))
	if err != nil {
		t.Fatalf("Put: %s", err)
	}

	newPrefix, err := SwitchActivePrefix(db)
	if err != nil {
		t.Fatalf("SwitchActivePrefix: %s", err)
	}
	if newPrefix.Equal(oldPrefix) {
		t.Fatalf("SwitchActivePrefix returned the old prefix %s", newPrefix)
	}
	newKey := database.MakeBucket(newPrefix.Serialize()).Bucket([]byte("anchors")).Key([]byte("bd1"))
	err = db.Put(newKey, []byte("anchor"))
	if err != nil {
		t.Fatalf("Put: %s", err)
	}

	err = DeleteInactivePrefix(db)
	if err != nil {
		t.Fatalf("DeleteInactivePrefix: %s", err)
	}

	hasOld, err := db.Has(oldKey)
	if err != nil {
		t.Fatalf("Has: %s", err)
	}
	if hasOld {
		t.Fatalf("data of the inactive prefix survived its deletion")
	}
	hasNew, err := db.Has(newKey)
	if err != nil {
		t.Fatalf("Has: %s", err)
	}
	if !hasNew {
		t.Fatalf("data of the active prefix was deleted")
	}

	activePrefix, err := ActivePrefix(db)
	if err != nil {
		t.Fatalf("ActivePrefix: %s", err)
	}
	if !activePrefix.Equal(newPrefix) {
		t.Fatalf("expected %s to be active but got %s", newPrefix, activePrefix)
	}

	err = DeleteInactivePrefix(db)
	if err != nil {
		t.Fatalf("DeleteInactivePrefix without an inactive prefix: %s", err)
	}
}

func TestDeserializeRejectsInvalidPrefixes(t *testing.T) {
	for _, prefixBytes := range [][]byte{nil, {2}, {0, 1}} {
		_, err := prefix.Deserialize(prefixBytes)
		if err == nil {
			t.Fatalf("Deserialize(%x) unexpectedly succeeded", prefixBytes)
		}
	}
}
