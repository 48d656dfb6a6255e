package testutils

import (
	"os"
	"testing"

	"github.com/anchornet/anchord/domain/consensus/database"
	"github.com/anchornet/anchord/domain/consensus/model"
	infradatabase "github.com/anchornet/anchord/infrastructure/db/database"
	"github.com/anchornet/anchord/infrastructure/db/database/ldb"
)

// NewTestDatabase opens a leveldb instance in a fresh temporary directory.
// The returned teardown function closes it and removes the directory.
func NewTestDatabase(t testing.TB, testName string) (db infradatabase.Database, teardownFunc func()) {
	dataDir, err := os.MkdirTemp("", testName)
	if err != nil {
		t.Fatalf("%s: MkdirTemp unexpectedly failed: %s", testName, err)
	}
	db, err = ldb.NewLevelDB(dataDir, 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	teardownFunc = func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
		err = os.RemoveAll(dataDir)
		if err != nil {
			t.Fatalf("%s: RemoveAll unexpectedly failed: %s", testName, err)
		}
	}
	return db, teardownFunc
}

// NewTestDBManager is NewTestDatabase wrapped as a model.DBManager
func NewTestDBManager(t testing.TB, testName string) (dbManager model.DBManager, db infradatabase.Database, teardownFunc func()) {
	db, teardownFunc = NewTestDatabase(t, testName)
	return database.New(db), db, teardownFunc
}
