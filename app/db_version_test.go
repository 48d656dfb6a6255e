package app

import (
	"os"
	"strings"
	"testing"
)

func TestDatabaseVersion(t *testing.T) {
	dbPath, err := os.MkdirTemp("", "TestDatabaseVersion")
	if err != nil {
		t.Fatalf("MkdirTemp: %s", err)
	}
	defer os.RemoveAll(dbPath)

	exists, err := checkDatabaseVersion(dbPath)
	if err != nil {
		t.Fatalf("checkDatabaseVersion: %s", err)
	}
	if exists {
		t.Fatalf("expected no version file in a new database directory")
	}

	err = createDatabaseVersionFile(dbPath)
	if err != nil {
		t.Fatalf("createDatabaseVersionFile: %s", err)
	}
	exists, err = checkDatabaseVersion(dbPath)
	if err != nil {
		t.Fatalf("checkDatabaseVersion: %s", err)
	}
	if !exists {
		t.Fatalf("expected the version file to exist after creating it")
	}

	err = os.WriteFile(versionFilePath(dbPath), []byte("7"), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	_, err = checkDatabaseVersion(dbPath)
	if err == nil || !strings.Contains(err.Error(), "Invalid database version 7") {
		t.Fatalf("expected an invalid version error but got: %v", err)
	}

	err = os.WriteFile(versionFilePath(dbPath), []byte("one"), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	_, err = checkDatabaseVersion(dbPath)
	if err == nil {
		t.Fatalf("expected a malformed version file to fail")
	}
}

func TestCreateDatabaseVersionFileMissingDirectory(t *testing.T) {
	err := createDatabaseVersionFile("/nonexistent/anchord/data")
	if err == nil {
		t.Fatalf("expected creating a version file in a missing directory to fail")
	}
}
