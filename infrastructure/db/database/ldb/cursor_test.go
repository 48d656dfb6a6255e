package ldb

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/anchornet/anchord/infrastructure/db/database"
)

// TestCursorPrefixedBuckets walks a bucket nested under a one-byte prefix,
// the layout the notary state is stored in, and makes sure neither a
// sibling prefix nor a sibling bucket leaks into the iteration.
func TestCursorPrefixedBuckets(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorPrefixedBuckets")
	defer teardownFunc()

	anchors := database.MakeBucket([]byte{0}).Bucket([]byte("anchors"))
	otherPrefixAnchors := database.MakeBucket([]byte{1}).Bucket([]byte("anchors"))
	notaryState := database.MakeBucket([]byte{0}).Bucket([]byte("notary-state"))

	for i := 0; i < 5; i++ {
		err := ldb.Put(anchors.Key([]byte(fmt.Sprintf("tx%d", i))), []byte(fmt.Sprintf("anchor%d", i)))
		if err != nil {
			t.Fatalf("TestCursorPrefixedBuckets: Put unexpectedly failed: %s", err)
		}
	}
	err := ldb.Put(otherPrefixAnchors.Key([]byte("tx9")), []byte("stale"))
	if err != nil {
		t.Fatalf("TestCursorPrefixedBuckets: Put unexpectedly failed: %s", err)
	}
	err = ldb.Put(notaryState.Key([]byte("height")), []byte{42})
	if err != nil {
		t.Fatalf("TestCursorPrefixedBuckets: Put unexpectedly failed: %s", err)
	}

	cursor, err := ldb.Cursor(anchors)
	if err != nil {
		t.Fatalf("TestCursorPrefixedBuckets: Cursor unexpectedly failed: %s", err)
	}
	defer cursor.Close()

	i := 0
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			t.Fatalf("TestCursorPrefixedBuckets: Key unexpectedly failed: %s", err)
		}
		expectedSuffix := []byte(fmt.Sprintf("tx%d", i))
		if !bytes.Equal(key.Suffix(), expectedSuffix) {
			t.Fatalf("TestCursorPrefixedBuckets: wrong suffix at position %d. Want: %s, got: %s",
				i, expectedSuffix, key.Suffix())
		}
		if !bytes.Equal(key.Bytes(), anchors.Key(expectedSuffix).Bytes()) {
			t.Fatalf("TestCursorPrefixedBuckets: key at position %d is not in the anchors bucket: %s", i, key)
		}
		value, err := cursor.Value()
		if err != nil {
			t.Fatalf("TestCursorPrefixedBuckets: Value unexpectedly failed: %s", err)
		}
		if string(value) != fmt.Sprintf("anchor%d", i) {
			t.Fatalf("TestCursorPrefixedBuckets: wrong value at position %d: %s", i, value)
		}
		i++
	}
	if i != 5 {
		t.Fatalf("TestCursorPrefixedBuckets: cursor visited %d entries, want 5", i)
	}

	// Exhausted cursors report ErrNotFound
	_, err = cursor.Key()
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorPrefixedBuckets: Key of an exhausted cursor returned wrong error: %v", err)
	}
	_, err = cursor.Value()
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorPrefixedBuckets: Value of an exhausted cursor returned wrong error: %v", err)
	}
}

func TestCursorSeek(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorSeek")
	defer teardownFunc()

	bucket := database.MakeBucket([]byte("anchors"))
	for _, suffix := range []string{"bc1", "bd1", "be1"} {
		err := ldb.Put(bucket.Key([]byte(suffix)), []byte(suffix))
		if err != nil {
			t.Fatalf("TestCursorSeek: Put unexpectedly failed: %s", err)
		}
	}

	cursor, err := ldb.Cursor(bucket)
	if err != nil {
		t.Fatalf("TestCursorSeek: Cursor unexpectedly failed: %s", err)
	}
	defer cursor.Close()

	err = cursor.Seek(bucket.Key([]byte("bd1")))
	if err != nil {
		t.Fatalf("TestCursorSeek: Seek unexpectedly failed: %s", err)
	}
	value, err := cursor.Value()
	if err != nil {
		t.Fatalf("TestCursorSeek: Value unexpectedly failed: %s", err)
	}
	if string(value) != "bd1" {
		t.Fatalf("TestCursorSeek: Seek landed on %s, want bd1", value)
	}

	// Seeking a missing key fails even if a greater key exists
	err = cursor.Seek(bucket.Key([]byte("bc2")))
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorSeek: Seek of a missing key returned wrong error: %v", err)
	}
}

func TestCursorClosed(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorClosed")
	defer teardownFunc()

	cursor, err := ldb.Cursor(database.MakeBucket([]byte("anchors")))
	if err != nil {
		t.Fatalf("TestCursorClosed: Cursor unexpectedly failed: %s", err)
	}
	err = cursor.Close()
	if err != nil {
		t.Fatalf("TestCursorClosed: Close unexpectedly failed: %s", err)
	}

	tests := []struct {
		name     string
		function func() error
	}{
		{name: "Seek", function: func() error { return cursor.Seek(database.MakeBucket().Key([]byte{})) }},
		{name: "Key", function: func() error { _, err := cursor.Key(); return err }},
		{name: "Value", function: func() error { _, err := cursor.Value(); return err }},
		{name: "Close", function: cursor.Close},
	}
	for _, test := range tests {
		err := test.function()
		if err == nil || !strings.Contains(err.Error(), "closed cursor") {
			t.Fatalf("TestCursorClosed: %s after Close returned wrong error: %v", test.name, err)
		}
	}

	for name, function := range map[string]func() bool{"First": cursor.First, "Next": cursor.Next} {
		func() {
			defer func() {
				panicErr := recover()
				if panicErr == nil || !strings.Contains(fmt.Sprintf("%v", panicErr), "closed cursor") {
					t.Fatalf("TestCursorClosed: %s after Close didn't panic as expected: %v", name, panicErr)
				}
			}()
			function()
		}()
	}
}
