package prefixmanager

import (
	"github.com/anchornet/anchord/domain/prefixmanager/prefix"
	"github.com/anchornet/anchord/infrastructure/db/database"
)

var activePrefixKey = database.MakeBucket(nil).Key([]byte("active-prefix"))
var inactivePrefixKey = database.MakeBucket(nil).Key([]byte("inactive-prefix"))

// ActivePrefix returns the prefix of the notary state in use. A database
// that has none is initialized with prefix.Zero.
func ActivePrefix(db database.Database) (*prefix.Prefix, error) {
	activePrefix, exists, err := readPrefix(db, activePrefixKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return activePrefix, nil
	}

	activePrefix = prefix.Zero()
	log.Infof("Initializing the database with %s", activePrefix)
	err = db.Put(activePrefixKey, activePrefix.Serialize())
	if err != nil {
		return nil, err
	}
	return activePrefix, nil
}

// SwitchActivePrefix makes the other prefix active and marks the current
// one for deletion, in a single transaction. It returns the new active
// prefix.
func SwitchActivePrefix(db database.Database) (*prefix.Prefix, error) {
	activePrefix, err := ActivePrefix(db)
	if err != nil {
		return nil, err
	}
	newActivePrefix := activePrefix.Flip()

	dbTx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer dbTx.RollbackUnlessClosed()

	err = dbTx.Put(inactivePrefixKey, activePrefix.Serialize())
	if err != nil {
		return nil, err
	}
	err = dbTx.Put(activePrefixKey, newActivePrefix.Serialize())
	if err != nil {
		return nil, err
	}
	err = dbTx.Commit()
	if err != nil {
		return nil, err
	}

	log.Infof("Switched the active database prefix from %s to %s", activePrefix, newActivePrefix)
	return newActivePrefix, nil
}

// DeleteInactivePrefix deletes all data stored under the prefix marked for
// deletion, including the mark itself. It does nothing if no prefix is
// marked.
func DeleteInactivePrefix(db database.Database) error {
	inactivePrefix, exists, err := readPrefix(db, inactivePrefixKey)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	err = deletePrefix(db, inactivePrefix)
	if err != nil {
		return err
	}

	return db.Delete(inactivePrefixKey)
}

func readPrefix(db database.DataAccessor, key *database.Key) (*prefix.Prefix, bool, error) {
	prefixBytes, err := db.Get(key)
	if database.IsNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	p, err := prefix.Deserialize(prefixBytes)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func deletePrefix(db database.Database, p *prefix.Prefix) error {
	log.Infof("Deleting database %s", p)
	prefixBucket := database.MakeBucket(p.Serialize())
	cursor, err := db.Cursor(prefixBucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	var keys []*database.Key
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		keys = append(keys, prefixBucket.Key(append([]byte(nil), key.Suffix()...)))
	}

	for _, key := range keys {
		err := db.Delete(key)
		if err != nil {
			return err
		}
	}

	log.Infof("Deleted %d keys of %s", len(keys), p)
	return nil
}
