package anchorstore

import (
	"sort"

	"github.com/anchornet/anchord/domain/consensus/database/serialization"
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

var bucketName = []byte("anchors")

// anchorStore keeps every known anchor in memory, indexed by external tx id
// and by predecessor link, and writes through to the database.
// Returned anchors are shared and must not be modified.
type anchorStore struct {
	bucket   model.DBBucket
	anchors  map[externalapi.ExternalTxID]*externalapi.Anchor
	children map[externalapi.AnchorLink]map[externalapi.ExternalTxID]*externalapi.Anchor
}

// New instantiates a new AnchorStore
func New(prefixBucket model.DBBucket) model.AnchorStore {
	return &anchorStore{
		bucket:   prefixBucket.Bucket(bucketName),
		anchors:  make(map[externalapi.ExternalTxID]*externalapi.Anchor),
		children: make(map[externalapi.AnchorLink]map[externalapi.ExternalTxID]*externalapi.Anchor),
	}
}

// Insert stores anchor as carried by externalTxID at externalHeight. It
// returns false without touching the store if the id is already present and
// overwrite is false. Inserting an anchor whose local height would not be
// strictly between its stored predecessor's and its stored successors'
// fails with ErrAnchorHeightNotIncreasing.
//
// The check only sees what is already stored, so insertion order matters:
// an anchor stored before its predecessor makes that predecessor
// uninsertable unless its local height is below the successor's. The
// successor has to be deleted first to lift the restriction.
func (as *anchorStore) Insert(dbContext model.DBWriter, anchor *externalapi.Anchor,
	externalTxID *externalapi.ExternalTxID, externalHeight uint64, overwrite bool) (bool, error) {

	existing, exists := as.anchors[*externalTxID]
	if exists && !overwrite {
		log.Debugf("Anchor %s already stored, not overwriting", externalTxID)
		return false, nil
	}

	stored := anchor.Clone()
	stored.ExternalTxID = externalTxID.Clone()
	stored.ExternalHeight = externalHeight

	err := as.checkHeightOrdering(stored)
	if err != nil {
		return false, err
	}

	err = dbContext.Put(as.key(externalTxID), serialization.SerializeAnchor(stored))
	if err != nil {
		return false, err
	}

	if exists {
		as.unindex(existing)
		log.Debugf("Overwrote %s with %s", existing, stored)
	} else {
		log.Debugf("Inserted %s", stored)
	}
	as.index(stored)
	return true, nil
}

func (as *anchorStore) checkHeightOrdering(anchor *externalapi.Anchor) error {
	var err error
	anchor.Link.Predecessor().WhenSome(func(predecessorID externalapi.ExternalTxID) {
		if predecessorID == *anchor.ExternalTxID {
			err = errors.Wrapf(ruleerrors.ErrAnchorHeightNotIncreasing,
				"%s links to itself", anchor)
			return
		}
		predecessor, ok := as.anchors[predecessorID]
		if ok && anchor.LocalHeight <= predecessor.LocalHeight {
			err = errors.Wrapf(ruleerrors.ErrAnchorHeightNotIncreasing,
				"%s is not above its predecessor at local height %d",
				anchor, predecessor.LocalHeight)
		}
	})
	if err != nil {
		return err
	}

	for _, child := range as.children[externalapi.LinkedTo(anchor.ExternalTxID)] {
		if child.LocalHeight <= anchor.LocalHeight {
			return errors.Wrapf(ruleerrors.ErrAnchorHeightNotIncreasing,
				"%s is not below its successor %s", anchor, child)
		}
	}
	return nil
}

// DeleteByExternalTxID removes the anchor carried by externalTxID. It
// returns false if no such anchor is stored.
func (as *anchorStore) DeleteByExternalTxID(dbContext model.DBWriter, externalTxID *externalapi.ExternalTxID) (bool, error) {
	anchor, ok := as.anchors[*externalTxID]
	if !ok {
		return false, nil
	}

	err := dbContext.Delete(as.key(externalTxID))
	if err != nil {
		return false, err
	}
	as.unindex(anchor)
	log.Debugf("Deleted %s", anchor)
	return true, nil
}

// Get returns the anchor carried by externalTxID, if stored.
func (as *anchorStore) Get(externalTxID *externalapi.ExternalTxID) fn.Option[*externalapi.Anchor] {
	anchor, ok := as.anchors[*externalTxID]
	if !ok {
		return fn.None[*externalapi.Anchor]()
	}
	return fn.Some(anchor)
}

// FindByPredecessor returns the anchors whose link equals the given one,
// ordered by external tx id.
func (as *anchorStore) FindByPredecessor(link externalapi.AnchorLink) []*externalapi.Anchor {
	children := as.children[link]
	result := make([]*externalapi.Anchor, 0, len(children))
	for _, child := range children {
		result = append(result, child)
	}
	sortByExternalTxID(result)
	return result
}

// All returns every stored anchor, ordered by external tx id.
func (as *anchorStore) All() []*externalapi.Anchor {
	result := make([]*externalapi.Anchor, 0, len(as.anchors))
	for _, anchor := range as.anchors {
		result = append(result, anchor)
	}
	sortByExternalTxID(result)
	return result
}

func (as *anchorStore) Count() int {
	return len(as.anchors)
}

// Load replaces the in-memory state with the anchors persisted in dbContext.
func (as *anchorStore) Load(dbContext model.DBReader) error {
	cursor, err := dbContext.Cursor(as.bucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	as.anchors = make(map[externalapi.ExternalTxID]*externalapi.Anchor)
	as.children = make(map[externalapi.AnchorLink]map[externalapi.ExternalTxID]*externalapi.Anchor)
	for ok := cursor.First(); ok; ok = cursor.Next() {
		anchorBytes, err := cursor.Value()
		if err != nil {
			return err
		}
		anchor, err := serialization.DeserializeAnchor(anchorBytes)
		if err != nil {
			return err
		}
		as.index(anchor)
	}
	log.Infof("Loaded %d anchors", len(as.anchors))
	return nil
}

func (as *anchorStore) index(anchor *externalapi.Anchor) {
	as.anchors[*anchor.ExternalTxID] = anchor
	siblings, ok := as.children[anchor.Link]
	if !ok {
		siblings = make(map[externalapi.ExternalTxID]*externalapi.Anchor)
		as.children[anchor.Link] = siblings
	}
	siblings[*anchor.ExternalTxID] = anchor
}

func (as *anchorStore) unindex(anchor *externalapi.Anchor) {
	delete(as.anchors, *anchor.ExternalTxID)
	siblings := as.children[anchor.Link]
	delete(siblings, *anchor.ExternalTxID)
	if len(siblings) == 0 {
		delete(as.children, anchor.Link)
	}
}

func (as *anchorStore) key(externalTxID *externalapi.ExternalTxID) model.DBKey {
	return as.bucket.Key(externalTxID.ByteSlice())
}

func sortByExternalTxID(anchors []*externalapi.Anchor) {
	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].ExternalTxID.Less(anchors[j].ExternalTxID)
	})
}
