package notarystatestore

import (
	"github.com/anchornet/anchord/domain/consensus/database/serialization"
	"github.com/anchornet/anchord/domain/consensus/model"
)

var externalHeightKeyName = []byte("external-height")

// notaryStateStore persists the notary chain state reported to this node
type notaryStateStore struct {
	externalHeightKey model.DBKey
}

// New instantiates a new NotaryStateStore
func New(prefixBucket model.DBBucket) model.NotaryStateStore {
	return &notaryStateStore{
		externalHeightKey: prefixBucket.Bucket([]byte("notary-state")).Key(externalHeightKeyName),
	}
}

// ExternalHeight returns the last persisted notary chain height. It returns
// database.ErrNotFound if none was ever set.
func (nss *notaryStateStore) ExternalHeight(dbContext model.DBReader) (uint64, error) {
	externalHeightBytes, err := dbContext.Get(nss.externalHeightKey)
	if err != nil {
		return 0, err
	}
	return serialization.DeserializeUint64(externalHeightBytes)
}

// SetExternalHeight persists the notary chain height.
func (nss *notaryStateStore) SetExternalHeight(dbContext model.DBWriter, externalHeight uint64) error {
	return dbContext.Put(nss.externalHeightKey, serialization.SerializeUint64(externalHeight))
}
