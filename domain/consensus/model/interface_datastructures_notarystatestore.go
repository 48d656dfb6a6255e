package model

// NotaryStateStore represents a store for the last notary chain height
// reported to this node
type NotaryStateStore interface {
	ExternalHeight(dbContext DBReader) (uint64, error)
	SetExternalHeight(dbContext DBWriter, externalHeight uint64) error
}
