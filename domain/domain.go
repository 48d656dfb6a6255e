package domain

import (
	"sync/atomic"

	"github.com/anchornet/anchord/domain/consensus"
	"github.com/anchornet/anchord/domain/prefixmanager"
	infrastructuredatabase "github.com/anchornet/anchord/infrastructure/db/database"
)

// Domain provides a reference to the domain's external APIs
type Domain interface {
	Consensus() consensus.Consensus
	ResetNotaryState() error
}

type domain struct {
	consensus       atomic.Pointer[consensus.Consensus]
	consensusConfig *consensus.Config
	db              infrastructuredatabase.Database
}

func (d *domain) Consensus() consensus.Consensus {
	return *d.consensus.Load()
}

// ResetNotaryState drops every stored anchor and the persisted notary chain
// height, and replaces the consensus with an empty one. Callers holding the
// previous Consensus keep a stale instance.
func (d *domain) ResetNotaryState() error {
	newPrefix, err := prefixmanager.SwitchActivePrefix(d.db)
	if err != nil {
		return err
	}

	// The old data is deleted outside of the switching transaction so it
	// doesn't have to fit in a single batch.
	err = prefixmanager.DeleteInactivePrefix(d.db)
	if err != nil {
		return err
	}

	consensusInstance, err := consensus.NewFactory().NewConsensus(d.consensusConfig, d.db, newPrefix)
	if err != nil {
		return err
	}

	d.consensus.Store(&consensusInstance)
	log.Infof("Notary state reset")
	return nil
}

// New instantiates a new instance of a Domain object
func New(consensusConfig *consensus.Config, db infrastructuredatabase.Database) (Domain, error) {
	err := prefixmanager.DeleteInactivePrefix(db)
	if err != nil {
		return nil, err
	}

	activePrefix, err := prefixmanager.ActivePrefix(db)
	if err != nil {
		return nil, err
	}

	consensusInstance, err := consensus.NewFactory().NewConsensus(consensusConfig, db, activePrefix)
	if err != nil {
		return nil, err
	}

	d := &domain{
		consensusConfig: consensusConfig,
		db:              db,
	}
	d.consensus.Store(&consensusInstance)
	return d, nil
}
