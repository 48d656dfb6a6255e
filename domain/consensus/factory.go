package consensus

import (
	"sync"

	"github.com/anchornet/anchord/domain/chaincfg"
	"github.com/anchornet/anchord/domain/consensus/database"
	"github.com/anchornet/anchord/domain/consensus/datastructures/anchorstore"
	"github.com/anchornet/anchord/domain/consensus/datastructures/notarystatestore"
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/processes/anchoractivator"
	"github.com/anchornet/anchord/domain/consensus/processes/anchorauthenticator"
	"github.com/anchornet/anchord/domain/consensus/processes/anchorselector"
	"github.com/anchornet/anchord/domain/consensus/processes/coinbasevalidator"
	"github.com/anchornet/anchord/domain/prefixmanager/prefix"
	infrastructuredatabase "github.com/anchornet/anchord/infrastructure/db/database"
	"github.com/anchornet/anchord/infrastructure/metrics"
)

// Config is the full config required to run consensus
type Config struct {
	chaincfg.Params

	// AnchorAuthenticator decides whether an anchor carries a valid quorum.
	// Every anchor is trusted when nil.
	AnchorAuthenticator model.AnchorAuthenticator
}

// Factory instantiates new Consensuses
type Factory interface {
	NewConsensus(config *Config, db infrastructuredatabase.Database, dbPrefix *prefix.Prefix) (Consensus, error)
}

type factory struct{}

// NewFactory creates a new Consensus factory
func NewFactory() Factory {
	return &factory{}
}

// NewConsensus instantiates a new Consensus over the data stored under
// dbPrefix, restoring the anchors and notary chain height persisted there
func (f *factory) NewConsensus(config *Config, db infrastructuredatabase.Database,
	dbPrefix *prefix.Prefix) (Consensus, error) {

	dbManager := database.New(db)
	prefixBucket := database.MakeBucket(dbPrefix.Serialize())

	// Data Structures
	anchorStore := anchorstore.New(prefixBucket)
	notaryStateStore := notarystatestore.New(prefixBucket)

	err := anchorStore.Load(dbManager)
	if err != nil {
		return nil, err
	}
	externalHeight, err := notaryStateStore.ExternalHeight(dbManager)
	if database.IsNotFoundError(err) {
		externalHeight = 0
	} else if err != nil {
		return nil, err
	}

	anchorAuthenticator := config.AnchorAuthenticator
	if anchorAuthenticator == nil {
		anchorAuthenticator = anchorauthenticator.NewAcceptAll()
	}

	// Processes
	coinbaseValidator := coinbasevalidator.New(
		config.DIP1Height,
		config.BaseSubsidy,
		config.SubsidyReductionInterval,
		config.FoundationShare,
		config.FoundationShareScript)
	anchorSelector := anchorselector.New()
	anchorActivator := anchoractivator.New(
		anchorStore,
		anchorSelector,
		externalHeight)

	c := &consensus{
		lock:            &sync.Mutex{},
		databaseContext: dbManager,

		coinbaseValidator:   coinbaseValidator,
		anchorAuthenticator: anchorAuthenticator,
		anchorActivator:     anchorActivator,

		anchorStore:      anchorStore,
		notaryStateStore: notaryStateStore,
	}

	metrics.StoredAnchors.Set(float64(anchorStore.Count()))
	metrics.ExternalHeight.Set(float64(externalHeight))
	anchorActivator.ActiveAnchor().WhenSome(func(anchor *externalapi.Anchor) {
		metrics.ActiveAnchorLocalHeight.Set(float64(anchor.LocalHeight))
	})

	log.Infof("Consensus for %s started at notary chain height %d with %d anchors",
		config.Name, externalHeight, anchorStore.Count())
	return c, nil
}
