package app

import (
	"sync/atomic"

	"github.com/anchornet/anchord/domain"
	"github.com/anchornet/anchord/domain/consensus"
	"github.com/anchornet/anchord/infrastructure/config"
	infrastructuredatabase "github.com/anchornet/anchord/infrastructure/db/database"
	"github.com/anchornet/anchord/infrastructure/metrics"
)

// ComponentManager is a wrapper for all the anchord services
type ComponentManager struct {
	cfg           *config.Config
	domain        domain.Domain
	metricsServer *metrics.Server

	started, shutdown int32
}

// Start launches all the anchord services.
func (a *ComponentManager) Start() {
	// Already started?
	if atomic.AddInt32(&a.started, 1) != 1 {
		return
	}

	log.Trace("Starting anchord")

	if a.metricsServer != nil {
		a.metricsServer.Start()
	}
}

// Stop gracefully shuts down all the anchord services.
func (a *ComponentManager) Stop() {
	// Make sure this only happens once.
	if atomic.AddInt32(&a.shutdown, 1) != 1 {
		log.Infof("Anchord is already in the process of shutting down")
		return
	}

	log.Warnf("Anchord shutting down")

	if a.metricsServer != nil {
		err := a.metricsServer.Stop()
		if err != nil {
			log.Errorf("Error stopping the metrics server: %+v", err)
		}
	}
}

// Domain returns the Domain managed by this ComponentManager
func (a *ComponentManager) Domain() domain.Domain {
	return a.domain
}

// NewComponentManager returns a new ComponentManager instance.
// Use Start() to begin all services within this ComponentManager
func NewComponentManager(cfg *config.Config, db infrastructuredatabase.Database) (*ComponentManager, error) {
	consensusConfig := consensus.Config{
		Params: *cfg.NetParams(),
	}

	domainInstance, err := domain.New(&consensusConfig, db)
	if err != nil {
		return nil, err
	}

	if cfg.ResetNotaryState {
		log.Warnf("Resetting the notary state")
		err := domainInstance.ResetNotaryState()
		if err != nil {
			return nil, err
		}
	}

	var metricsServer *metrics.Server
	if cfg.MetricsListen != "" {
		metricsServer, err = metrics.NewServer(cfg.MetricsListen)
		if err != nil {
			return nil, err
		}
	}

	return &ComponentManager{
		cfg:           cfg,
		domain:        domainInstance,
		metricsServer: metricsServer,
	}, nil
}
