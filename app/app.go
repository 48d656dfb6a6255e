package app

import (
	"fmt"
	"os"
	"time"

	"github.com/anchornet/anchord/infrastructure/config"
	"github.com/anchornet/anchord/infrastructure/db/database"
	"github.com/anchornet/anchord/infrastructure/db/database/ldb"
	"github.com/anchornet/anchord/infrastructure/logger"
	"github.com/anchornet/anchord/infrastructure/os/signal"
	"github.com/anchornet/anchord/util/panics"
	"github.com/anchornet/anchord/version"
)

type anchordApp struct {
	cfg *config.Config
}

// StartApp starts the anchord app, and blocks until it finishes running
func StartApp() error {
	// Load configuration and parse command line. This function also
	// initializes logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	app := &anchordApp{cfg: cfg}
	return app.main(nil)
}

func (app *anchordApp) main(startedChan chan<- struct{}) error {
	// Get a channel that will be closed when a shutdown signal has been
	// triggered either from an OS signal such as SIGINT (Ctrl+C) or from
	// another subsystem.
	interrupt := signal.InterruptListener()
	defer log.Info("Shutdown complete")

	// Show version at startup.
	log.Infof("Version %s", version.Version())

	// Return now if an interrupt signal was triggered.
	if signal.InterruptRequested(interrupt) {
		return nil
	}

	// Open the database
	databaseContext, err := openDB(app.cfg)
	if err != nil {
		log.Errorf("Loading database failed: %+v", err)
		return err
	}

	defer func() {
		log.Infof("Gracefully shutting down the database...")
		err := databaseContext.Close()
		if err != nil {
			log.Errorf("Failed to close the database: %s", err)
		}
	}()

	// Return now if an interrupt signal was triggered.
	if signal.InterruptRequested(interrupt) {
		return nil
	}

	// Create componentManager and start it.
	componentManager, err := NewComponentManager(app.cfg, databaseContext)
	if err != nil {
		log.Errorf("Unable to start anchord: %+v", err)
		return err
	}

	defer func() {
		log.Infof("Gracefully shutting down anchord...")

		shutdownDone := make(chan int)
		go func() {
			componentManager.Stop()
			shutdownDone <- 1
		}()

		const shutdownTimeout = 2 * time.Minute

		select {
		case <-shutdownDone:
		case <-time.After(shutdownTimeout):
			log.Criticalf("Graceful shutdown timed out %s. Terminating...", shutdownTimeout)
		}
		log.Infof("Anchord shutdown complete")
	}()

	componentManager.Start()

	if startedChan != nil {
		startedChan <- struct{}{}
	}

	if app.cfg.EventsFile != "" {
		summary, err := replayEventsFile(componentManager.Domain().Consensus(),
			app.cfg.NetParams(), app.cfg.EventsFile, interrupt)
		if err != nil {
			log.Errorf("Replaying %s failed: %+v", app.cfg.EventsFile, err)
			return err
		}
		log.Infof("Replayed %s: %s", app.cfg.EventsFile, summary)
		return nil
	}

	// Wait until the interrupt signal is received from an OS signal or
	// shutdown is requested through one of the subsystems.
	<-interrupt
	return nil
}

// openDB opens the database of the active network, creating it and its
// version file if they don't exist yet.
func openDB(cfg *config.Config) (database.Database, error) {
	dbPath := cfg.DataDir()

	versionExists, err := checkDatabaseVersion(dbPath)
	if err != nil {
		return nil, err
	}

	log.Infof("Loading database from '%s'", dbPath)
	db, err := ldb.NewLevelDB(dbPath, cfg.DBCacheSizeMiB)
	if err != nil {
		return nil, err
	}

	if !versionExists {
		err := createDatabaseVersionFile(dbPath)
		if err != nil {
			closeErr := db.Close()
			if closeErr != nil {
				log.Errorf("Failed to close the database: %s", closeErr)
			}
			return nil, err
		}
	}

	return db, nil
}
