// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anchornet/anchord/infrastructure/logger"
	"github.com/anchornet/anchord/version"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename = "anchord.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "anchord.log"
	defaultErrLogFilename = "anchord_err.log"
	defaultDBCacheSizeMiB = 64
)

var (
	// DefaultAppDir is the default home directory for anchord.
	DefaultAppDir = btcutil.AppDataDir("anchord", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
)

//go:embed sample-anchord.conf
var sampleConfig []byte

// Flags defines the configuration options for anchord.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion      bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile       string `short:"C" long:"configfile" description:"Path to configuration file"`
	AppDir           string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir           string `long:"logdir" description:"Directory to log output."`
	LogLevel         string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	DBCacheSizeMiB   int    `long:"dbcachesize" description:"Size of the database cache in MiB"`
	EventsFile       string `long:"events" description:"Replay the notary and coinbase events in the given JSON-lines file, then exit"`
	MetricsListen    string `long:"metrics" description:"Serve prometheus metrics on the given interface/port at /metrics"`
	ResetNotaryState bool   `long:"reset-notary-state" description:"Delete every stored anchor and the notary chain height before starting"`
	NetworkFlags
}

// Config defines the configuration options for anchord.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// DataDir returns the directory the database of the active network lives in
func (cfg *Config) DataDir() string {
	return filepath.Join(cfg.AppDir, "data")
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:     defaultConfigFile,
		AppDir:         DefaultAppDir,
		LogLevel:       defaultLogLevel,
		DBCacheSizeMiB: defaultDBCacheSizeMiB,
		NetworkFlags: NetworkFlags{
			DIP1Height: noDIP1HeightOverride,
		},
	}
}

// LoadConfig loads the config from the command line and the config file,
// and initializes logging according to it.
func LoadConfig() (*Config, error) {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation. After log rotation has been initialized, the
	// logger variables may be used.
	logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename))

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		err := errors.Errorf("loadConfig: %s", err)
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	log.Infof("Loaded config for %s with data directory %s", cfg.NetParams().Name, cfg.DataDir())
	return cfg, nil
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in anchord functioning properly without any config settings
// while still allowing the user to override settings with config files and
// command line options. Command line options always take precedence.
func loadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified. Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Load additional config from file.
	parser := flags.NewParser(cfgFlags, flags.Default)
	cfg := &Config{
		Flags: cfgFlags,
	}
	if preCfg.ConfigFile == defaultConfigFile {
		if _, err := os.Stat(preCfg.ConfigFile); os.IsNotExist(err) {
			err := createDefaultConfigFile(preCfg.ConfigFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating a default config file: %s\n", err)
			}
		}
	}
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
			fmt.Fprintln(os.Stderr, usageMessage)
			return nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	// Append the network type to the app directory so it is "namespaced"
	// per network.
	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	cfg.AppDir = filepath.Join(cfg.AppDir, cfg.NetParams().Name)

	// Logs go to the network's app directory unless set explicitly.
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, defaultLogDirname)
	}
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	if cfg.DBCacheSizeMiB <= 0 {
		err := errors.Errorf("loadConfig: dbcachesize must be positive, got %d", cfg.DBCacheSizeMiB)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	if cfg.EventsFile != "" {
		cfg.EventsFile = cleanAndExpandPath(cfg.EventsFile)
	}

	return cfg, nil
}

// createDefaultConfigFile writes the sample config to the given destination path
func createDefaultConfigFile(destinationPath string) error {
	// Create the destination directory if it does not exists
	err := os.MkdirAll(filepath.Dir(destinationPath), 0700)
	if err != nil {
		return err
	}

	return os.WriteFile(destinationPath, sampleConfig, 0600)
}
