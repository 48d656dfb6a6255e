package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anchornet/anchord/domain/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const noDIP1HeightOverride = -1

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Regtest            bool   `long:"regtest" description:"Use the regression test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides consensus params (allowed only on regtest)"`
	DIP1Height         int64  `long:"dip1height" description:"Height from which the foundation reward is enforced (allowed only on regtest)"`
	FoundationAddress  string `long:"foundation-address" description:"Notary chain address the foundation share is paid to (allowed only on regtest)"`

	ActiveNetParams *chaincfg.Params
}

type overrideParamsConfig struct {
	DIP1Height               *uint64 `json:"dip1Height"`
	BaseSubsidy              *uint64 `json:"baseSubsidy"`
	SubsidyReductionInterval *uint64 `json:"subsidyReductionInterval"`
	FoundationShare          *uint64 `json:"foundationShare"`
	FoundationAddress        *string `json:"foundationAddress"`
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// NetParams holds the selected network parameters. Default value is main-net.
	params := &chaincfg.MainnetParams
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		params = &chaincfg.TestnetParams
	}
	if networkFlags.Regtest {
		numNets++
		params = &chaincfg.RegtestParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	// Overrides must never reach the package-level params.
	networkFlags.ActiveNetParams = params.Clone()

	err := networkFlags.overrideParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if !networkFlags.Regtest {
		switch {
		case networkFlags.OverrideParamsFile != "":
			return errors.Errorf("override-params-file is allowed only when using regtest")
		case networkFlags.DIP1Height != noDIP1HeightOverride:
			return errors.Errorf("dip1height is allowed only when using regtest")
		case networkFlags.FoundationAddress != "":
			return errors.Errorf("foundation-address is allowed only when using regtest")
		}
		return nil
	}

	err := networkFlags.overrideParamsFromFile()
	if err != nil {
		return err
	}

	if networkFlags.DIP1Height != noDIP1HeightOverride {
		if networkFlags.DIP1Height < 0 {
			return errors.Errorf("dip1height must not be negative, got %d", networkFlags.DIP1Height)
		}
		networkFlags.ActiveNetParams.DIP1Height = uint64(networkFlags.DIP1Height)
	}

	if networkFlags.FoundationAddress != "" {
		return networkFlags.setFoundationAddress(networkFlags.FoundationAddress)
	}
	return nil
}

func (networkFlags *NetworkFlags) overrideParamsFromFile() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return err
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", networkFlags.OverrideParamsFile)
	}

	if config.DIP1Height != nil {
		networkFlags.ActiveNetParams.DIP1Height = *config.DIP1Height
	}

	if config.BaseSubsidy != nil {
		networkFlags.ActiveNetParams.BaseSubsidy = *config.BaseSubsidy
	}

	if config.SubsidyReductionInterval != nil {
		networkFlags.ActiveNetParams.SubsidyReductionInterval = *config.SubsidyReductionInterval
	}

	if config.FoundationShare != nil {
		if *config.FoundationShare > chaincfg.Coin {
			return errors.Errorf("foundationShare %d is above %d", *config.FoundationShare, chaincfg.Coin)
		}
		networkFlags.ActiveNetParams.FoundationShare = *config.FoundationShare
	}

	if config.FoundationAddress != nil {
		return networkFlags.setFoundationAddress(*config.FoundationAddress)
	}

	return nil
}

func (networkFlags *NetworkFlags) setFoundationAddress(address string) error {
	script, err := chaincfg.FoundationScriptFromAddress(address, networkFlags.ActiveNetParams.NotaryNetParams)
	if err != nil {
		return err
	}
	networkFlags.ActiveNetParams.FoundationShareScript = script
	return nil
}
