package coinbasevalidator

import (
	"math"
	"testing"

	"github.com/anchornet/anchord/domain/chaincfg"
)

func TestCalcBlockSubsidy(t *testing.T) {
	params := chaincfg.RegtestParams.Clone()
	validator := New(params.DIP1Height, params.BaseSubsidy, params.SubsidyReductionInterval,
		params.FoundationShare, params.FoundationShareScript).(*coinbaseValidator)

	tests := []struct {
		height   uint64
		expected uint64
	}{
		{height: 0, expected: 50 * chaincfg.Coin},
		{height: 149, expected: 50 * chaincfg.Coin},
		{height: 150, expected: 25 * chaincfg.Coin},
		{height: 300, expected: 1_250_000_000},
		{height: 150 * 63, expected: (50 * chaincfg.Coin) >> 63},
		{height: 150 * 64, expected: 0},
		{height: math.MaxUint64, expected: 0},
	}

	for _, test := range tests {
		subsidy := validator.calcBlockSubsidy(test.height)
		if subsidy != test.expected {
			t.Errorf("calcBlockSubsidy(%d): expected %d but got %d", test.height, test.expected, subsidy)
		}
	}
}

func TestCalcBlockSubsidyWithoutReduction(t *testing.T) {
	validator := New(0, 7*chaincfg.Coin, 0, 0, nil).(*coinbaseValidator)
	if subsidy := validator.calcBlockSubsidy(math.MaxUint64); subsidy != 7*chaincfg.Coin {
		t.Fatalf("expected an unreduced subsidy but got %d", subsidy)
	}
}

func TestCalcFoundationReward(t *testing.T) {
	tests := []struct {
		share    uint64
		subsidy  uint64
		expected uint64
	}{
		{share: 19 * chaincfg.Coin / 10 / 100, subsidy: 50 * chaincfg.Coin, expected: 95_000_000},
		{share: 10 * chaincfg.Coin / 100, subsidy: 200 * chaincfg.Coin, expected: 20 * chaincfg.Coin},
		{share: 10 * chaincfg.Coin / 100, subsidy: 9, expected: 0},
		{share: chaincfg.Coin, subsidy: 3, expected: 3},
		{share: 2 * chaincfg.Coin, subsidy: 3, expected: 3},
		{share: chaincfg.Coin - 1, subsidy: math.MaxUint64, expected: 18446743889242110877},
	}

	for _, test := range tests {
		validator := New(0, 0, 0, test.share, nil).(*coinbaseValidator)
		reward := validator.calcFoundationReward(test.subsidy)
		if reward != test.expected {
			t.Errorf("calcFoundationReward(%d) with share %d: expected %d but got %d",
				test.subsidy, test.share, test.expected, reward)
		}
	}
}

func TestExtractCoinbaseHeight(t *testing.T) {
	for _, height := range []uint64{0, 1, 16, 17, 127, 128, 255, 256, 356500, 10000000} {
		coinbase := buildCoinbase(t, height)
		extracted, ok := extractCoinbaseHeight(coinbase.Inputs[0].SignatureScript)
		if !ok {
			t.Fatalf("extractCoinbaseHeight(%d) found no height", height)
		}
		if extracted != height {
			t.Fatalf("extractCoinbaseHeight: expected %d but got %d", height, extracted)
		}
	}
}
