package app

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/anchornet/anchord/domain/chaincfg"
	"github.com/anchornet/anchord/domain/consensus"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/anchornet/anchord/domain/consensus/utils/anchorvotes"
	"github.com/anchornet/anchord/domain/consensus/utils/transactionhelper"
	"github.com/anchornet/anchord/infrastructure/os/signal"
	"github.com/pkg/errors"
)

const (
	eventTypeHeight   = "height"
	eventTypeAnchor   = "anchor"
	eventTypeDelete   = "delete"
	eventTypeCoinbase = "coinbase"

	maxEventLineSize = 1024 * 1024
)

// replayEvent is a single line of an events file. Which fields are read
// depends on Type.
type replayEvent struct {
	Type string `json:"type"`

	// height: the new notary chain height. coinbase: the block height.
	Height uint64 `json:"height"`

	// anchor and delete
	TxID string `json:"txid"`

	// anchor
	ExternalHeight uint64   `json:"externalHeight"`
	Predecessor    string   `json:"predecessor"`
	LocalHeight    uint64   `json:"localHeight"`
	BlockHash      string   `json:"blockHash"`
	Team           []string `json:"team"`
	Signers        []string `json:"signers"`
	Overwrite      bool     `json:"overwrite"`

	// coinbase
	Outputs []*replayOutput `json:"outputs"`
}

// replayOutput is a coinbase output. It pays to the network's foundation
// script if Foundation is set, to Address if it is set, and to the hex
// encoded Script otherwise.
type replayOutput struct {
	Value      uint64 `json:"value"`
	Foundation bool   `json:"foundation"`
	Address    string `json:"address"`
	Script     string `json:"script"`
	Token      uint32 `json:"token"`
}

type replaySummary struct {
	events            int
	activeChanges     int
	rejectedAnchors   int
	acceptedCoinbases int
	rejectedCoinbases int
	finalActive       string
}

func (s *replaySummary) String() string {
	return fmt.Sprintf("%d events, %d active anchor changes, %d rejected anchors, "+
		"%d accepted and %d rejected coinbases, active anchor: %s",
		s.events, s.activeChanges, s.rejectedAnchors,
		s.acceptedCoinbases, s.rejectedCoinbases, s.finalActive)
}

type eventReplayer struct {
	consensus consensus.Consensus
	params    *chaincfg.Params
	summary   *replaySummary
}

func replayEventsFile(consensusInstance consensus.Consensus, params *chaincfg.Params,
	path string, interrupt <-chan struct{}) (*replaySummary, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open events file %s", path)
	}
	defer file.Close()

	log.Infof("Replaying events from %s", path)
	return replayEvents(consensusInstance, params, file, interrupt)
}

// replayEvents applies the JSON-lines events read from reader to
// consensusInstance in order. Empty lines and lines starting with '#' are
// skipped. Rule violations are logged and counted; any other failure
// aborts the replay.
func replayEvents(consensusInstance consensus.Consensus, params *chaincfg.Params,
	reader io.Reader, interrupt <-chan struct{}) (*replaySummary, error) {

	replayer := &eventReplayer{
		consensus: consensusInstance,
		params:    params,
		summary:   &replaySummary{},
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxEventLineSize)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if signal.InterruptRequested(interrupt) {
			log.Warnf("Replay interrupted before line %d", lineNumber)
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		event := &replayEvent{}
		decoder := json.NewDecoder(bytes.NewReader(line))
		decoder.DisallowUnknownFields()
		err := decoder.Decode(event)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: malformed event", lineNumber)
		}

		err = replayer.apply(event)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		replayer.summary.events++
	}
	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read events")
	}

	replayer.summary.finalActive = describeActive(consensusInstance)
	return replayer.summary, nil
}

func (r *eventReplayer) apply(event *replayEvent) error {
	switch event.Type {
	case eventTypeHeight:
		return r.applyHeight(event)
	case eventTypeAnchor:
		return r.applyAnchor(event)
	case eventTypeDelete:
		return r.applyDelete(event)
	case eventTypeCoinbase:
		return r.applyCoinbase(event)
	default:
		return errors.Errorf("unknown event type %q", event.Type)
	}
}

func (r *eventReplayer) applyHeight(event *replayEvent) error {
	changed, err := r.consensus.UpdateExternalHeight(event.Height)
	if err != nil {
		return err
	}
	r.recordTransition(fmt.Sprintf("notary height %d", event.Height), changed)
	return nil
}

func (r *eventReplayer) applyAnchor(event *replayEvent) error {
	externalTxID, err := externalapi.NewExternalTxIDFromString(event.TxID)
	if err != nil {
		return err
	}
	votes, err := event.authVotes()
	if err != nil {
		return err
	}

	anchor, err := anchorvotes.NewAnchor(votes)
	if err == nil {
		var changed bool
		changed, err = r.consensus.AddAnchor(anchor, externalTxID, event.ExternalHeight, event.Overwrite)
		if err == nil {
			r.recordTransition(fmt.Sprintf("anchor %s", externalTxID), changed)
			return nil
		}
	}
	if !isRuleError(err) {
		return err
	}
	log.Infof("Anchor %s rejected: %s", externalTxID, err)
	r.summary.rejectedAnchors++
	return nil
}

func (r *eventReplayer) applyDelete(event *replayEvent) error {
	externalTxID, err := externalapi.NewExternalTxIDFromString(event.TxID)
	if err != nil {
		return err
	}
	deleted, changed, err := r.consensus.DeleteAnchorByExternalTx(externalTxID)
	if err != nil {
		return err
	}
	if !deleted {
		log.Infof("Nothing to delete for %s", externalTxID)
		return nil
	}
	r.recordTransition(fmt.Sprintf("deletion of %s", externalTxID), changed)
	return nil
}

func (r *eventReplayer) applyCoinbase(event *replayEvent) error {
	outputs := make([]*externalapi.DomainTransactionOutput, len(event.Outputs))
	for i, output := range event.Outputs {
		scriptPublicKey, err := output.scriptPublicKey(r.params)
		if err != nil {
			return errors.Wrapf(err, "output %d", i)
		}
		outputs[i] = &externalapi.DomainTransactionOutput{
			Value:           output.Value,
			ScriptPublicKey: scriptPublicKey,
			TokenID:         externalapi.TokenID(output.Token),
		}
	}

	coinbase, err := transactionhelper.NewCoinbaseTransaction(event.Height, outputs)
	if err != nil {
		return err
	}
	verdict, err := r.consensus.ValidateCoinbase(coinbase, event.Height)
	if err != nil {
		return err
	}
	if verdict.Accepted {
		log.Infof("Coinbase at height %d accepted", event.Height)
		r.summary.acceptedCoinbases++
		return nil
	}
	log.Infof("Coinbase at height %d rejected: %s", event.Height, verdict.DebugMessage)
	r.summary.rejectedCoinbases++
	return nil
}

func (r *eventReplayer) recordTransition(cause string, changed bool) {
	if !changed {
		log.Debugf("Active anchor unchanged after %s", cause)
		return
	}
	r.summary.activeChanges++
	log.Infof("Active anchor after %s: %s", cause, describeActive(r.consensus))
}

func (event *replayEvent) authVotes() ([]*externalapi.AuthVote, error) {
	link := externalapi.GenesisLink()
	if event.Predecessor != "" {
		predecessor, err := externalapi.NewExternalTxIDFromString(event.Predecessor)
		if err != nil {
			return nil, err
		}
		link = externalapi.LinkedTo(predecessor)
	}

	blockHash, err := externalapi.NewDomainHashFromString(event.BlockHash)
	if err != nil {
		return nil, err
	}

	team, err := parseTeamMemberIDs(event.Team)
	if err != nil {
		return nil, errors.Wrap(err, "malformed team")
	}
	signers := team
	if len(event.Signers) > 0 {
		signers, err = parseTeamMemberIDs(event.Signers)
		if err != nil {
			return nil, errors.Wrap(err, "malformed signers")
		}
	}

	votes := make([]*externalapi.AuthVote, len(signers))
	for i, signer := range signers {
		votes[i] = &externalapi.AuthVote{
			Link:           link,
			LocalHeight:    event.LocalHeight,
			LocalBlockHash: blockHash,
			Team:           team,
			Signer:         signer,
		}
	}
	return votes, nil
}

func (output *replayOutput) scriptPublicKey(params *chaincfg.Params) ([]byte, error) {
	switch {
	case output.Foundation:
		return params.FoundationShareScript, nil
	case output.Address != "":
		return chaincfg.FoundationScriptFromAddress(output.Address, params.NotaryNetParams)
	default:
		script, err := hex.DecodeString(output.Script)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed script %s", output.Script)
		}
		return script, nil
	}
}

func parseTeamMemberIDs(memberStrings []string) ([]externalapi.TeamMemberID, error) {
	members := make([]externalapi.TeamMemberID, len(memberStrings))
	for i, memberString := range memberStrings {
		memberBytes, err := hex.DecodeString(memberString)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed team member %s", memberString)
		}
		if len(memberBytes) != externalapi.TeamMemberIDSize {
			return nil, errors.Errorf("team member %s is %d bytes long instead of %d",
				memberString, len(memberBytes), externalapi.TeamMemberIDSize)
		}
		copy(members[i][:], memberBytes)
	}
	return members, nil
}

func isRuleError(err error) bool {
	var ruleErr ruleerrors.RuleError
	return errors.As(err, &ruleErr)
}

func describeActive(consensusInstance consensus.Consensus) string {
	active := consensusInstance.ActiveAnchor()
	if active.IsNone() {
		return "none"
	}
	return active.UnsafeFromSome().String()
}
