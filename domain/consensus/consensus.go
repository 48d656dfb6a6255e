package consensus

import (
	"sync"

	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	"github.com/anchornet/anchord/domain/consensus/ruleerrors"
	"github.com/anchornet/anchord/infrastructure/logger"
	"github.com/anchornet/anchord/infrastructure/metrics"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// Consensus maintains the notary anchor state of the node and validates
// coinbase transactions
type Consensus interface {
	ValidateCoinbase(coinbase *externalapi.DomainTransaction, blockHeight uint64) (ruleerrors.Verdict, error)

	AddAnchor(anchor *externalapi.Anchor, externalTxID *externalapi.ExternalTxID,
		externalHeight uint64, overwrite bool) (activeChanged bool, err error)
	DeleteAnchorByExternalTx(externalTxID *externalapi.ExternalTxID) (deleted bool, activeChanged bool, err error)
	UpdateExternalHeight(externalHeight uint64) (activeChanged bool, err error)

	ActiveAnchor() fn.Option[*externalapi.Anchor]
	ExternalHeight() uint64
	GetAnchor(externalTxID *externalapi.ExternalTxID) fn.Option[*externalapi.Anchor]
	AnchorCount() int
}

type consensus struct {
	lock            *sync.Mutex
	databaseContext model.DBManager

	coinbaseValidator   model.CoinbaseValidator
	anchorAuthenticator model.AnchorAuthenticator
	anchorActivator     model.AnchorActivator

	anchorStore      model.AnchorStore
	notaryStateStore model.NotaryStateStore
}

// ValidateCoinbase checks coinbase against the reward rules in effect at
// blockHeight. Rule violations are reported in the verdict; only
// unexpected failures are returned as errors.
func (s *consensus) ValidateCoinbase(coinbase *externalapi.DomainTransaction,
	blockHeight uint64) (ruleerrors.Verdict, error) {

	verdict, err := ruleerrors.VerdictFromError(s.coinbaseValidator.ValidateCoinbase(coinbase, blockHeight))
	if err != nil {
		return ruleerrors.Verdict{}, err
	}
	if !verdict.Accepted {
		log.Debugf("Coinbase at height %d rejected: %s", blockHeight, verdict.DebugMessage)
		log.Tracef("Rejected coinbase: %s", logger.NewLogClosure(func() string {
			return spewTransaction(coinbase)
		}))
	}
	metrics.RecordCoinbaseVerdict(verdict.Accepted, verdict.ReasonCode)
	return verdict, nil
}

// AddAnchor stores anchor as carried by externalTxID at externalHeight in
// the notary chain and re-derives the active anchor. It fails with
// ErrUnauthenticatedAnchor if the authenticator rejects the anchor and with
// ErrDuplicateAnchor if externalTxID is already stored and overwrite is
// false.
func (s *consensus) AddAnchor(anchor *externalapi.Anchor, externalTxID *externalapi.ExternalTxID,
	externalHeight uint64, overwrite bool) (bool, error) {

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.anchorAuthenticator.IsAuthenticated(anchor) {
		return false, errors.Wrapf(ruleerrors.ErrUnauthenticatedAnchor,
			"anchor of local height %d carried by %s", anchor.LocalHeight, externalTxID)
	}

	inserted, err := s.anchorStore.Insert(s.databaseContext, anchor, externalTxID, externalHeight, overwrite)
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, errors.Wrapf(ruleerrors.ErrDuplicateAnchor, "anchor carried by %s", externalTxID)
	}
	metrics.StoredAnchors.Set(float64(s.anchorStore.Count()))

	stored := s.anchorStore.Get(externalTxID).UnsafeFromSome()
	return s.recordActivation(s.anchorActivator.OnAnchorInserted(stored)), nil
}

// DeleteAnchorByExternalTx removes the anchor carried by externalTxID, as
// when a notary chain reorg drops that transaction. deleted is false if no
// such anchor was stored.
func (s *consensus) DeleteAnchorByExternalTx(externalTxID *externalapi.ExternalTxID) (bool, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	deleted, err := s.anchorStore.DeleteByExternalTxID(s.databaseContext, externalTxID)
	if err != nil {
		return false, false, err
	}
	if !deleted {
		log.Debugf("No anchor is carried by %s, nothing to delete", externalTxID)
		return false, false, nil
	}
	metrics.StoredAnchors.Set(float64(s.anchorStore.Count()))

	return true, s.recordActivation(s.anchorActivator.OnAnchorDeleted(externalTxID)), nil
}

// UpdateExternalHeight persists the notary chain height and re-derives the
// active anchor. The height may go down on a notary chain reorg.
func (s *consensus) UpdateExternalHeight(externalHeight uint64) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := s.notaryStateStore.SetExternalHeight(s.databaseContext, externalHeight)
	if err != nil {
		return false, err
	}
	metrics.ExternalHeight.Set(float64(externalHeight))

	return s.recordActivation(s.anchorActivator.OnExternalHeightChanged(externalHeight)), nil
}

// ActiveAnchor returns a copy of the active anchor, if any
func (s *consensus) ActiveAnchor() fn.Option[*externalapi.Anchor] {
	s.lock.Lock()
	defer s.lock.Unlock()

	return cloneAnchorOption(s.anchorActivator.ActiveAnchor())
}

func (s *consensus) ExternalHeight() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.anchorActivator.ExternalHeight()
}

// GetAnchor returns a copy of the anchor carried by externalTxID, if stored
func (s *consensus) GetAnchor(externalTxID *externalapi.ExternalTxID) fn.Option[*externalapi.Anchor] {
	s.lock.Lock()
	defer s.lock.Unlock()

	return cloneAnchorOption(s.anchorStore.Get(externalTxID))
}

func (s *consensus) AnchorCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.anchorStore.Count()
}

func (s *consensus) recordActivation(changed bool) bool {
	if !changed {
		return false
	}
	active := s.anchorActivator.ActiveAnchor()
	metrics.RecordActiveAnchor(active.IsSome(), fn.MapOptionZ(active, func(anchor *externalapi.Anchor) uint64 {
		return anchor.LocalHeight
	}))
	return true
}

func cloneAnchorOption(anchor fn.Option[*externalapi.Anchor]) fn.Option[*externalapi.Anchor] {
	return fn.MapOption(func(anchor *externalapi.Anchor) *externalapi.Anchor {
		return anchor.Clone()
	})(anchor)
}
