package ruleerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrBadCoinbaseTransaction indicates that a transaction offered as a
	// coinbase does not have the coinbase shape: exactly one input whose
	// previous outpoint is null, and at least one output.
	ErrBadCoinbaseTransaction = newRuleError("ErrBadCoinbaseTransaction", "bad-cb-missing")

	// ErrBadCoinbaseHeight indicates that the height marker at the start of
	// the coinbase signature script is missing or doesn't match the block
	// height.
	ErrBadCoinbaseHeight = newRuleError("ErrBadCoinbaseHeight", "bad-cb-height")

	// ErrWrongTokenKind indicates that a coinbase output carries a token
	// other than the native coin.
	ErrWrongTokenKind = newRuleError("ErrWrongTokenKind", "bad-cb-wrong-tokens")

	// ErrMissingFoundationReward indicates that no coinbase output pays at
	// least the foundation share of the subsidy to the foundation script.
	ErrMissingFoundationReward = newRuleError("ErrMissingFoundationReward", "bad-cb-foundation-reward")

	// ErrBadCoinbaseAmount indicates that the coinbase outputs don't sum up
	// to exactly the block subsidy.
	ErrBadCoinbaseAmount = newRuleError("ErrBadCoinbaseAmount", "bad-cb-amount")

	// ErrDuplicateAnchor indicates that an anchor carried by the same
	// external transaction is already stored and overwriting wasn't
	// requested.
	ErrDuplicateAnchor = newRuleError("ErrDuplicateAnchor", "duplicate-anchor")

	// ErrBrokenAnchorChain indicates that an anchor's predecessor chain
	// doesn't reach the genesis link through stored, confirmed anchors.
	ErrBrokenAnchorChain = newRuleError("ErrBrokenAnchorChain", "broken-anchor-chain")

	// ErrAnchorHeightNotIncreasing indicates that an anchor's local height
	// isn't strictly greater than its predecessor's, or not strictly lower
	// than one of its stored successors'.
	ErrAnchorHeightNotIncreasing = newRuleError("ErrAnchorHeightNotIncreasing", "anchor-height-not-increasing")

	// ErrUnauthenticatedAnchor indicates that an anchor wasn't backed by
	// enough valid quorum votes.
	ErrUnauthenticatedAnchor = newRuleError("ErrUnauthenticatedAnchor", "anchor-unauthenticated")

	// ErrNoAuthVotes indicates an attempt to build an anchor out of an
	// empty vote set.
	ErrNoAuthVotes = newRuleError("ErrNoAuthVotes", "anchor-no-votes")

	// ErrInconsistentAuthVotes indicates that the votes an anchor is built
	// from don't attest the same predecessor, block and team.
	ErrInconsistentAuthVotes = newRuleError("ErrInconsistentAuthVotes", "anchor-inconsistent-votes")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a coinbase or an anchor failed due to one of the many
// validation rules. The caller can use type assertions to determine if a
// failure was specifically due to a rule violation.
type RuleError struct {
	message   string
	debugCode string
	inner     error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// ReasonCode returns the stable identifier of the violated rule.
func (e RuleError) ReasonCode() string {
	return e.message
}

// DebugCode returns the short reject string used in diagnostics.
func (e RuleError) DebugCode() string {
	return e.debugCode
}

func newRuleError(message string, debugCode string) RuleError {
	return RuleError{message: message, debugCode: debugCode, inner: nil}
}

// ErrUnknownAnchorPredecessor is the inner error of ErrBrokenAnchorChain
// when a predecessor is missing or unconfirmed.
type ErrUnknownAnchorPredecessor struct {
	Predecessor string
}

func (e ErrUnknownAnchorPredecessor) Error() string {
	return fmt.Sprintf("predecessor %s is missing or unconfirmed", e.Predecessor)
}

// NewErrBrokenAnchorChain creates a new ErrBrokenAnchorChain error carrying
// the missing predecessor. Match it with errors.As.
func NewErrBrokenAnchorChain(missingPredecessor fmt.Stringer) error {
	return errors.WithStack(RuleError{
		message:   ErrBrokenAnchorChain.message,
		debugCode: ErrBrokenAnchorChain.debugCode,
		inner:     ErrUnknownAnchorPredecessor{Predecessor: missingPredecessor.String()},
	})
}
