package ruleerrors

import (
	"errors"
	"strings"
	"testing"

	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
	pkgerrors "github.com/pkg/errors"
)

func TestWrappedRuleErrorIsMatchable(t *testing.T) {
	outer := pkgerrors.Wrapf(ErrBadCoinbaseAmount, "coinbase pays %d while the subsidy is %d", 10, 9)
	if !errors.Is(outer, ErrBadCoinbaseAmount) {
		t.Fatal("TestWrappedRuleErrorIsMatchable: outer should match ErrBadCoinbaseAmount")
	}
	if errors.Is(outer, ErrMissingFoundationReward) {
		t.Fatal("TestWrappedRuleErrorIsMatchable: outer unexpectedly matches ErrMissingFoundationReward")
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestWrappedRuleErrorIsMatchable: Outer should contain RuleError in it")
	}
	if rule.message != "ErrBadCoinbaseAmount" {
		t.Fatalf("TestWrappedRuleErrorIsMatchable: Expected message = 'ErrBadCoinbaseAmount', found: '%s'", rule.message)
	}
	if rule.debugCode != "bad-cb-amount" {
		t.Fatalf("TestWrappedRuleErrorIsMatchable: Expected debugCode = 'bad-cb-amount', found: '%s'", rule.debugCode)
	}
}

func TestNewErrBrokenAnchorChain(t *testing.T) {
	missing, err := externalapi.NewExternalTxIDFromString("bc1")
	if err != nil {
		t.Fatalf("NewExternalTxIDFromString: %s", err)
	}
	outer := NewErrBrokenAnchorChain(missing)
	expectedOuterErr := "ErrBrokenAnchorChain: predecessor " + missing.String() + " is missing or unconfirmed"

	inner := &ErrUnknownAnchorPredecessor{}
	if !errors.As(outer, inner) {
		t.Fatal("TestNewErrBrokenAnchorChain: Outer should contain ErrUnknownAnchorPredecessor in it")
	}
	if inner.Predecessor != missing.String() {
		t.Fatalf("TestNewErrBrokenAnchorChain: Expected predecessor %s, found: %s", missing, inner.Predecessor)
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestNewErrBrokenAnchorChain: Outer should contain RuleError in it")
	}
	if rule.ReasonCode() != ErrBrokenAnchorChain.ReasonCode() {
		t.Fatalf("TestNewErrBrokenAnchorChain: Expected reason %s, found: %s",
			ErrBrokenAnchorChain.ReasonCode(), rule.ReasonCode())
	}
	if outer.Error() != expectedOuterErr {
		t.Fatalf("TestNewErrBrokenAnchorChain: Expected %s. found: %s", expectedOuterErr, outer.Error())
	}
}

func TestVerdictFromError(t *testing.T) {
	verdict, err := VerdictFromError(nil)
	if err != nil {
		t.Fatalf("VerdictFromError(nil): %s", err)
	}
	if verdict != AcceptedVerdict {
		t.Fatalf("VerdictFromError(nil): expected an accepted verdict, got %+v", verdict)
	}

	tests := []struct {
		err                error
		expectedReasonCode string
		expectedDebugCode  string
	}{
		{
			err:                pkgerrors.Wrap(ErrWrongTokenKind, "output 1 carries token 7"),
			expectedReasonCode: "ErrWrongTokenKind",
			expectedDebugCode:  "bad-cb-wrong-tokens",
		},
		{
			err:                pkgerrors.WithStack(ErrMissingFoundationReward),
			expectedReasonCode: "ErrMissingFoundationReward",
			expectedDebugCode:  "bad-cb-foundation-reward",
		},
		{
			err:                ErrBadCoinbaseAmount,
			expectedReasonCode: "ErrBadCoinbaseAmount",
			expectedDebugCode:  "bad-cb-amount",
		},
	}
	for _, test := range tests {
		verdict, err := VerdictFromError(test.err)
		if err != nil {
			t.Fatalf("VerdictFromError(%s): %s", test.err, err)
		}
		if verdict.Accepted {
			t.Fatalf("VerdictFromError(%s): unexpectedly accepted", test.err)
		}
		if verdict.ReasonCode != test.expectedReasonCode {
			t.Fatalf("VerdictFromError(%s): expected reason %s, got %s",
				test.err, test.expectedReasonCode, verdict.ReasonCode)
		}
		if !strings.HasPrefix(verdict.DebugMessage, test.expectedDebugCode+": ") {
			t.Fatalf("VerdictFromError(%s): expected debug message to start with %s, got %s",
				test.err, test.expectedDebugCode, verdict.DebugMessage)
		}
	}

	internalErr := pkgerrors.New("disk on fire")
	_, err = VerdictFromError(internalErr)
	if !errors.Is(err, internalErr) {
		t.Fatalf("VerdictFromError: expected the internal error to pass through, got %v", err)
	}
}
