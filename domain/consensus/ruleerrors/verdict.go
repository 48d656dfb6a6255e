package ruleerrors

import "github.com/pkg/errors"

// Verdict is the outcome of a validation as reported to block acceptance
// logic. DebugMessage is for logs only.
type Verdict struct {
	Accepted     bool
	ReasonCode   string
	DebugMessage string
}

// AcceptedVerdict is the verdict of a validation that passed.
var AcceptedVerdict = Verdict{Accepted: true}

// VerdictFromError converts the result of a validation into a Verdict.
// Errors that aren't rule violations are returned as-is.
func VerdictFromError(err error) (Verdict, error) {
	if err == nil {
		return AcceptedVerdict, nil
	}

	var ruleErr RuleError
	if !errors.As(err, &ruleErr) {
		return Verdict{}, err
	}
	return Verdict{
		Accepted:     false,
		ReasonCode:   ruleErr.ReasonCode(),
		DebugMessage: ruleErr.DebugCode() + ": " + err.Error(),
	}, nil
}
