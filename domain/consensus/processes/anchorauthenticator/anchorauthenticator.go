package anchorauthenticator

import (
	"github.com/anchornet/anchord/domain/consensus/model"
	"github.com/anchornet/anchord/domain/consensus/model/externalapi"
)

type acceptAll struct{}

// NewAcceptAll returns an AnchorAuthenticator that trusts every anchor. It
// is meant for nodes whose anchors are authenticated by the component
// feeding them in.
func NewAcceptAll() model.AnchorAuthenticator {
	return acceptAll{}
}

func (acceptAll) IsAuthenticated(*externalapi.Anchor) bool {
	return true
}

// Func adapts a function to an AnchorAuthenticator
type Func func(anchor *externalapi.Anchor) bool

// IsAuthenticated calls f(anchor)
func (f Func) IsAuthenticated(anchor *externalapi.Anchor) bool {
	return f(anchor)
}
