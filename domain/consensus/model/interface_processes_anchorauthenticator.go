package model

import "github.com/anchornet/anchord/domain/consensus/model/externalapi"

// AnchorAuthenticator reports whether an anchor carries enough valid quorum
// votes to be trusted. Signature checking and quorum membership live behind
// this interface.
type AnchorAuthenticator interface {
	IsAuthenticated(anchor *externalapi.Anchor) bool
}
