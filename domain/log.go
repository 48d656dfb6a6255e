package domain

import (
	"github.com/anchornet/anchord/infrastructure/logger"
)

var log = logger.RegisterSubSystem("DOMN")
