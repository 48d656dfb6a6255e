package anchorstore

import "github.com/anchornet/anchord/infrastructure/logger"

var log = logger.RegisterSubSystem("ANST")
