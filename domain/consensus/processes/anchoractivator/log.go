package anchoractivator

import "github.com/anchornet/anchord/infrastructure/logger"

var log = logger.RegisterSubSystem("ANAC")
