package coinbasevalidator

import "github.com/anchornet/anchord/infrastructure/logger"

var log = logger.RegisterSubSystem("CBVL")
