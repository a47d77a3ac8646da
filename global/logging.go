package global

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// global Log
var Logger log.Logger

func init() {
	w := log.NewSyncWriter(os.Stderr)
	Logger = log.NewLogfmtLogger(w)
}

// SetupLogger applies the level filter for the configured mode
func SetupLogger(mode string) {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.With(log.NewLogfmtLogger(w), "ts", log.DefaultTimestampUTC)
	if mode == ModeDebug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	Logger = logger
}
