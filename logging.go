package focstest

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
)

// NewLogger builds a terminal logger filtered at the given level and
// installs it as the process default so package-level loggers pick it up.
func NewLogger(level string) (log.Logger, error) {
	lvl, err := log.LvlFromString(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
	log.SetDefault(logger)
	return logger, nil
}
