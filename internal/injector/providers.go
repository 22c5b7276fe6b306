package injector

import (
	"github.com/zeusync/hogar/internal/config"
	"github.com/zeusync/hogar/internal/core/observability/log"
)

// ProvideLogger builds the process logger; the cleanup flushes it.
func ProvideLogger(cfg config.Log) (*log.Logger, func(), error) {
	logger, err := log.NewWithOptions(cfg.Options())
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}
