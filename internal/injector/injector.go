//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/hogar/internal/config"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/sim"
	"github.com/zeusync/hogar/internal/server"
)

var coreSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	sim.NewFactory,
)

func InitializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(coreSet, wire.FieldsOf(new(*config.Config), "Log", "Server", "Simulation"), server.New)
	return nil, nil, nil
}

func InitializeFactory(cfg *config.Config) (*sim.Factory, func(), error) {
	wire.Build(coreSet, wire.FieldsOf(new(*config.Config), "Log"))
	return nil, nil, nil
}
