//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/cycle-advisor/internal/bootstrap"
	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
	"github.com/yanqian/cycle-advisor/internal/infra/config"
	httpiface "github.com/yanqian/cycle-advisor/internal/interface/http"
	"github.com/yanqian/cycle-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCycleConfig,
		provideLibrary,
		provideRateLimiter,
		cycle.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
