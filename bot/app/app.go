// Package app assembles the bot: configuration, infrastructure
// bootstrap, and the wiring between Telegram routes and the dialogue
// engine.
package app

import (
	"fmt"

	"github.com/sosedi-ryadom/sosedibot/bot/engine"
	"github.com/sosedi-ryadom/sosedibot/bot/storage"
	"github.com/sosedi-ryadom/sosedibot/core/bootstrap"
	corecmd "github.com/sosedi-ryadom/sosedibot/core/cmd"
	coretelegram "github.com/sosedi-ryadom/sosedibot/core/telegram"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/state"
)

var _ engine.Store = (*storage.Store)(nil)

// App holds the assembled bot ready to produce Telegram run options.
type App struct {
	cfg    *Config
	engine *engine.Engine
}

// Bootstrap initializes the logger, database, and migrations, then
// builds the dialogue engine on top.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	eng := engine.New(storage.New(res.DB), state.NewMemoryManager())
	return &App{cfg: cfg, engine: eng}, nil
}

// TelegramRunOptions wires registry, routes, and middleware for the
// core Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	routes := a.buildRoutes(reg)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
	}, nil
}
