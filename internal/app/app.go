// Package app composes the bootstrap chain: configuration in, bound server,
// registered sessions, then the engine's event loop. Control flows strictly
// forward; nothing here runs concurrently.
package app

import (
	"context"

	"rtspproxy_go/internal/bootstrap"
	"rtspproxy_go/internal/defs"
	"rtspproxy_go/internal/engine"
	"rtspproxy_go/internal/logger"
	"rtspproxy_go/internal/types"
)

// Realm announced by the server when client access control is enabled.
const Realm = "RTSP Proxy Server"

// App is the application's main struct.
type App struct {
	cfg *types.Config
	eng engine.Engine
	srv engine.Server
}

// New creates a new App instance around the parsed configuration and the
// streaming engine.
func New(cfg *types.Config, eng engine.Engine) *App {
	return &App{cfg: cfg, eng: eng}
}

// Bootstrap stands up the server and registers all definition-file sessions.
// It returns a bootstrap.ErrBind-kind error when no port could be bound.
func (a *App) Bootstrap() error {
	var auth *engine.AuthDatabase
	if a.cfg.Username != "" {
		auth = engine.NewAuthDatabase(Realm)
		auth.InsertUserRecord(a.cfg.Username, a.cfg.Password)
	}

	srv, err := bootstrap.Server(a.eng, a.cfg.RTSPPort, auth)
	if err != nil {
		return err
	}
	a.srv = srv
	logger.Info().Int("port", srv.Port()).Msg("RTSP server created")

	if a.cfg.TunnelPort > 0 {
		if tunneler, ok := srv.(engine.HTTPTunneler); ok {
			if !tunneler.SetupTunnelingOverHTTP(a.cfg.TunnelPort) {
				logger.Warn().Int("port", a.cfg.TunnelPort).Msg("(RTSP-over-HTTP tunneling is not available.)")
			}
		}
	}

	loader := defs.New(a.eng, srv, engine.SessionOptions{
		Username:   a.cfg.Username,
		Password:   a.cfg.Password,
		TunnelPort: a.cfg.TunnelPort,
		Verbosity:  a.cfg.Verbosity,
	})
	count := loader.Load(a.cfg.DefsPath)
	logger.Info().Int("count", count).Msg("proxy sessions registered")

	return nil
}

// Run bootstraps and then transfers control to the engine's event loop. With
// a background context this does not return under normal operation.
func (a *App) Run(ctx context.Context) error {
	if err := a.Bootstrap(); err != nil {
		return err
	}
	return a.eng.RunEventLoop(ctx)
}

// Server exposes the bound server handle after a successful Bootstrap.
func (a *App) Server() engine.Server {
	return a.srv
}
