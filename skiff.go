package skiff

import (
	"github.com/skiff-web/skiff/config"
	"github.com/skiff-web/skiff/internal/server"
	"github.com/skiff-web/skiff/internal/server/pool"
	"github.com/skiff-web/skiff/internal/server/prefork"
	"github.com/skiff-web/skiff/router"
)

// Engine hosts the request-processing core. The two implementations differ
// in scheduling model only: same framing, same routing, same always-close
// responses.
type Engine interface {
	Serve(addr string) error
	Stop()
	State() server.State
}

// App wires an address, a config and one of the two engines together.
type App struct {
	addr   string
	cfg    *config.Config
	engine Engine
}

// New returns a new App instance serving on the given host:port address.
func New(addr string) *App {
	return &App{
		addr: addr,
		cfg:  config.Default(),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// ServePool starts the thread-pool engine: one process, a fixed set of
// worker goroutines sharing the router. Blocks until shutdown.
func (a *App) ServePool(r router.Router) error {
	a.engine = pool.New(a.cfg, r)
	return a.engine.Serve(a.addr)
}

// ServePrefork starts the process-pool engine: a supervisor and a fixed set
// of worker processes, each building its own router via the factory. Blocks
// until shutdown.
func (a *App) ServePrefork(factory prefork.RouterFactory) error {
	a.engine = prefork.New(a.cfg, factory)
	return a.engine.Serve(a.addr)
}

// Stop makes the running engine drain and terminate. In-flight requests run
// to completion within the engine's shutdown timeout. The call isn't
// blocking.
func (a *App) Stop() {
	if a.engine != nil {
		a.engine.Stop()
	}
}
