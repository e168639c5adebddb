package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/skiff-web/skiff"
	"github.com/skiff-web/skiff/config"
	"github.com/skiff-web/skiff/internal/server/prefork"
	"github.com/skiff-web/skiff/internal/store"
	"github.com/skiff-web/skiff/router"
	"github.com/skiff-web/skiff/router/fileserver"
)

var (
	host    = flag.String("host", "0.0.0.0", "server bind address")
	port    = flag.Int("port", 8889, "server port number")
	engine  = flag.String("engine", "pool", "concurrency engine: pool or prefork")
	workers = flag.Int("workers", 0, "number of workers (threads or processes)")
	backlog = flag.Int("backlog", 0, "listen backlog (pool engine)")
	queue   = flag.Int("queue", 0, "per-worker queue capacity (prefork engine)")
	dir     = flag.String("dir", "", "storage directory")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *workers > 0 {
		cfg.Pool.Workers = *workers
		cfg.Prefork.Workers = *workers
	}
	if *backlog > 0 {
		cfg.Pool.Backlog = *backlog
	}
	if *queue > 0 {
		cfg.Prefork.QueueCapacity = *queue
	}
	if *dir != "" {
		cfg.Storage.Dir = *dir
	}

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	app := skiff.New(addr).Tune(cfg)

	var err error
	switch *engine {
	case "pool":
		var r router.Router
		if r, err = newRouter(cfg); err != nil {
			log.Fatalf("storage: %v", err)
		}

		go stopOnSignal(app)
		err = app.ServePool(r)
	case "prefork":
		if !prefork.IsWorker() {
			// workers handle SIGTERM themselves; only the supervisor
			// translates signals into an engine stop
			go stopOnSignal(app)
		}

		err = app.ServePrefork(func() (router.Router, error) {
			return newRouter(cfg)
		})
	default:
		log.Fatalf("unknown engine %q", *engine)
	}

	if err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func newRouter(cfg *config.Config) (router.Router, error) {
	st, err := store.New(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	return fileserver.New(st), nil
}

func stopOnSignal(app *skiff.App) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown requested")
	app.Stop()
}
