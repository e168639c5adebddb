package pool

import (
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skiff-web/skiff/config"
	"github.com/skiff-web/skiff/internal/server"
	"github.com/skiff-web/skiff/internal/server/tcp"
	"github.com/skiff-web/skiff/internal/transport/http1"
	"github.com/skiff-web/skiff/router"
)

// Pool is the single-process engine: a fixed set of worker goroutines
// sharing one router and one file store. The acceptor hands connections to
// the workers over an unbuffered channel, so when all of them are busy,
// pending connections pile up in the kernel listen backlog; the engine
// itself never rejects a connection.
type Pool struct {
	cfg  *config.Config
	r    router.Router
	life server.Lifecycle

	mu  sync.Mutex
	lis net.Listener

	served   atomic.Int64
	done     chan struct{}
	stopOnce sync.Once
}

func New(cfg *config.Config, r router.Router) *Pool {
	return &Pool{
		cfg:  cfg,
		r:    r,
		done: make(chan struct{}),
	}
}

// State reports the engine lifecycle stage.
func (p *Pool) State() server.State {
	return p.life.Current()
}

// Serve binds the address and blocks, serving until Stop is called or the
// listener fails. In-flight requests are allowed to finish within the
// shutdown timeout.
func (p *Pool) Serve(addr string) error {
	lis, err := tcp.Listen(addr, p.cfg.Pool.Backlog, false)
	if err != nil {
		p.life.To(server.StateAborted)
		return err
	}

	p.mu.Lock()
	p.lis = lis
	p.mu.Unlock()

	p.life.To(server.StateListening)
	log.Printf("pool: listening on %s with %d workers", addr, p.cfg.Pool.Workers)

	lim := http1.Limits{
		ChunkSize:      p.cfg.Pool.ChunkSize,
		MaxRequestSize: p.cfg.Pool.MaxRequestSize,
		ReadTimeout:    p.cfg.Pool.ReadTimeout,
	}

	tasks := make(chan net.Conn)
	g := new(errgroup.Group)

	for i := 0; i < p.cfg.Pool.Workers; i++ {
		g.Go(func() error {
			p.worker(tasks, lim)
			return nil
		})
	}

	go p.monitor()

	for {
		conn, err := lis.Accept()
		if err != nil {
			break
		}

		tasks <- conn
	}

	// either Stop closed the listener or accepting failed for good;
	// both ways the engine is going down
	p.life.To(server.StateShuttingDown)
	close(tasks)
	p.waitWorkers(g)
	close(p.done)

	p.life.To(server.StateTerminated)
	log.Printf("pool: terminated, %d requests processed", p.served.Load())

	return nil
}

// Stop makes the engine drain: no new connections are accepted, in-flight
// ones run to completion. The call isn't blocking.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.life.To(server.StateShuttingDown)

		p.mu.Lock()
		if p.lis != nil {
			_ = p.lis.Close()
		}
		p.mu.Unlock()
	})
}

func (p *Pool) worker(tasks <-chan net.Conn, lim http1.Limits) {
	ser := http1.NewSerializer(p.cfg.HTTP.Server)

	for conn := range tasks {
		server.ServeConn(conn, p.r, ser, lim)
		p.served.Add(1)
	}
}

func (p *Pool) waitWorkers(g *errgroup.Group) {
	workersDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(workersDone)
	}()

	select {
	case <-workersDone:
	case <-time.After(p.cfg.Pool.ShutdownTimeout):
		log.Printf("pool: shutdown timed out, abandoning in-flight connections")
	}
}

func (p *Pool) monitor() {
	ticker := time.NewTicker(p.cfg.Pool.MonitorPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Printf("pool: %d requests processed", p.served.Load())
		case <-p.done:
			return
		}
	}
}
