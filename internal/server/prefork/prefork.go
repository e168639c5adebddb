package prefork

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/skiff-web/skiff/config"
	"github.com/skiff-web/skiff/internal/server"
	"github.com/skiff-web/skiff/router"
)

const workerEnv = "SKIFF_PREFORK_WORKER"

// forceKillGrace is the final wait after a worker had to be killed.
const forceKillGrace = 3 * time.Second

// IsWorker reports whether the current process is a pre-forked worker
// rather than the supervisor.
func IsWorker() bool {
	return os.Getenv(workerEnv) != ""
}

// RouterFactory builds a worker-private router. Every worker process owns
// its own router and file store instance; only the filesystem is shared.
type RouterFactory func() (router.Router, error)

// Prefork is the multi-process engine. The supervisor re-executes its own
// binary once per worker; every worker opens its own SO_REUSEPORT listener
// on the same address, letting the kernel distribute incoming connections.
// This replaces passing accepted sockets across process boundaries, which
// Go cannot do through a queue.
type Prefork struct {
	cfg     *config.Config
	factory RouterFactory
	life    server.Lifecycle

	alive    atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
}

func New(cfg *config.Config, factory RouterFactory) *Prefork {
	return &Prefork{
		cfg:     cfg,
		factory: factory,
		stop:    make(chan struct{}),
	}
}

// State reports the engine lifecycle stage.
func (p *Prefork) State() server.State {
	return p.life.Current()
}

// Serve runs the supervisor, or the worker loop when the process was
// spawned as one. Blocks until shutdown completes.
func (p *Prefork) Serve(addr string) error {
	if IsWorker() {
		return p.serveWorker(addr)
	}

	return p.supervise(addr)
}

// Stop initiates the drain: workers are signalled, given the join timeout
// to finish in-flight requests, then force-killed. The call isn't blocking.
func (p *Prefork) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

type workerProc struct {
	id  int
	cmd *exec.Cmd
	// done is closed once the worker process has been reaped
	done chan struct{}
}

func (p *Prefork) supervise(addr string) error {
	workers := p.cfg.Prefork.Workers
	if limit := config.MaxPreforkWorkers(); workers > limit {
		log.Printf("prefork: limiting worker count to %d", limit)
		workers = limit
	}

	exe, err := os.Executable()
	if err != nil {
		p.life.To(server.StateAborted)
		return err
	}

	procs := make([]*workerProc, 0, workers)
	for id := 1; id <= workers; id++ {
		wp, err := p.spawn(exe, id)
		if err != nil {
			p.life.To(server.StateAborted)
			p.killAll(procs)
			return err
		}

		procs = append(procs, wp)
	}

	p.life.To(server.StateListening)
	log.Printf("prefork: %d workers serving on %s", workers, addr)

	go p.monitor()

	allExited := make(chan struct{})
	go func() {
		for _, wp := range procs {
			<-wp.done
		}
		close(allExited)
	}()

	select {
	case <-p.stop:
	case <-allExited:
		log.Printf("prefork: all workers exited unexpectedly")
	}

	p.Stop() // releases the monitor when the workers died on their own
	p.life.To(server.StateShuttingDown)
	p.drain(procs)
	p.life.To(server.StateTerminated)
	log.Printf("prefork: terminated")

	return nil
}

func (p *Prefork) spawn(exe string, id int) (*workerProc, error) {
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%d", workerEnv, id))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	log.Printf("prefork: started worker %d (pid %d)", id, cmd.Process.Pid)
	p.alive.Add(1)

	wp := &workerProc{
		id:   id,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		p.alive.Add(-1)
		close(wp.done)
	}()

	return wp, nil
}

// drain signals every worker and joins it within the configured timeout,
// force-killing stragglers.
func (p *Prefork) drain(procs []*workerProc) {
	for _, wp := range procs {
		_ = wp.cmd.Process.Signal(syscall.SIGTERM)
	}

	for _, wp := range procs {
		select {
		case <-wp.done:
			continue
		case <-time.After(p.cfg.Prefork.JoinTimeout):
		}

		log.Printf("prefork: force terminating worker %d (pid %d)", wp.id, wp.cmd.Process.Pid)
		_ = wp.cmd.Process.Kill()

		select {
		case <-wp.done:
		case <-time.After(forceKillGrace):
		}
	}
}

func (p *Prefork) killAll(procs []*workerProc) {
	for _, wp := range procs {
		_ = wp.cmd.Process.Kill()
		<-wp.done
	}
}

func (p *Prefork) monitor() {
	started := time.Now()
	ticker := time.NewTicker(p.cfg.Prefork.MonitorPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Printf(
				"prefork: uptime %.1fs, %d live workers",
				time.Since(started).Seconds(), p.alive.Load(),
			)
		case <-p.stop:
			return
		}
	}
}
