package prefork

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skiff-web/skiff/internal/server"
	"github.com/skiff-web/skiff/internal/server/tcp"
	"github.com/skiff-web/skiff/internal/transport/http1"
)

// serveWorker is the body of a pre-forked worker process. Accepted
// connections flow through a bounded FIFO queue; the serve loop handles one
// connection to completion before taking the next. A nil connection is the
// sentinel telling the loop to stop.
func (p *Prefork) serveWorker(addr string) error {
	id := os.Getenv(workerEnv)

	lis, err := tcp.Listen(addr, p.cfg.Prefork.Backlog, true)
	if err != nil {
		p.life.To(server.StateAborted)
		return err
	}

	p.life.To(server.StateListening)
	log.Printf("prefork[%s]: worker started (pid %d)", id, os.Getpid())

	r, err := p.factory()
	if err != nil {
		_ = lis.Close()
		return err
	}

	queue := make(chan net.Conn, p.cfg.Prefork.QueueCapacity)
	go p.acceptLoop(id, lis, queue)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigs
		p.life.To(server.StateShuttingDown)
		_ = lis.Close()
		queue <- nil
	}()

	lim := http1.Limits{
		ChunkSize:      p.cfg.Prefork.ChunkSize,
		MaxRequestSize: p.cfg.Prefork.MaxRequestSize,
		ReadTimeout:    p.cfg.Prefork.ReadTimeout,
	}
	ser := http1.NewSerializer(p.cfg.HTTP.Server)
	served := 0

loop:
	for {
		var conn net.Conn

		select {
		case conn = <-queue:
		case <-time.After(p.cfg.Prefork.PollTimeout):
			continue
		}

		if conn == nil {
			break loop
		}

		server.ServeConn(conn, r, ser, lim)
		served++
	}

	p.life.To(server.StateTerminated)
	log.Printf("prefork[%s]: handled %d requests, terminating", id, served)

	return nil
}

// acceptLoop feeds the queue. A queue that stays full for the enqueue
// timeout means the worker is overloaded: the connection is closed without
// a single byte written to it.
func (p *Prefork) acceptLoop(id string, lis net.Listener, queue chan<- net.Conn) {
	for {
		conn, err := lis.Accept()
		if err != nil {
			return
		}

		select {
		case queue <- conn:
			continue
		default:
		}

		timer := time.NewTimer(p.cfg.Prefork.EnqueueTimeout)
		select {
		case queue <- conn:
			timer.Stop()
		case <-timer.C:
			log.Printf("prefork[%s]: queue full, dropping connection from %s", id, conn.RemoteAddr())
			_ = conn.Close()
		}
	}
}
