package config

import (
	"runtime"
	"time"
)

type (
	// Pool configures the single-process engine: a fixed set of worker
	// goroutines sharing one router and one file store.
	Pool struct {
		// Workers is the number of concurrently serving workers.
		Workers int
		// Backlog is passed to listen(2). Once the workers are saturated,
		// pending connections queue up here at the kernel level; there is no
		// application-level rejection in this engine.
		Backlog int
		// ReadTimeout bounds every single read from the client socket. It is
		// deliberately per-read, not per-request.
		ReadTimeout time.Duration
		// ChunkSize is the size of a single socket read.
		ChunkSize int
		// MaxRequestSize caps the total request buffer, headers and body.
		MaxRequestSize int
		// MonitorPeriod is how often the aggregate request count is logged.
		MonitorPeriod time.Duration
		// ShutdownTimeout bounds the wait for in-flight workers on shutdown.
		ShutdownTimeout time.Duration
	}

	// Prefork configures the multi-process engine. Every worker is a child
	// process with its own listener (SO_REUSEPORT), router and file store;
	// only the filesystem is shared.
	Prefork struct {
		// Workers is the number of child processes. Capped at 3x the number
		// of available cores.
		Workers int
		// Backlog is passed to listen(2) by every worker.
		Backlog int
		// QueueCapacity bounds the per-worker connection queue. A full queue
		// makes the acceptor drop the connection without serving it.
		QueueCapacity int
		// EnqueueTimeout is how long the acceptor waits for a queue slot
		// before dropping the connection.
		EnqueueTimeout time.Duration
		// PollTimeout is how long the serve loop waits for a queued
		// connection before re-checking the running flag.
		PollTimeout time.Duration
		// ReadTimeout bounds every single read from the client socket.
		ReadTimeout time.Duration
		// ChunkSize is the size of a single socket read.
		ChunkSize int
		// MaxRequestSize caps the total request buffer, headers and body.
		MaxRequestSize int
		// MonitorPeriod is how often uptime and live worker count are logged.
		MonitorPeriod time.Duration
		// JoinTimeout bounds the wait for a child on shutdown before it is
		// force-killed.
		JoinTimeout time.Duration
	}

	Storage struct {
		// Dir is the flat directory holding uploaded files.
		Dir string
	}

	HTTP struct {
		// Server is the value of the Server response header.
		Server string
	}
)

// Config holds settings used across various parts of skiff, mainly
// restrictions, limitations and timeouts of the two engines.
//
// Always modify defaults (returned via Default()) instead of initializing
// the struct manually, otherwise zero limits will reject everything.
type Config struct {
	Pool    Pool
	Prefork Prefork
	Storage Storage
	HTTP    HTTP
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Pool: Pool{
			Workers:         8,
			Backlog:         25,
			ReadTimeout:     25 * time.Second,
			ChunkSize:       8 * 1024,
			MaxRequestSize:  15 * 1024 * 1024,
			MonitorPeriod:   45 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Prefork: Prefork{
			Workers:        4,
			Backlog:        60,
			QueueCapacity:  150,
			EnqueueTimeout: 2 * time.Second,
			PollTimeout:    2 * time.Second,
			ReadTimeout:    30 * time.Second,
			ChunkSize:      16 * 1024,
			MaxRequestSize: 25 * 1024 * 1024,
			MonitorPeriod:  90 * time.Second,
			JoinTimeout:    15 * time.Second,
		},
		Storage: Storage{
			Dir: "server_files",
		},
		HTTP: HTTP{
			Server: "skiff/1.0",
		},
	}
}

// MaxPreforkWorkers is the hard cap on the amount of worker processes.
func MaxPreforkWorkers() int {
	return 3 * runtime.NumCPU()
}
