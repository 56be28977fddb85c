// cmd/mutsim-server/main.go

// Command mutsim-server exposes the mutation engine over a JSON REST API.
//
// Usage:
//
//	mutsim-server [options]
//
// Options:
//
//	-port  Port to listen on (default: 8080)
//	-host  Host to bind to (default: localhost)
//	-seed  Random seed, 0 = derive from wall clock (default: 0)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"mutsim/internal/server"
	"mutsim/internal/version"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	seed := flag.Uint64("seed", 0, "Random seed, 0 = derive from wall clock")
	flag.Parse()

	logger := log.New(os.Stderr)

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(s).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "version", version.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
			os.Exit(1)
		}
		logger.Info("stopped")
	}
}
