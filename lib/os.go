package lib

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// CancelOnInterrupt returns a copy of parent that is cancelled when the
// process receives SIGINT or SIGTERM, so long-running work can stop at a
// safe point instead of dying mid-write.
func CancelOnInterrupt(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		log.Warn().Str("signal", sig.String()).Msg("process interrupted, stopping")
		cancel()
	}()
	return ctx
}
