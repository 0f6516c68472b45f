package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sonemaro/pulsebar/pkg/logger"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// exit is replaced in tests
var exit = os.Exit

// setupSignalHandling cancels the application context on the first SIGINT
// or SIGTERM and exits on the second
func (a *App) setupSignalHandling() {
	state := &signalState{}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		for {
			select {
			case <-a.done:
				return
			case sig := <-sigChan:
				a.handleSignal(sig, state)
			}
		}
	}()
}

func (a *App) handleSignal(sig os.Signal, state *signalState) {
	a.log.WithFields(logger.Fields{
		"signal": sig.String(),
	}).Debug("Received system signal")

	if !state.shutdownInitiated.CompareAndSwap(false, true) {
		a.handleForcedShutdown()
		return
	}

	a.log.Info("Interrupt received, stopping")
	a.cancel()
}

// handleForcedShutdown stops the indicator so the terminal line is finished
// and exits immediately
func (a *App) handleForcedShutdown() {
	a.log.Warn("Received second interrupt, forcing shutdown")

	a.mu.Lock()
	ind := a.indicator
	a.mu.Unlock()

	if ind != nil {
		ind.Unmount()
	}
	exit(1)
}
