// Package supervisor runs the render thread and relays its failure to the
// event thread through a shared health flag.
package supervisor

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/achilleasa/gloom/log"
)

// RenderFunc is the body of the render thread. It must acquire the
// rendering context itself since a context can only be current on the
// thread that claimed it. It returns an error if setup fails; a render
// loop that runs until the process exits never returns.
type RenderFunc func() error

// Supervisor owns the render thread and its watchdog.
type Supervisor struct {
	logger log.Logger
	health *Health

	mu      sync.Mutex
	started bool
	done    chan struct{}
	err     error
}

// Create a supervisor that reports render thread failures to health.
func New(health *Health) *Supervisor {
	return &Supervisor{
		logger: log.New("supervisor"),
		health: health,
		done:   make(chan struct{}),
	}
}

// Start spawns the render thread running fn and a watchdog that blocks
// until it terminates. If fn panics or returns an error the watchdog marks
// the health flag as unhealthy.
func (s *Supervisor) Start(fn RenderFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	result := make(chan error, 1)
	go func() {
		// The GL context is bound to the OS thread that made it current.
		runtime.LockOSThread()

		defer func() {
			if r := recover(); r != nil {
				s.logger.Debugf("render thread stack:\n%s", debug.Stack())
				result <- fmt.Errorf("%w: %v", ErrRenderPanic, r)
			}
		}()
		result <- fn()
	}()

	go s.watch(result)
	return nil
}

func (s *Supervisor) watch(result <-chan error) {
	err := <-result

	if err != nil {
		s.logger.Errorf("render thread terminated: %v", err)
		s.health.markUnhealthy()
	} else {
		s.logger.Notice("render thread exited")
	}

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

// Done is closed after the watchdog has observed the render thread exit
// and updated the health flag.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Err returns the reason the render thread terminated. It is only
// meaningful after Done is closed.
func (s *Supervisor) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
