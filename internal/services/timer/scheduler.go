package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pjessen/partywords/internal/model"
)

// DefaultInterval is the countdown poll cadence
const DefaultInterval = time.Second

// TickFunc advances one party's countdown. Returning false stops the
// loop for that party.
type TickFunc func(code model.PartyCode) bool

// Scheduler runs one countdown goroutine per in-game party. A failure in
// one party's loop never affects another's.
type Scheduler struct {
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	tick    TickFunc
	running map[model.PartyCode]chan struct{}
}

// NewScheduler creates a Scheduler. The tick function is wired afterwards
// with SetTickFunc, breaking the construction cycle with its consumer.
func NewScheduler(interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		logger:   logger.With(slog.String("component", "timer")),
		running:  make(map[model.PartyCode]chan struct{}),
	}
}

// SetTickFunc installs the per-tick callback. Must be called before Start.
func (s *Scheduler) SetTickFunc(fn TickFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = fn
}

// Start launches the countdown loop for a party. Starting an already
// running party is a no-op.
func (s *Scheduler) Start(code model.PartyCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tick == nil {
		s.logger.Error("start called before tick func installed", slog.String("code", string(code)))
		return
	}
	if _, ok := s.running[code]; ok {
		return
	}
	stop := make(chan struct{})
	s.running[code] = stop
	go s.run(code, stop)
}

// Stop halts the countdown loop for a party, if one is running
func (s *Scheduler) Stop(code model.PartyCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.running[code]; ok {
		close(stop)
		delete(s.running, code)
	}
}

// StopAll halts every countdown loop
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, stop := range s.running {
		close(stop)
		delete(s.running, code)
	}
}

// Active reports whether a countdown loop is running for the party
func (s *Scheduler) Active(code model.PartyCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[code]
	return ok
}

func (s *Scheduler) run(code model.PartyCode, stop chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("countdown loop panicked",
				slog.String("code", string(code)),
				slog.Any("panic", r),
			)
			s.release(code, stop)
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.tickOnce(code) {
				s.release(code, stop)
				return
			}
		}
	}
}

// release unregisters an exiting loop, but only if a newer loop has not
// replaced it in the meantime
func (s *Scheduler) release(code model.PartyCode, stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.running[code]; ok && current == stop {
		delete(s.running, code)
	}
}

func (s *Scheduler) tickOnce(code model.PartyCode) bool {
	s.mu.Lock()
	fn := s.tick
	s.mu.Unlock()
	return fn(code)
}
