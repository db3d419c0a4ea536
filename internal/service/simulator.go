package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RandSource yields bounded random integers for simulated telemetry. Tests
// substitute a deterministic implementation.
type RandSource interface {
	Intn(n int) int
}

type timeSeeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newTimeSeeded() *timeSeeded {
	return &timeSeeded{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *timeSeeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Simulator drives the periodic telemetry of one session. At most one timer
// is armed at a time; arming a new one cancels the previous.
type Simulator struct {
	interval time.Duration
	tick     func(sessionID string) bool
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSimulator builds a simulator invoking tick every interval. The tick
// callback reports whether its session is still live; a false return stops
// the loop.
func NewSimulator(interval time.Duration, tick func(sessionID string) bool, logger *zap.Logger) *Simulator {
	return &Simulator{
		interval: interval,
		tick:     tick,
		logger:   logger,
	}
}

// Arm starts ticking against the given session identity, cancelling any
// previously armed timer first.
func (s *Simulator) Arm(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx, sessionID)
	s.logger.Debug("telemetry armed", zap.String("session_id", sessionID))
}

// Disarm cancels the armed timer, if any.
func (s *Simulator) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Simulator) run(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(sessionID) {
				s.logger.Debug("telemetry target gone", zap.String("session_id", sessionID))
				return
			}
		}
	}
}
