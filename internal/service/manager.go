package service

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"chargehub/internal/directory"
	"chargehub/internal/metrics"
	"chargehub/internal/models"
)

// Snapshot is the read-only view returned by Query.
type Snapshot struct {
	Active     *models.ActiveSession  `json:"active"`
	History    []models.HistoryRecord `json:"history"`
	IsCharging bool                   `json:"is_charging"`
}

// Options configures a Manager.
type Options struct {
	Directory directory.Lookup
	Logger    *zap.Logger

	TickInterval  time.Duration
	MinPowerKw    int
	MaxPowerKw    int
	PowerJitterKw int
	SeedPowerKw   int
	TariffPerKWh  float64
	Currency      string
	TargetSoc     int

	// Rand and Now are swappable for deterministic tests.
	Rand RandSource
	Now  func() time.Time

	// Starting state from the seed provider.
	InitialActive  *models.ActiveSession
	InitialHistory []models.HistoryRecord

	// OnChange receives a fresh snapshot after every state transition and
	// applied tick. It runs under the manager lock: it must not block or
	// call back into the Manager.
	OnChange func(Snapshot)
}

// Manager is the session lifecycle service: it owns the store, the factory,
// the reconciler and the telemetry simulator, and serializes all mutation.
type Manager struct {
	mu         sync.Mutex
	store      *Store
	factory    *Factory
	reconciler *Reconciler
	sim        *Simulator
	rand       RandSource
	logger     *zap.Logger
	onChange   func(Snapshot)

	minPowerKw    int
	maxPowerKw    int
	powerJitterKw int
	tariffPerKWh  float64
	tickInterval  time.Duration
}

// NewManager wires the lifecycle service.
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = newTimeSeeded()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 5 * time.Second
	}
	if opts.MinPowerKw <= 0 {
		opts.MinPowerKw = 35
	}
	if opts.MaxPowerKw < opts.MinPowerKw {
		opts.MaxPowerKw = opts.MinPowerKw
	}
	if opts.SeedPowerKw <= 0 {
		opts.SeedPowerKw = 60
	}
	if opts.PowerJitterKw <= 0 {
		opts.PowerJitterKw = 5
	}
	if opts.TariffPerKWh <= 0 {
		opts.TariffPerKWh = 1200
	}
	if opts.TargetSoc <= 0 {
		opts.TargetSoc = 85
	}
	if opts.Currency == "" {
		opts.Currency = "UGX"
	}

	store := NewStore(opts.InitialActive, opts.InitialHistory)
	m := &Manager{
		store:         store,
		factory:       NewFactory(opts.Directory, opts.Currency, opts.SeedPowerKw, opts.TargetSoc, opts.Now),
		reconciler:    NewReconciler(store, opts.Now),
		rand:          opts.Rand,
		logger:        opts.Logger,
		onChange:      opts.OnChange,
		minPowerKw:    opts.MinPowerKw,
		maxPowerKw:    opts.MaxPowerKw,
		powerJitterKw: opts.PowerJitterKw,
		tariffPerKWh:  opts.TariffPerKWh,
		tickInterval:  opts.TickInterval,
	}
	m.sim = NewSimulator(opts.TickInterval, m.advanceTelemetry, opts.Logger)
	return m
}

// Resume re-arms telemetry for a seeded active session. Called once after
// construction.
func (m *Manager) Resume() {
	if active := m.store.Active(); active != nil && active.Status == models.SessionCharging {
		metrics.ActiveSessions.Set(1)
		m.sim.Arm(active.ID)
		m.logger.Info("resumed charging session", zap.String("session_id", active.ID))
	}
}

// Close stops background telemetry.
func (m *Manager) Close() {
	m.sim.Disarm()
}

// Start begins a new charging session. Any session still active is finalized
// as completed first, then the new session is installed, seeded into history
// as in-progress, and telemetry is re-armed against its identity.
func (m *Manager) Start(req StartRequest) (models.ActiveSession, error) {
	m.mu.Lock()

	session, err := m.factory.Build(req, m.store.HasHistory)
	if err != nil {
		m.mu.Unlock()
		return models.ActiveSession{}, err
	}

	if prev := m.store.Active(); prev != nil {
		m.reconciler.Finalize(*prev, models.HistoryCompleted)
		metrics.SessionsStopped.Inc()
		m.logger.Info("superseded charging session",
			zap.String("session_id", prev.ID),
			zap.String("charger_id", prev.ChargerID),
		)
	}

	m.store.SetActive(session)
	m.reconciler.Finalize(session, models.HistoryInProgress)
	// Armed under the lock so a racing Start cannot leave the timer bound
	// to a superseded session.
	m.sim.Arm(session.ID)
	m.notifyLocked()
	m.mu.Unlock()

	metrics.SessionsStarted.WithLabelValues(string(session.Method)).Inc()
	metrics.ActiveSessions.Set(1)
	metrics.ActivePowerKw.Set(float64(session.PowerKw))
	m.logger.Info("started charging session",
		zap.String("session_id", session.ID),
		zap.String("charger_id", session.ChargerID),
		zap.String("method", string(session.Method)),
	)
	return session, nil
}

// Stop ends the active session, finalizing it as completed. Returns nil when
// no session is active; that is a normal outcome, not an error.
func (m *Manager) Stop() *models.HistoryRecord {
	m.mu.Lock()
	current := m.store.Active()
	if current == nil {
		m.mu.Unlock()
		return nil
	}

	m.sim.Disarm()
	current.Status = models.SessionStopping
	rec := m.reconciler.Finalize(*current, models.HistoryCompleted)
	m.store.ClearActive()
	m.notifyLocked()
	m.mu.Unlock()

	metrics.SessionsStopped.Inc()
	metrics.ActiveSessions.Set(0)
	metrics.ActivePowerKw.Set(0)
	m.logger.Info("stopped charging session",
		zap.String("session_id", current.ID),
		zap.Float64("energy_kwh", rec.EnergyKWh),
		zap.Float64("cost", rec.Cost),
	)
	return &rec
}

// Query returns a consistent read-only snapshot. It takes the manager lock
// so a reader can never observe the store mid-transition, e.g. a new active
// session whose in-progress history record is not yet written.
func (m *Manager) Query() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Manager) snapshot() Snapshot {
	active, history := m.store.Snapshot()
	return Snapshot{
		Active:     active,
		History:    history,
		IsCharging: active != nil && active.Status == models.SessionCharging,
	}
}

// advanceTelemetry applies one tick to the session identified by sessionID.
// The tick is discarded when that session is no longer active or no longer
// charging; the identity check keeps a stale timer from touching a session
// started after its own ended.
func (m *Manager) advanceTelemetry(sessionID string) bool {
	m.mu.Lock()
	current := m.store.Active()
	if current == nil || current.ID != sessionID || current.Status != models.SessionCharging {
		m.mu.Unlock()
		return false
	}

	jitter := 0
	if m.powerJitterKw > 0 {
		jitter = m.rand.Intn(2*m.powerJitterKw+1) - m.powerJitterKw
	}
	power := clampInt(current.PowerKw+jitter, m.minPowerKw, m.maxPowerKw)
	energyDelta := float64(power) * m.tickInterval.Hours()

	current.PowerKw = power
	current.EnergyKWh = round2(current.EnergyKWh + energyDelta)
	current.Cost += energyDelta * m.tariffPerKWh
	current.DurationMins++
	m.store.SetActive(*current)
	m.notifyLocked()
	m.mu.Unlock()

	metrics.TelemetryTicks.Inc()
	metrics.EnergyDelivered.Add(energyDelta)
	metrics.ActivePowerKw.Set(float64(power))
	m.logger.Debug("telemetry tick",
		zap.String("session_id", sessionID),
		zap.Int("power_kw", power),
		zap.Float64("energy_kwh", current.EnergyKWh),
	)
	return true
}

// notifyLocked runs under m.mu so subscribers receive snapshots in the same
// order the mutations were applied.
func (m *Manager) notifyLocked() {
	if m.onChange != nil {
		m.onChange(m.snapshot())
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
