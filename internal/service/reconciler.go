package service

import (
	"fmt"
	"math"
	"time"

	"chargehub/internal/models"
)

// Reconciler converts live session snapshots into history records and merges
// them into the store.
type Reconciler struct {
	store *Store
	now   func() time.Time
}

// NewReconciler builds a reconciler writing into store.
func NewReconciler(store *Store, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{store: store, now: now}
}

// Record translates a session snapshot into a history record with the given
// status. Energy is rounded to one decimal, cost to a whole currency unit.
func (r *Reconciler) Record(session models.ActiveSession, status models.HistoryStatus) models.HistoryRecord {
	return models.HistoryRecord{
		ID:           session.ID,
		ChargerID:    session.ChargerID,
		Driver:       session.Driver,
		Method:       session.Method,
		EnergyKWh:    math.Round(session.EnergyKWh*10) / 10,
		Cost:         math.Round(session.Cost),
		StartedLabel: startedLabel(session.StartedAt, r.now()),
		Status:       status,
	}
}

// Finalize writes the record for session into the store (upsert by id) and
// returns what was written.
func (r *Reconciler) Finalize(session models.ActiveSession, status models.HistoryStatus) models.HistoryRecord {
	rec := r.Record(session, status)
	r.store.UpsertHistory(rec)
	return rec
}

// startedLabel renders a start time relative to now: "Today HH:MM",
// "Yesterday HH:MM", or the weekday name plus time.
func startedLabel(started, now time.Time) string {
	clock := started.Format("15:04")
	switch {
	case sameDay(started, now):
		return fmt.Sprintf("Today %s", clock)
	case sameDay(started, now.AddDate(0, 0, -1)):
		return fmt.Sprintf("Yesterday %s", clock)
	default:
		return fmt.Sprintf("%s %s", started.Weekday(), clock)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
