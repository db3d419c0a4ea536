package service

import (
	"sync"

	"chargehub/internal/models"
)

// Store keeps the canonical in-memory session state: the nullable active
// session and the newest-first history list.
type Store struct {
	mu      sync.RWMutex
	active  *models.ActiveSession
	history []models.HistoryRecord
}

// NewStore returns a store holding the provided starting state.
func NewStore(active *models.ActiveSession, history []models.HistoryRecord) *Store {
	s := &Store{}
	if active != nil {
		copied := *active
		s.active = &copied
	}
	s.history = append(s.history, history...)
	return s
}

// Active returns a copy of the current active session, or nil.
func (s *Store) Active() *models.ActiveSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil
	}
	copied := *s.active
	return &copied
}

// History returns a copy of the history list, newest first.
func (s *Store) History() []models.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns the active session and history observed under one lock.
func (s *Store) Snapshot() (*models.ActiveSession, []models.HistoryRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active *models.ActiveSession
	if s.active != nil {
		copied := *s.active
		active = &copied
	}
	history := make([]models.HistoryRecord, len(s.history))
	copy(history, s.history)
	return active, history
}

// SetActive installs session as the single active session.
func (s *Store) SetActive(session models.ActiveSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = &session
}

// ClearActive empties the active slot.
func (s *Store) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// UpsertHistory merges rec by ID: replace in place when present, otherwise
// prepend so history stays newest-first.
func (s *Store) UpsertHistory(rec models.HistoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == rec.ID {
			s.history[i] = rec
			return
		}
	}
	s.history = append([]models.HistoryRecord{rec}, s.history...)
}

// HasHistory reports whether a record with the given id exists.
func (s *Store) HasHistory(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.history {
		if s.history[i].ID == id {
			return true
		}
	}
	return false
}
