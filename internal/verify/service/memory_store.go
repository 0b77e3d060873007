// Package service provides the in-process verification state store.
//
// Verification sessions and lockout counters are per-actor mutable state
// with short TTLs. The service runs as a single instance, so an in-process
// store with a mutex gives the atomic read-modify-write the failure counter
// needs without an external cache.
package service

import (
	"sync"
	"time"
)

// Config carries the verification timing parameters.
type Config struct {
	// VerificationTTL is how long a successful verification stays valid.
	VerificationTTL time.Duration

	// MaxAttempts is the failure count that triggers a lockout.
	MaxAttempts int

	// FailureWindow is the sliding window in which failures accumulate.
	FailureWindow time.Duration

	// LockoutDuration is how long a lockout rejects all attempts.
	LockoutDuration time.Duration
}

// actorState tracks one actor's verification and lockout state. The two are
// independent: a live verification does not prevent a later lockout and a
// lockout does not invalidate an existing verification.
type actorState struct {
	verifiedUntil time.Time
	failures      []time.Time
	lockedUntil   time.Time
}

// MemoryStore implements the per-actor verification state machine.
type MemoryStore struct {
	mu     sync.Mutex
	states map[int64]*actorState
	config Config

	// now is replaceable for tests.
	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with the given timing parameters.
func NewMemoryStore(config Config) *MemoryStore {
	return &MemoryStore{
		states: make(map[int64]*actorState),
		config: config,
		now:    time.Now,
	}
}

// MarkVerified stamps a fresh verification for the actor and clears the
// failure counter.
func (s *MemoryStore) MarkVerified(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(userID)
	state.verifiedUntil = s.now().Add(s.config.VerificationTTL)
	state.failures = nil
}

// IsVerified reports whether the actor holds a live verification.
func (s *MemoryStore) IsVerified(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		return false
	}
	return s.now().Before(state.verifiedUntil)
}

// RecordFailure counts a failed attempt inside the sliding window. Returns
// true when this failure triggered a lockout; the counter resets so a later
// lockout requires a full new run of failures.
func (s *MemoryStore) RecordFailure(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	state := s.state(userID)

	// Drop failures that fell out of the window
	cutoff := now.Add(-s.config.FailureWindow)
	kept := state.failures[:0]
	for _, at := range state.failures {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	state.failures = append(kept, now)

	if len(state.failures) >= s.config.MaxAttempts {
		state.lockedUntil = now.Add(s.config.LockoutDuration)
		state.failures = nil
		return true
	}
	return false
}

// IsLockedOut reports whether the actor is currently locked out.
func (s *MemoryStore) IsLockedOut(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		return false
	}
	return s.now().Before(state.lockedUntil)
}

// state returns the actor's state, creating it on first touch.
// Callers must hold the mutex.
func (s *MemoryStore) state(userID int64) *actorState {
	state, ok := s.states[userID]
	if !ok {
		state = &actorState{}
		s.states[userID] = state
	}
	return state
}
