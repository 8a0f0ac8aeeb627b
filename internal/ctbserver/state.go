package ctbserver

import "sync"

// state holds the pieces of runtime configuration that can be swapped by a
// reload while requests are in flight.
type state struct {
	mu     sync.RWMutex
	secret string

	startedAtUnix int64
}

func (s *state) Secret() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

func (s *state) SetSecret(secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = secret
}

func (s *state) StartedAtUnix() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAtUnix
}

func (s *state) SetStartedAtUnix(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedAtUnix = ts
}
