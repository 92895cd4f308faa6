package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// MemoryStore keeps sessions in process. Expired entries are rejected on
// read and removed by a periodic sweep once Start is called.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time

	cron *cron.Cron
	spec string
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
		cron:     cron.New(),
		spec:     "@every 10m",
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int64) (Session, error) {
	sess := newSession(userID, s.now(), s.ttl)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNoSession
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Start schedules the expiry sweep.
func (s *MemoryStore) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if n := s.Sweep(); n > 0 {
			log.Printf("[session] swept %d expired session(s)", n)
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("[session] expiry sweep started, spec: %s", s.spec)
	return nil
}

// Stop halts the sweep and waits for a running sweep to finish.
func (s *MemoryStore) Stop() {
	<-s.cron.Stop().Done()
}
