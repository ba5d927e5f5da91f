package concurrency

import (
	"fmt"
	"sync"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Key builds the lock name for an entity, e.g. Key("inventory", 7) -> "inventory:7"
func Key(kind string, id any) string {
	return fmt.Sprintf("%s%s%v", kind, KeySeparator, id)
}

// Session holds the named locks taken by one unit of work.
// Locks are released together by ReleaseAll, mirroring row locks held until
// a database transaction ends. A Session is not safe for concurrent use.
type Session struct {
	lm   *LockManager
	held map[string]*sync.Mutex
	// order keeps release in reverse acquisition order
	order []string
}

// NewSession starts an empty lock session
func (lm *LockManager) NewSession() *Session {
	return &Session{lm: lm, held: make(map[string]*sync.Mutex)}
}

// Acquire blocks until key is locked. Re-acquiring a held key is a no-op.
func (s *Session) Acquire(key string) {
	if _, ok := s.held[key]; ok {
		return
	}
	mu := s.lm.GetLock(key)
	mu.Lock()
	s.held[key] = mu
	s.order = append(s.order, key)
}

// Holds reports whether the session currently owns key
func (s *Session) Holds(key string) bool {
	_, ok := s.held[key]
	return ok
}

// ReleaseAll unlocks every held key
func (s *Session) ReleaseAll() {
	for i := len(s.order) - 1; i >= 0; i-- {
		s.held[s.order[i]].Unlock()
	}
	s.held = make(map[string]*sync.Mutex)
	s.order = nil
}
