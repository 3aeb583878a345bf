package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetlease/internal/reservation/controller"
	reserrors "fleetlease/internal/reservation/errors"
	"fleetlease/internal/reservation/notify"
	"fleetlease/pkg/logger"
)

// Session is one live workflow pass.
type Session struct {
	ID         string
	Controller *controller.Controller
	Press      *PressHub

	cancel   context.CancelFunc
	lastSeen time.Time
}

// SessionDeps are the shared collaborators every session's controller
// receives.
type SessionDeps struct {
	Fleet    controller.FleetService
	Contacts controller.ContactService
	Leases   controller.LeaseService
	Notifier notify.Notifier
	Log      *logger.Logger

	PageSize          int
	TypeaheadMinChars int
	TypeaheadDebounce time.Duration
}

// SessionManager owns the live sessions and expires idle ones.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	deps     SessionDeps
	log      *logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(deps SessionDeps, ttl time.Duration) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		deps:     deps,
		log:      deps.Log,
		stopCh:   make(chan struct{}),
	}

	go sm.janitor()

	return sm
}

// Create starts a new workflow session and its controller loop.
func (sm *SessionManager) Create() *Session {
	id := uuid.New().String()
	hub := NewPressHub()

	ctrl := controller.NewController(controller.Deps{
		Fleet:             sm.deps.Fleet,
		Contacts:          sm.deps.Contacts,
		Leases:            sm.deps.Leases,
		Notifier:          sm.deps.Notifier,
		Press:             hub,
		Log:               sm.deps.Log,
		SessionID:         id,
		PageSize:          sm.deps.PageSize,
		TypeaheadMinChars: sm.deps.TypeaheadMinChars,
		TypeaheadDebounce: sm.deps.TypeaheadDebounce,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go ctrl.Run(ctx)

	session := &Session{
		ID:         id,
		Controller: ctrl,
		Press:      hub,
		cancel:     cancel,
		lastSeen:   time.Now(),
	}

	sm.mu.Lock()
	sm.sessions[id] = session
	sm.mu.Unlock()

	sm.log.Info("Session created", "session_id", id)
	return session
}

// Get returns a live session and refreshes its idle timer.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return nil, reserrors.ErrSessionNotFound
	}
	session.lastSeen = time.Now()
	return session, nil
}

// Delete tears a session down.
func (sm *SessionManager) Delete(id string) error {
	sm.mu.Lock()
	session, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()

	if !ok {
		return reserrors.ErrSessionNotFound
	}

	session.cancel()
	session.Controller.Close()
	sm.log.Info("Session deleted", "session_id", id)
	return nil
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) janitor() {
	interval := sm.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.expireIdle()
		case <-sm.stopCh:
			return
		}
	}
}

func (sm *SessionManager) expireIdle() {
	cutoff := time.Now().Add(-sm.ttl)

	sm.mu.Lock()
	var expired []*Session
	for id, session := range sm.sessions {
		if session.lastSeen.Before(cutoff) {
			expired = append(expired, session)
			delete(sm.sessions, id)
		}
	}
	sm.mu.Unlock()

	for _, session := range expired {
		session.cancel()
		session.Controller.Close()
		sm.log.Info("Session expired", "session_id", session.ID)
	}
}

// Stop halts the janitor and tears down every live session.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopCh)
	})

	sm.mu.Lock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for id, session := range sm.sessions {
		sessions = append(sessions, session)
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()

	for _, session := range sessions {
		session.cancel()
		session.Controller.Close()
	}
}
