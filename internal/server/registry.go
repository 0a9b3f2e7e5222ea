package server

import (
	"sync"

	"github.com/alkime/podcurate/internal/wizard"
	"github.com/google/uuid"
)

// session is one client's flow. mu serialises every request and wheel
// frame that touches the flow.
type session struct {
	id   string
	mu   sync.Mutex
	flow *wizard.Flow
}

// registry holds in-memory flows by id.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session)}
}

func (r *registry) create(cfg wizard.Config, catalog wizard.Catalog) *session {
	sess := &session{
		id:   uuid.NewString(),
		flow: wizard.NewFlow(wizard.NewState(cfg, catalog)),
	}

	r.mu.Lock()
	r.sessions[sess.id] = sess
	r.mu.Unlock()

	return sess
}

func (r *registry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]

	return sess, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
