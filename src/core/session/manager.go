package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"

	"pdfchat/src/log"
)

const (
	defaultMaxIdle = 30 * time.Minute
	sweepInterval  = time.Minute
)

// Options configures session behaviour.
type Options struct {
	// ResetHistoryOnProcess clears the visible transcript whenever a new
	// document set is processed. Off by default: the transcript survives
	// reprocessing even though the index and conversation are replaced.
	ResetHistoryOnProcess bool
	// MaxIdle is how long a session may sit untouched before the sweeper
	// removes it.
	MaxIdle time.Duration
}

// Manager owns all live sessions. Sessions are created per browser tab and
// expire after MaxIdle without activity.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	build PipelineFunc
	node  *snowflake.Node
	opts  Options

	done      chan struct{}
	closeOnce sync.Once
}

func NewManager(build PipelineFunc, opts Options) (*Manager, error) {
	// Initialize snowflake node for transcript turn IDs
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}
	if opts.MaxIdle <= 0 {
		opts.MaxIdle = defaultMaxIdle
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		build:    build,
		node:     node,
		opts:     opts,
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m, nil
}

// Create registers and returns a fresh session.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:             uuid.New().String(),
		build:          m.build,
		node:           m.node,
		resetOnProcess: m.opts.ResetHistoryOnProcess,
	}
	s.touch()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	log.Debug("session created", "id", s.ID)
	return s
}

// Get returns the session with the given ID or ErrNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close stops the background sweeper.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.expire(now)
		}
	}
}

func (m *Manager) expire(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.opts.MaxIdle {
			delete(m.sessions, id)
			log.Debug("session expired", "id", id)
		}
	}
}
