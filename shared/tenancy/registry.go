package tenancy

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"go.uber.org/zap"
)

// Registry is the single owner of organizations, clients and users. Every
// mutation runs as one memdb write transaction, so cascades are atomic and
// readers always see a consistent snapshot. Returned records are copies.
type Registry struct {
	db     *memdb.MemDB
	roles  *RoleTable
	now    func() time.Time
	newID  func() string
	logger *zap.Logger

	mu        sync.RWMutex
	listeners []Listener
	sessions  map[string]*Session

	// pubMu is held from commit until listeners return, so deliveries follow
	// commit order.
	pubMu sync.Mutex
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

func WithRoleTable(t *RoleTable) Option {
	return func(r *Registry) { r.roles = t }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func NewRegistry(opts ...Option) (*Registry, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create tenancy store: %w", err)
	}
	r := &Registry{
		db:       db,
		roles:    NewRoleTable(DefaultRoleOptions()),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		logger:   zap.NewNop(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Roles exposes the role table the registry grants permissions from.
func (r *Registry) Roles() *RoleTable { return r.roles }

// Subscribe registers l for every event committed from now on.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// writeTxn collects events while a mutation runs; they are delivered only if
// the transaction commits.
type writeTxn struct {
	*memdb.Txn
	at      time.Time
	events  []Event
	removed removal
}

type removal struct {
	orgs  []string
	users []string
}

func (w *writeTxn) emit(typ EventType, entityType, entityID, orgID string, data map[string]any) {
	w.events = append(w.events, Event{
		Type:           typ,
		EntityType:     entityType,
		EntityID:       entityID,
		OrganizationID: orgID,
		At:             w.at,
		Data:           data,
	})
}

func (r *Registry) update(fn func(w *writeTxn) error) error {
	w := &writeTxn{Txn: r.db.Txn(true), at: r.now()}
	if err := fn(w); err != nil {
		w.Abort()
		return err
	}
	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	w.Commit()

	if len(w.removed.orgs) > 0 || len(w.removed.users) > 0 {
		r.dropSelections(w.removed)
	}
	r.publish(w.events)
	return nil
}

func (r *Registry) view(fn func(txn *memdb.Txn) error) error {
	txn := r.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

func (r *Registry) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	r.mu.RLock()
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
