package tenancy

import (
	"slices"
	"sync"

	"github.com/hashicorp/go-memdb"
)

const entitySession = "session"

// Session is one dashboard's acting context. It stores ids only; the current
// organization and user are looked up on every read, so a removed record is
// reported as NotFound rather than served stale.
type Session struct {
	id       string
	registry *Registry

	mu     sync.Mutex
	userID string
	orgID  string
}

// SessionState is the serializable view of a session.
type SessionState struct {
	ID                    string `json:"id"`
	CurrentUserID         string `json:"current_user_id"`
	CurrentOrganizationID string `json:"current_organization_id"`
}

// NewSession opens a session acting as userID, with the user's organization
// selected. An empty userID opens a session with nothing selected.
func (r *Registry) NewSession(userID string) (*Session, error) {
	s := &Session{id: r.newID(), registry: r}
	if userID != "" {
		u, err := r.User(userID)
		if err != nil {
			return nil, err
		}
		s.userID = u.ID
		s.orgID = u.OrganizationID
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s, nil
}

func (r *Registry) Session(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, notFound(entitySession, id)
	}
	return s, nil
}

func (r *Registry) EndSession(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return notFound(entitySession, id)
	}
	delete(r.sessions, id)
	return nil
}

// dropSelections clears selections that point at removed records.
func (r *Registry) dropSelections(rm removal) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.mu.Lock()
		if slices.Contains(rm.orgs, s.orgID) {
			s.orgID = ""
		}
		if slices.Contains(rm.users, s.userID) {
			s.userID = ""
		}
		s.mu.Unlock()
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{ID: s.id, CurrentUserID: s.userID, CurrentOrganizationID: s.orgID}
}

func (s *Session) CurrentOrganization() (*Organization, error) {
	s.mu.Lock()
	id := s.orgID
	s.mu.Unlock()
	if id == "" {
		return nil, notFound(EntityOrganization, "")
	}
	return s.registry.Organization(id)
}

func (s *Session) CurrentUser() (*User, error) {
	s.mu.Lock()
	id := s.userID
	s.mu.Unlock()
	if id == "" {
		return nil, notFound(EntityUser, "")
	}
	return s.registry.User(id)
}

// SwitchOrganization selects orgID. When the acting user is a platform
// admin, the organization's first org admin becomes the current user; if it
// has none the current user is kept.
func (s *Session) SwitchOrganization(orgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.view(func(txn *memdb.Txn) error {
		if !organizations.exists(txn, orgID) {
			return notFound(EntityOrganization, orgID)
		}
		s.orgID = orgID

		acting, err := users.get(txn, s.userID)
		if err != nil || acting.Role != RolePlatformAdmin {
			return nil
		}
		members, err := users.ownedBy(txn, orgID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.Role == RoleOrgAdmin {
				s.userID = m.ID
				break
			}
		}
		return nil
	})
}

// SwitchUser makes userID the acting user without changing the organization.
func (s *Session) SwitchUser(userID string) error {
	if _, err := s.registry.User(userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	return nil
}

// VisibleUsers lists the users the session may see: all of them for a
// platform admin, otherwise only the current organization's.
func (r *Registry) VisibleUsers(s *Session) ([]*User, error) {
	if u, err := s.CurrentUser(); err == nil && u.Role == RolePlatformAdmin {
		return r.Users(UserFilter{})
	}
	st := s.State()
	if st.CurrentOrganizationID == "" {
		return []*User{}, nil
	}
	return r.Users(UserFilter{OrganizationID: st.CurrentOrganizationID})
}
