package tenancy

import "time"

type EventType string

const (
	EventOrganizationCreated   EventType = "organization.created"
	EventOrganizationUpdated   EventType = "organization.updated"
	EventOrganizationSuspended EventType = "organization.suspended"
	EventOrganizationDeleted   EventType = "organization.deleted"

	EventUserInvited     EventType = "user.invited"
	EventUserUpdated     EventType = "user.updated"
	EventUserSuspended   EventType = "user.suspended"
	EventUserDeleted     EventType = "user.deleted"
	EventUserRoleChanged EventType = "user.role_changed"

	EventClientCreated EventType = "client.created"
	EventClientUpdated EventType = "client.updated"
	EventClientDeleted EventType = "client.deleted"

	EventUsageRecorded EventType = "usage.recorded"
	EventUsageReset    EventType = "usage.reset"
	EventQuotaExceeded EventType = "quota.exceeded"
)

const (
	EntityOrganization = "organization"
	EntityClient       = "client"
	EntityUser         = "user"
)

// Event describes a committed change. Listeners receive events in commit
// order, after the write transaction has finished. No later write commits
// until every listener has returned.
type Event struct {
	Type           EventType      `json:"type"`
	EntityType     string         `json:"entity_type"`
	EntityID       string         `json:"entity_id"`
	OrganizationID string         `json:"organization_id,omitempty"`
	At             time.Time      `json:"at"`
	Data           map[string]any `json:"data,omitempty"`
}

// Listener is called synchronously for every event. It must not call back
// into a write operation of the same registry on the calling goroutine.
type Listener func(Event)
