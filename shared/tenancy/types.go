package tenancy

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"time"
)

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
	PlanCustom       Plan = "custom"
)

type OrganizationStatus string

const (
	OrganizationActive    OrganizationStatus = "active"
	OrganizationTrial     OrganizationStatus = "trial"
	OrganizationSuspended OrganizationStatus = "suspended"
	OrganizationInactive  OrganizationStatus = "inactive"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserPending   UserStatus = "pending"
	UserSuspended UserStatus = "suspended"
)

type ClientStatus string

const (
	ClientActive     ClientStatus = "active"
	ClientInactive   ClientStatus = "inactive"
	ClientOnboarding ClientStatus = "onboarding"
)

type BackupFrequency string

const (
	BackupDaily   BackupFrequency = "daily"
	BackupWeekly  BackupFrequency = "weekly"
	BackupMonthly BackupFrequency = "monthly"
)

// Never is how an unset activity timestamp is rendered.
const Never = "Never"

// Timestamp is a point in time that may not have happened yet. The zero value
// marshals as "Never".
type Timestamp struct {
	time.Time
}

func At(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t Timestamp) IsNever() bool { return t.Time.IsZero() }

func (t Timestamp) String() string {
	if t.IsNever() {
		return Never
	}
	return t.Time.Format(time.RFC3339)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsNever() {
		return json.Marshal(Never)
	}
	return json.Marshal(t.Time)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" || s == Never {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// OrganizationSettings holds the quota configuration and feature switches.
type OrganizationSettings struct {
	MaxUsers                   int             `json:"max_users" validate:"gte=0"`
	MaxStorageGB               float64         `json:"max_storage_gb" validate:"gte=0"`
	MaxProcessingHoursPerMonth float64         `json:"max_processing_hours_per_month" validate:"gte=0"`
	MaxClients                 int             `json:"max_clients,omitempty" validate:"gte=0"`
	Features                   []string        `json:"features"`
	DataRetentionDays          int             `json:"data_retention_days" validate:"gte=0"`
	BackupFrequency            BackupFrequency `json:"backup_frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
	APIAccess                  bool            `json:"api_access"`
	SSOEnabled                 bool            `json:"sso_enabled"`
}

// Usage holds the mutable counters compared against settings.
type Usage struct {
	CurrentUsers        int       `json:"current_users"`
	StorageUsedGB       float64   `json:"storage_used_gb"`
	ProcessingHoursUsed float64   `json:"processing_hours_used"`
	CurrentClients      int       `json:"current_clients"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Billing and Security are carried as-is; nothing in the registry reads them.
type Billing struct {
	SubscriptionID  string  `json:"subscription_id,omitempty"`
	BillingCycle    string  `json:"billing_cycle,omitempty"`
	NextBillingDate string  `json:"next_billing_date,omitempty"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency,omitempty"`
}

type Security struct {
	EncryptionKey     string `json:"encryption_key,omitempty"`
	DataLocation      string `json:"data_location,omitempty"`
	ComplianceLevel   string `json:"compliance_level,omitempty"`
	AuditLogRetention int    `json:"audit_log_retention,omitempty"`
}

type Organization struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Domain    string               `json:"domain"`
	Plan      Plan                 `json:"plan"`
	Status    OrganizationStatus   `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Settings  OrganizationSettings `json:"settings"`
	Usage     Usage                `json:"usage"`
	Billing   *Billing             `json:"billing,omitempty"`
	Security  *Security            `json:"security,omitempty"`
}

func (o *Organization) clone() *Organization {
	c := *o
	c.Settings.Features = slices.Clone(o.Settings.Features)
	if o.Billing != nil {
		b := *o.Billing
		c.Billing = &b
	}
	if o.Security != nil {
		s := *o.Security
		c.Security = &s
	}
	return &c
}

type ClientSettings struct {
	AIProcessingEnabled bool            `json:"ai_processing_enabled"`
	DataRetentionDays   int             `json:"data_retention_days" validate:"gte=0"`
	BackupFrequency     BackupFrequency `json:"backup_frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
	ComplianceLevel     string          `json:"compliance_level,omitempty" validate:"omitempty,oneof=basic enhanced enterprise"`
}

type ClientUsage struct {
	StorageUsedMB       float64   `json:"storage_used_mb"`
	ProcessingHoursUsed float64   `json:"processing_hours_used"`
	LastProcessed       Timestamp `json:"last_processed"`
}

// Client is an accounting firm's customer; it always belongs to one Organization.
type Client struct {
	ID           string         `json:"id"`
	FirmID       string         `json:"firm_id"`
	Name         string         `json:"name"`
	BusinessType string         `json:"business_type"`
	ContactEmail string         `json:"contact_email"`
	ContactPhone string         `json:"contact_phone"`
	Address      string         `json:"address"`
	Status       ClientStatus   `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	Settings     ClientSettings `json:"settings"`
	Usage        ClientUsage    `json:"usage"`
}

func (c *Client) clone() *Client {
	cp := *c
	return &cp
}

type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	Role           Role           `json:"role"`
	OrganizationID string         `json:"organization_id"`
	Permissions    []string       `json:"permissions"`
	Status         UserStatus     `json:"status"`
	LastActive     Timestamp      `json:"last_active"`
	CreatedAt      time.Time      `json:"created_at"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

func (u *User) clone() *User {
	c := *u
	c.Permissions = slices.Clone(u.Permissions)
	c.Metadata = maps.Clone(u.Metadata)
	return &c
}
