package tenancy

import (
	"slices"

	"github.com/hashicorp/go-memdb"
)

// OrganizationInput is the caller-supplied part of a new organization. Zero
// Plan and Status take the defaults; a nil Settings takes the plan preset.
type OrganizationInput struct {
	Name     string                `json:"name" validate:"required"`
	Domain   string                `json:"domain"`
	Plan     Plan                  `json:"plan" validate:"omitempty,oneof=starter professional enterprise custom"`
	Status   OrganizationStatus    `json:"status" validate:"omitempty,oneof=active trial suspended inactive"`
	Settings *OrganizationSettings `json:"settings"`
	Billing  *Billing              `json:"billing"`
	Security *Security             `json:"security"`
}

// OrganizationPatch replaces the top-level fields that are set and merges
// Settings, Billing and Security leaf by leaf.
type OrganizationPatch struct {
	Name     *string             `json:"name"`
	Domain   *string             `json:"domain"`
	Plan     *Plan               `json:"plan" validate:"omitempty,oneof=starter professional enterprise custom"`
	Status   *OrganizationStatus `json:"status" validate:"omitempty,oneof=active trial suspended inactive"`
	Settings *SettingsPatch      `json:"settings"`
	Billing  *BillingPatch       `json:"billing"`
	Security *SecurityPatch      `json:"security"`
}

type SettingsPatch struct {
	MaxUsers                   *int             `json:"max_users" validate:"omitempty,gte=0"`
	MaxStorageGB               *float64         `json:"max_storage_gb" validate:"omitempty,gte=0"`
	MaxProcessingHoursPerMonth *float64         `json:"max_processing_hours_per_month" validate:"omitempty,gte=0"`
	MaxClients                 *int             `json:"max_clients" validate:"omitempty,gte=0"`
	Features                   *[]string        `json:"features"`
	DataRetentionDays          *int             `json:"data_retention_days" validate:"omitempty,gte=0"`
	BackupFrequency            *BackupFrequency `json:"backup_frequency" validate:"omitempty,oneof=daily weekly monthly"`
	APIAccess                  *bool            `json:"api_access"`
	SSOEnabled                 *bool            `json:"sso_enabled"`
}

type BillingPatch struct {
	SubscriptionID  *string  `json:"subscription_id"`
	BillingCycle    *string  `json:"billing_cycle"`
	NextBillingDate *string  `json:"next_billing_date"`
	Amount          *float64 `json:"amount"`
	Currency        *string  `json:"currency"`
}

type SecurityPatch struct {
	EncryptionKey     *string `json:"encryption_key"`
	DataLocation      *string `json:"data_location"`
	ComplianceLevel   *string `json:"compliance_level"`
	AuditLogRetention *int    `json:"audit_log_retention"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (p *SettingsPatch) apply(s *OrganizationSettings) {
	if p == nil {
		return
	}
	set(&s.MaxUsers, p.MaxUsers)
	set(&s.MaxStorageGB, p.MaxStorageGB)
	set(&s.MaxProcessingHoursPerMonth, p.MaxProcessingHoursPerMonth)
	set(&s.MaxClients, p.MaxClients)
	if p.Features != nil {
		s.Features = slices.Clone(*p.Features)
	}
	set(&s.DataRetentionDays, p.DataRetentionDays)
	set(&s.BackupFrequency, p.BackupFrequency)
	set(&s.APIAccess, p.APIAccess)
	set(&s.SSOEnabled, p.SSOEnabled)
}

func (p *BillingPatch) apply(b **Billing) {
	if p == nil {
		return
	}
	if *b == nil {
		*b = &Billing{}
	}
	set(&(*b).SubscriptionID, p.SubscriptionID)
	set(&(*b).BillingCycle, p.BillingCycle)
	set(&(*b).NextBillingDate, p.NextBillingDate)
	set(&(*b).Amount, p.Amount)
	set(&(*b).Currency, p.Currency)
}

func (p *SecurityPatch) apply(s **Security) {
	if p == nil {
		return
	}
	if *s == nil {
		*s = &Security{}
	}
	set(&(*s).EncryptionKey, p.EncryptionKey)
	set(&(*s).DataLocation, p.DataLocation)
	set(&(*s).ComplianceLevel, p.ComplianceLevel)
	set(&(*s).AuditLogRetention, p.AuditLogRetention)
}

// CreateOrganization stores a new organization with zeroed usage and returns
// its id. Names and domains are not required to be unique.
func (r *Registry) CreateOrganization(in OrganizationInput) (string, error) {
	if err := check(EntityOrganization, in); err != nil {
		return "", err
	}
	if blank(in.Name) {
		return "", invalidInput(EntityOrganization, "name is required")
	}
	if in.Plan == "" {
		in.Plan = PlanStarter
	}
	if in.Status == "" {
		in.Status = OrganizationActive
	}

	id := r.newID()
	err := r.update(func(w *writeTxn) error {
		o := &Organization{
			ID:        id,
			Name:      in.Name,
			Domain:    in.Domain,
			Plan:      in.Plan,
			Status:    in.Status,
			CreatedAt: w.at,
			Usage:     Usage{LastUpdated: w.at},
		}
		if in.Settings != nil {
			o.Settings = *in.Settings
			o.Settings.Features = slices.Clone(in.Settings.Features)
		} else {
			o.Settings = DefaultSettings(in.Plan)
		}
		if in.Billing != nil {
			b := *in.Billing
			o.Billing = &b
		}
		if in.Security != nil {
			s := *in.Security
			o.Security = &s
		}
		if err := organizations.put(w.Txn, o); err != nil {
			return err
		}
		w.emit(EventOrganizationCreated, EntityOrganization, id, id, map[string]any{"name": o.Name, "plan": string(o.Plan)})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateOrganization applies patch to the organization. An empty patch
// changes nothing.
func (r *Registry) UpdateOrganization(id string, patch OrganizationPatch) error {
	if err := check(EntityOrganization, patch); err != nil {
		return err
	}
	if patch.Name != nil && blank(*patch.Name) {
		return invalidInput(EntityOrganization, "name cannot be empty")
	}
	return r.update(func(w *writeTxn) error {
		stored, err := organizations.get(w.Txn, id)
		if err != nil {
			return err
		}
		if patch == (OrganizationPatch{}) {
			return nil
		}
		o := stored.clone()
		set(&o.Name, patch.Name)
		set(&o.Domain, patch.Domain)
		set(&o.Plan, patch.Plan)
		set(&o.Status, patch.Status)
		patch.Settings.apply(&o.Settings)
		patch.Billing.apply(&o.Billing)
		patch.Security.apply(&o.Security)
		if err := organizations.put(w.Txn, o); err != nil {
			return err
		}
		w.emit(EventOrganizationUpdated, EntityOrganization, id, id, nil)
		return nil
	})
}

// UpdateResourceLimits merges limits into the organization's settings.
func (r *Registry) UpdateResourceLimits(id string, limits SettingsPatch) error {
	return r.UpdateOrganization(id, OrganizationPatch{Settings: &limits})
}

// SuspendOrganization suspends the organization and every one of its users.
// Calling it again has the same result.
func (r *Registry) SuspendOrganization(id string) error {
	return r.update(func(w *writeTxn) error {
		stored, err := organizations.get(w.Txn, id)
		if err != nil {
			return err
		}
		o := stored.clone()
		o.Status = OrganizationSuspended
		if err := organizations.put(w.Txn, o); err != nil {
			return err
		}
		members, err := users.ownedBy(w.Txn, id)
		if err != nil {
			return err
		}
		for _, m := range members {
			u := m.clone()
			u.Status = UserSuspended
			if err := users.put(w.Txn, u); err != nil {
				return err
			}
		}
		w.emit(EventOrganizationSuspended, EntityOrganization, id, id, map[string]any{"users_suspended": len(members)})
		return nil
	})
}

// DeleteOrganization removes the organization together with its users and
// clients. Sessions pointing at any of them lose that selection.
func (r *Registry) DeleteOrganization(id string) error {
	return r.update(func(w *writeTxn) error {
		o, err := organizations.get(w.Txn, id)
		if err != nil {
			return err
		}
		userIDs, err := users.removeOwnedBy(w.Txn, id)
		if err != nil {
			return err
		}
		clientIDs, err := clients.removeOwnedBy(w.Txn, id)
		if err != nil {
			return err
		}
		if err := organizations.remove(w.Txn, o); err != nil {
			return err
		}
		w.removed.orgs = append(w.removed.orgs, id)
		w.removed.users = append(w.removed.users, userIDs...)
		w.emit(EventOrganizationDeleted, EntityOrganization, id, id, map[string]any{
			"users_removed":   len(userIDs),
			"clients_removed": len(clientIDs),
		})
		return nil
	})
}

func (r *Registry) Organization(id string) (*Organization, error) {
	var out *Organization
	err := r.view(func(txn *memdb.Txn) error {
		o, err := organizations.get(txn, id)
		if err != nil {
			return err
		}
		out = o.clone()
		return nil
	})
	return out, err
}

// Organizations lists every organization, oldest first.
func (r *Registry) Organizations() ([]*Organization, error) {
	var out []*Organization
	err := r.view(func(txn *memdb.Txn) error {
		orgs, err := organizations.all(txn)
		if err != nil {
			return err
		}
		out = make([]*Organization, 0, len(orgs))
		for _, o := range orgs {
			out = append(out, o.clone())
		}
		return nil
	})
	return out, err
}
