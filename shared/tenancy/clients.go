package tenancy

import (
	"github.com/hashicorp/go-memdb"
)

type ClientInput struct {
	FirmID       string          `json:"firm_id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	BusinessType string          `json:"business_type"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone"`
	Address      string          `json:"address"`
	Status       ClientStatus    `json:"status" validate:"omitempty,oneof=active inactive onboarding"`
	Settings     *ClientSettings `json:"settings"`
}

type ClientPatch struct {
	Name         *string              `json:"name"`
	BusinessType *string              `json:"business_type"`
	ContactEmail *string              `json:"contact_email"`
	ContactPhone *string              `json:"contact_phone"`
	Address      *string              `json:"address"`
	Status       *ClientStatus        `json:"status" validate:"omitempty,oneof=active inactive onboarding"`
	Settings     *ClientSettingsPatch `json:"settings"`
	Usage        *ClientUsagePatch    `json:"usage"`
}

type ClientSettingsPatch struct {
	AIProcessingEnabled *bool            `json:"ai_processing_enabled"`
	DataRetentionDays   *int             `json:"data_retention_days" validate:"omitempty,gte=0"`
	BackupFrequency     *BackupFrequency `json:"backup_frequency" validate:"omitempty,oneof=daily weekly monthly"`
	ComplianceLevel     *string          `json:"compliance_level" validate:"omitempty,oneof=basic enhanced enterprise"`
}

type ClientUsagePatch struct {
	StorageUsedMB       *float64   `json:"storage_used_mb" validate:"omitempty,gte=0"`
	ProcessingHoursUsed *float64   `json:"processing_hours_used" validate:"omitempty,gte=0"`
	LastProcessed       *Timestamp `json:"last_processed"`
}

func (p *ClientSettingsPatch) apply(s *ClientSettings) {
	if p == nil {
		return
	}
	set(&s.AIProcessingEnabled, p.AIProcessingEnabled)
	set(&s.DataRetentionDays, p.DataRetentionDays)
	set(&s.BackupFrequency, p.BackupFrequency)
	set(&s.ComplianceLevel, p.ComplianceLevel)
}

func (p *ClientUsagePatch) apply(u *ClientUsage) {
	if p == nil {
		return
	}
	set(&u.StorageUsedMB, p.StorageUsedMB)
	set(&u.ProcessingHoursUsed, p.ProcessingHoursUsed)
	set(&u.LastProcessed, p.LastProcessed)
}

// defaultClientSettings inherits retention and backup cadence from the firm.
func defaultClientSettings(firm *Organization) ClientSettings {
	s := ClientSettings{
		AIProcessingEnabled: true,
		DataRetentionDays:   firm.Settings.DataRetentionDays,
		BackupFrequency:     firm.Settings.BackupFrequency,
		ComplianceLevel:     "basic",
	}
	if s.BackupFrequency == "" {
		s.BackupFrequency = BackupDaily
	}
	return s
}

// CreateClient adds a client to an existing firm and bumps the firm's client
// count.
func (r *Registry) CreateClient(in ClientInput) (string, error) {
	if err := check(EntityClient, in); err != nil {
		return "", err
	}
	if blank(in.Name) {
		return "", invalidInput(EntityClient, "name is required")
	}
	if in.Status == "" {
		in.Status = ClientActive
	}

	id := r.newID()
	err := r.update(func(w *writeTxn) error {
		stored, err := organizations.get(w.Txn, in.FirmID)
		if err != nil {
			return err
		}
		c := &Client{
			ID:           id,
			FirmID:       in.FirmID,
			Name:         in.Name,
			BusinessType: in.BusinessType,
			ContactEmail: in.ContactEmail,
			ContactPhone: in.ContactPhone,
			Address:      in.Address,
			Status:       in.Status,
			CreatedAt:    w.at,
		}
		if in.Settings != nil {
			c.Settings = *in.Settings
		} else {
			c.Settings = defaultClientSettings(stored)
		}
		if err := clients.put(w.Txn, c); err != nil {
			return err
		}
		org := stored.clone()
		org.Usage.CurrentClients++
		org.Usage.LastUpdated = w.at
		if err := organizations.put(w.Txn, org); err != nil {
			return err
		}
		w.emit(EventClientCreated, EntityClient, id, c.FirmID, map[string]any{"name": c.Name})
		r.flagQuota(w, org, ResourceClients)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Registry) UpdateClient(id string, patch ClientPatch) error {
	if err := check(EntityClient, patch); err != nil {
		return err
	}
	if patch.Name != nil && blank(*patch.Name) {
		return invalidInput(EntityClient, "name cannot be empty")
	}
	return r.update(func(w *writeTxn) error {
		stored, err := clients.get(w.Txn, id)
		if err != nil {
			return err
		}
		if patch == (ClientPatch{}) {
			return nil
		}
		c := stored.clone()
		set(&c.Name, patch.Name)
		set(&c.BusinessType, patch.BusinessType)
		set(&c.ContactEmail, patch.ContactEmail)
		set(&c.ContactPhone, patch.ContactPhone)
		set(&c.Address, patch.Address)
		set(&c.Status, patch.Status)
		patch.Settings.apply(&c.Settings)
		patch.Usage.apply(&c.Usage)
		if err := clients.put(w.Txn, c); err != nil {
			return err
		}
		w.emit(EventClientUpdated, EntityClient, id, c.FirmID, nil)
		return nil
	})
}

// DeleteClient removes the client and decrements its firm's client count.
func (r *Registry) DeleteClient(id string) error {
	return r.update(func(w *writeTxn) error {
		c, err := clients.get(w.Txn, id)
		if err != nil {
			return err
		}
		if err := clients.remove(w.Txn, c); err != nil {
			return err
		}
		stored, err := organizations.get(w.Txn, c.FirmID)
		if err != nil && !IsNotFound(err) {
			return err
		}
		if stored != nil {
			o := stored.clone()
			if o.Usage.CurrentClients > 0 {
				o.Usage.CurrentClients--
			}
			o.Usage.LastUpdated = w.at
			if err := organizations.put(w.Txn, o); err != nil {
				return err
			}
		}
		w.emit(EventClientDeleted, EntityClient, id, c.FirmID, nil)
		return nil
	})
}

func (r *Registry) Client(id string) (*Client, error) {
	var out *Client
	err := r.view(func(txn *memdb.Txn) error {
		c, err := clients.get(txn, id)
		if err != nil {
			return err
		}
		out = c.clone()
		return nil
	})
	return out, err
}

// Clients lists the firm's clients, oldest first.
func (r *Registry) Clients(firmID string) ([]*Client, error) {
	var out []*Client
	err := r.view(func(txn *memdb.Txn) error {
		if !organizations.exists(txn, firmID) {
			return notFound(EntityOrganization, firmID)
		}
		rows, err := clients.ownedBy(txn, firmID)
		if err != nil {
			return err
		}
		out = make([]*Client, 0, len(rows))
		for _, c := range rows {
			out = append(out, c.clone())
		}
		return nil
	})
	return out, err
}
