package tenancy

import "fmt"

// Demo holds the ids created by SeedDemoData, keyed by organization name,
// user email and client name.
type Demo struct {
	Organizations map[string]string
	Users         map[string]string
	Clients       map[string]string
}

type demoUser struct {
	email, name, role, org string
	metadata               map[string]any
}

type demoClient struct {
	in        ClientInput
	storageMB float64
	hours     float64
}

// SeedDemoData loads two demo firms with their staff and clients plus a
// platform administrator. Users are activated after invitation.
func SeedDemoData(r *Registry) (*Demo, error) {
	demo := &Demo{
		Organizations: make(map[string]string),
		Users:         make(map[string]string),
		Clients:       make(map[string]string),
	}

	firms := []struct {
		in    OrganizationInput
		usage UsageDelta
	}{
		{
			in: OrganizationInput{
				Name:   "Smith & Associates CPA",
				Domain: "smith-cpa.contaia.com",
				Plan:   PlanProfessional,
				Status: OrganizationActive,
				Settings: &OrganizationSettings{
					MaxUsers:                   15,
					MaxStorageGB:               200,
					MaxProcessingHoursPerMonth: 1000,
					MaxClients:                 50,
					Features:                   []string{"ai-insights", "advanced-workflows", "custom-reports", "api-access"},
					DataRetentionDays:          2555,
					BackupFrequency:            BackupDaily,
					APIAccess:                  true,
					SSOEnabled:                 true,
				},
				Billing: &Billing{
					SubscriptionID:  "sub_smith_001",
					BillingCycle:    "monthly",
					NextBillingDate: "2024-07-15",
					Amount:          599,
					Currency:        "USD",
				},
				Security: &Security{
					DataLocation:      "us-east-1",
					ComplianceLevel:   "sox",
					AuditLogRetention: 2555,
				},
			},
			usage: UsageDelta{StorageGB: 89.2, ProcessingHours: 456},
		},
		{
			in: OrganizationInput{
				Name:   "Johnson Tax Services",
				Domain: "johnson-tax.contaia.com",
				Plan:   PlanStarter,
				Status: OrganizationTrial,
				Settings: &OrganizationSettings{
					MaxUsers:                   5,
					MaxStorageGB:               50,
					MaxProcessingHoursPerMonth: 200,
					MaxClients:                 15,
					Features:                   []string{"basic-workflows"},
					DataRetentionDays:          365,
					BackupFrequency:            BackupWeekly,
				},
				Billing: &Billing{
					SubscriptionID:  "sub_johnson_001",
					BillingCycle:    "monthly",
					NextBillingDate: "2024-07-01",
					Currency:        "USD",
				},
				Security: &Security{
					DataLocation:      "us-west-2",
					ComplianceLevel:   "basic",
					AuditLogRetention: 365,
				},
			},
			usage: UsageDelta{StorageGB: 12.4, ProcessingHours: 67},
		},
	}
	for _, f := range firms {
		id, err := r.CreateOrganization(f.in)
		if err != nil {
			return nil, fmt.Errorf("seed organization %q: %w", f.in.Name, err)
		}
		if err := r.RecordUsage(id, f.usage); err != nil {
			return nil, fmt.Errorf("seed usage %q: %w", f.in.Name, err)
		}
		demo.Organizations[f.in.Name] = id
	}

	smith := demo.Organizations["Smith & Associates CPA"]
	staff := []demoUser{
		{"admin@contaia.com", "Platform Administrator", "platform-admin", "",
			map[string]any{"department": "IT", "job_title": "Platform Administrator"}},
		{"admin@smith-cpa.com", "John Smith", "firm-admin", smith,
			map[string]any{"department": "Management", "job_title": "Managing Partner"}},
		{"manager@smith-cpa.com", "Sarah Johnson", "firm-manager", smith,
			map[string]any{"department": "Operations", "job_title": "Operations Manager"}},
		{"accountant@smith-cpa.com", "Mike Davis", "firm-user", smith,
			map[string]any{"department": "Accounting", "job_title": "Senior Accountant"}},
	}
	active := UserActive
	for _, s := range staff {
		id, err := r.InviteUser(InviteInput{
			Email:          s.email,
			Name:           s.name,
			Role:           s.role,
			OrganizationID: s.org,
			Metadata:       s.metadata,
		})
		if err != nil {
			return nil, fmt.Errorf("seed user %q: %w", s.email, err)
		}
		if err := r.UpdateUser(id, UserPatch{Status: &active}); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", s.email, err)
		}
		demo.Users[s.email] = id
	}

	clientsToSeed := []demoClient{
		{
			in: ClientInput{
				FirmID: smith, Name: "Acme Corporation", BusinessType: "Manufacturing",
				ContactEmail: "finance@acme.com", ContactPhone: "+1-555-1001",
				Address: "123 Business Ave, City, ST 12345", Status: ClientActive,
				Settings: &ClientSettings{AIProcessingEnabled: true, DataRetentionDays: 2555, BackupFrequency: BackupDaily, ComplianceLevel: "enhanced"},
			},
			storageMB: 1250, hours: 45,
		},
		{
			in: ClientInput{
				FirmID: smith, Name: "TechStart Inc", BusinessType: "Technology",
				ContactEmail: "cfo@techstart.com", ContactPhone: "+1-555-1002",
				Address: "456 Innovation Dr, Tech City, ST 54321", Status: ClientActive,
				Settings: &ClientSettings{AIProcessingEnabled: true, DataRetentionDays: 1825, BackupFrequency: BackupWeekly, ComplianceLevel: "basic"},
			},
			storageMB: 890, hours: 23,
		},
		{
			in: ClientInput{
				FirmID: smith, Name: "Local Restaurant Group", BusinessType: "Food Service",
				ContactEmail: "accounting@localrestaurants.com", ContactPhone: "+1-555-1003",
				Address: "789 Main St, Downtown, ST 67890", Status: ClientOnboarding,
				Settings: &ClientSettings{DataRetentionDays: 1095, BackupFrequency: BackupWeekly, ComplianceLevel: "basic"},
			},
			storageMB: 45, hours: 2,
		},
	}
	for _, c := range clientsToSeed {
		id, err := r.CreateClient(c.in)
		if err != nil {
			return nil, fmt.Errorf("seed client %q: %w", c.in.Name, err)
		}
		storage, hours := c.storageMB, c.hours
		if err := r.UpdateClient(id, ClientPatch{Usage: &ClientUsagePatch{StorageUsedMB: &storage, ProcessingHoursUsed: &hours}}); err != nil {
			return nil, fmt.Errorf("seed client %q: %w", c.in.Name, err)
		}
		demo.Clients[c.in.Name] = id
	}
	return demo, nil
}
