package tenancy

// DefaultSettings returns the preset limits for plan. Custom and unknown
// plans get the starter preset.
func DefaultSettings(plan Plan) OrganizationSettings {
	switch plan {
	case PlanProfessional:
		return OrganizationSettings{
			MaxUsers:                   25,
			MaxStorageGB:               100,
			MaxProcessingHoursPerMonth: 500,
			Features:                   []string{"ai-insights", "advanced-workflows", "custom-reports"},
			DataRetentionDays:          2555,
			BackupFrequency:            BackupDaily,
		}
	case PlanEnterprise:
		return OrganizationSettings{
			MaxUsers:                   100,
			MaxStorageGB:               500,
			MaxProcessingHoursPerMonth: 2000,
			Features:                   []string{"ai-insights", "advanced-workflows", "custom-reports", "api-access", "sso"},
			DataRetentionDays:          2555,
			BackupFrequency:            BackupDaily,
			APIAccess:                  true,
			SSOEnabled:                 true,
		}
	default:
		return OrganizationSettings{
			MaxUsers:                   5,
			MaxStorageGB:               25,
			MaxProcessingHoursPerMonth: 100,
			Features:                   []string{"basic-workflows"},
			DataRetentionDays:          365,
			BackupFrequency:            BackupWeekly,
		}
	}
}
