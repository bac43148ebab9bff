package tenancy

import (
	"github.com/hashicorp/go-memdb"
	"go.uber.org/zap"
)

const (
	ResourceUsers           = "users"
	ResourceStorageGB       = "storage_gb"
	ResourceProcessingHours = "processing_hours"
	ResourceClients         = "clients"
)

// QuotaWarning is one counter sitting above its ceiling. Limits are soft:
// nothing is refused because of them.
type QuotaWarning struct {
	Resource string  `json:"resource"`
	Used     float64 `json:"used"`
	Limit    float64 `json:"limit"`
}

func quotaWarnings(o *Organization) []QuotaWarning {
	var out []QuotaWarning
	over := func(resource string, used, limit float64) {
		if used > limit {
			out = append(out, QuotaWarning{Resource: resource, Used: used, Limit: limit})
		}
	}
	over(ResourceUsers, float64(o.Usage.CurrentUsers), float64(o.Settings.MaxUsers))
	over(ResourceStorageGB, o.Usage.StorageUsedGB, o.Settings.MaxStorageGB)
	over(ResourceProcessingHours, o.Usage.ProcessingHoursUsed, o.Settings.MaxProcessingHoursPerMonth)
	if o.Settings.MaxClients > 0 {
		over(ResourceClients, float64(o.Usage.CurrentClients), float64(o.Settings.MaxClients))
	}
	return out
}

// QuotaReport lists every tracked counter of the organization that exceeds
// its configured ceiling.
func (r *Registry) QuotaReport(orgID string) ([]QuotaWarning, error) {
	var out []QuotaWarning
	err := r.view(func(txn *memdb.Txn) error {
		o, err := organizations.get(txn, orgID)
		if err != nil {
			return err
		}
		out = quotaWarnings(o)
		return nil
	})
	return out, err
}

// QuotaSweep reports every organization currently over a ceiling.
func (r *Registry) QuotaSweep() (map[string][]QuotaWarning, error) {
	out := make(map[string][]QuotaWarning)
	err := r.view(func(txn *memdb.Txn) error {
		orgs, err := organizations.all(txn)
		if err != nil {
			return err
		}
		for _, o := range orgs {
			if w := quotaWarnings(o); len(w) > 0 {
				out[o.ID] = w
			}
		}
		return nil
	})
	return out, err
}

// flagQuota emits a warning event for each named resource o now exceeds.
func (r *Registry) flagQuota(w *writeTxn, o *Organization, resources ...string) {
	for _, q := range quotaWarnings(o) {
		for _, res := range resources {
			if q.Resource != res {
				continue
			}
			r.logger.Warn("Quota exceeded",
				zap.String("organization_id", o.ID),
				zap.String("resource", q.Resource),
				zap.Float64("used", q.Used),
				zap.Float64("limit", q.Limit))
			w.emit(EventQuotaExceeded, EntityOrganization, o.ID, o.ID, map[string]any{
				"resource": q.Resource,
				"used":     q.Used,
				"limit":    q.Limit,
			})
		}
	}
}
