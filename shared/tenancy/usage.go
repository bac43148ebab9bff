package tenancy

import (
	"github.com/hashicorp/go-memdb"
)

// UsageDelta is added to an organization's counters. Negative values release
// capacity; counters never drop below zero.
type UsageDelta struct {
	StorageGB       float64 `json:"storage_gb"`
	ProcessingHours float64 `json:"processing_hours"`
}

// GetUsage returns a copy of the organization's usage counters.
func (r *Registry) GetUsage(id string) (*Usage, error) {
	var out *Usage
	err := r.view(func(txn *memdb.Txn) error {
		o, err := organizations.get(txn, id)
		if err != nil {
			return err
		}
		u := o.Usage
		out = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Registry) RecordUsage(id string, delta UsageDelta) error {
	return r.update(func(w *writeTxn) error {
		stored, err := organizations.get(w.Txn, id)
		if err != nil {
			return err
		}
		o := stored.clone()
		o.Usage.StorageUsedGB = max(0, o.Usage.StorageUsedGB+delta.StorageGB)
		o.Usage.ProcessingHoursUsed = max(0, o.Usage.ProcessingHoursUsed+delta.ProcessingHours)
		o.Usage.LastUpdated = w.at
		if err := organizations.put(w.Txn, o); err != nil {
			return err
		}
		w.emit(EventUsageRecorded, EntityOrganization, id, id, map[string]any{
			"storage_gb":       delta.StorageGB,
			"processing_hours": delta.ProcessingHours,
		})
		r.flagQuota(w, o, ResourceStorageGB, ResourceProcessingHours)
		return nil
	})
}

// ResetProcessingHours starts a new monthly window for every organization
// and returns how many were reset.
func (r *Registry) ResetProcessingHours() (int, error) {
	n := 0
	err := r.update(func(w *writeTxn) error {
		orgs, err := organizations.all(w.Txn)
		if err != nil {
			return err
		}
		for _, stored := range orgs {
			o := stored.clone()
			o.Usage.ProcessingHoursUsed = 0
			o.Usage.LastUpdated = w.at
			if err := organizations.put(w.Txn, o); err != nil {
				return err
			}
			w.emit(EventUsageReset, EntityOrganization, o.ID, o.ID, nil)
			n++
		}
		return nil
	})
	return n, err
}
