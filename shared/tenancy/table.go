package tenancy

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
)

const (
	tableOrganizations = "organizations"
	tableClients       = "clients"
	tableUsers         = "users"

	indexID           = "id"
	indexFirm         = "firm_id"
	indexOrganization = "organization_id"
)

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableOrganizations: {
				Name: tableOrganizations,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
			tableClients: {
				Name: tableClients,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexFirm: {
						Name:    indexFirm,
						Indexer: &memdb.StringFieldIndex{Field: "FirmID"},
					},
				},
			},
			tableUsers: {
				Name: tableUsers,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					// platform admins carry no organization
					indexOrganization: {
						Name:         indexOrganization,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "OrganizationID"},
					},
				},
			},
		},
	}
}

type record interface {
	key() string
	created() time.Time
}

func (o *Organization) key() string        { return o.ID }
func (o *Organization) created() time.Time { return o.CreatedAt }
func (c *Client) key() string              { return c.ID }
func (c *Client) created() time.Time       { return c.CreatedAt }
func (u *User) key() string                { return u.ID }
func (u *User) created() time.Time         { return u.CreatedAt }

// table is a typed view over one memdb table. owner names the index holding
// the owning organization id; it is empty for the organizations table.
type table[T record] struct {
	name   string
	entity string
	owner  string
}

var (
	organizations = table[*Organization]{name: tableOrganizations, entity: "organization"}
	clients       = table[*Client]{name: tableClients, entity: "client", owner: indexFirm}
	users         = table[*User]{name: tableUsers, entity: "user", owner: indexOrganization}
)

func (t table[T]) get(txn *memdb.Txn, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, notFound(t.entity, id)
	}
	raw, err := txn.First(t.name, indexID, id)
	if err != nil {
		return zero, fmt.Errorf("%s lookup: %w", t.entity, err)
	}
	if raw == nil {
		return zero, notFound(t.entity, id)
	}
	return raw.(T), nil
}

func (t table[T]) exists(txn *memdb.Txn, id string) bool {
	_, err := t.get(txn, id)
	return err == nil
}

// all returns every row, oldest first.
func (t table[T]) all(txn *memdb.Txn) ([]T, error) {
	return t.collect(txn, indexID)
}

// ownedBy returns the rows belonging to orgID, oldest first.
func (t table[T]) ownedBy(txn *memdb.Txn, orgID string) ([]T, error) {
	if t.owner == "" {
		return nil, fmt.Errorf("%s has no owner index", t.entity)
	}
	return t.collect(txn, t.owner, orgID)
}

func (t table[T]) collect(txn *memdb.Txn, index string, args ...any) ([]T, error) {
	it, err := txn.Get(t.name, index, args...)
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", t.entity, err)
	}
	var out []T
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(T))
	}
	sortRecords(out)
	return out, nil
}

func (t table[T]) put(txn *memdb.Txn, v T) error {
	if err := txn.Insert(t.name, v); err != nil {
		return fmt.Errorf("%s insert: %w", t.entity, err)
	}
	return nil
}

func (t table[T]) remove(txn *memdb.Txn, v T) error {
	if err := txn.Delete(t.name, v); err != nil {
		return fmt.Errorf("%s delete: %w", t.entity, err)
	}
	return nil
}

// removeOwnedBy deletes every row owned by orgID and returns their ids.
func (t table[T]) removeOwnedBy(txn *memdb.Txn, orgID string) ([]string, error) {
	rows, err := t.ownedBy(txn, orgID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if err := t.remove(txn, row); err != nil {
			return nil, err
		}
		ids = append(ids, row.key())
	}
	return ids, nil
}

func sortRecords[T record](rows []T) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].created(), rows[j].created()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return rows[i].key() < rows[j].key()
	})
}
