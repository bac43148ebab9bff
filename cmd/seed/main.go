package main

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"contaia-backend/shared/config"
	"contaia-backend/shared/logger"
	"contaia-backend/shared/tenancy"
)

type snapshot struct {
	Organizations []*tenancy.Organization `json:"organizations"`
	Users         []*tenancy.User         `json:"users"`
	Clients       []*tenancy.Client       `json:"clients"`
}

// Dumps the demo data set as JSON, for dashboard fixtures.
func main() {
	cfg := config.GetConfig()
	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting demo data seeding")

	table, err := tenancy.LoadRoleTable(cfg.RolesFile, tenancy.RoleOptions{
		FirmHierarchy:         cfg.FirmHierarchy,
		ManagerUserManagement: cfg.ManagerUserManagement,
		UserClientData:        cfg.UserClientData,
	})
	if err != nil {
		log.Fatal("Failed to load role table", zap.Error(err))
	}
	registry, err := tenancy.NewRegistry(tenancy.WithRoleTable(table), tenancy.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create registry", zap.Error(err))
	}
	if _, err := tenancy.SeedDemoData(registry); err != nil {
		log.Fatal("Failed to seed demo data", zap.Error(err))
	}

	var out snapshot
	if out.Organizations, err = registry.Organizations(); err != nil {
		log.Fatal("Failed to list organizations", zap.Error(err))
	}
	if out.Users, err = registry.Users(tenancy.UserFilter{}); err != nil {
		log.Fatal("Failed to list users", zap.Error(err))
	}
	for _, o := range out.Organizations {
		cs, err := registry.Clients(o.ID)
		if err != nil {
			log.Fatal("Failed to list clients", zap.String("organization_id", o.ID), zap.Error(err))
		}
		out.Clients = append(out.Clients, cs...)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal("Failed to write snapshot", zap.Error(err))
	}
	log.Info("Demo data seeding completed",
		zap.Int("organizations", len(out.Organizations)),
		zap.Int("users", len(out.Users)),
		zap.Int("clients", len(out.Clients)))
}
