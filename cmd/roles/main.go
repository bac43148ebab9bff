package main

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"contaia-backend/shared/config"
	"contaia-backend/shared/logger"
	"contaia-backend/shared/tenancy"
)

// Prints the effective role table in the ROLES_FILE format, so it can be
// edited and loaded back.
func main() {
	cfg := config.GetConfig()
	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	table, err := tenancy.LoadRoleTable(cfg.RolesFile, tenancy.RoleOptions{
		FirmHierarchy:         cfg.FirmHierarchy,
		ManagerUserManagement: cfg.ManagerUserManagement,
		UserClientData:        cfg.UserClientData,
	})
	if err != nil {
		log.Fatal("Failed to load role table", zap.String("path", cfg.RolesFile), zap.Error(err))
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(table.Export()); err != nil {
		log.Fatal("Failed to write role table", zap.Error(err))
	}
	_ = enc.Close()
}
