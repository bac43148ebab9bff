package main

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contaia-backend/shared/config"
	"contaia-backend/shared/database"
	log "contaia-backend/shared/logger"
)

// Drops the audit tables and recreates them empty.
func main() {
	cfg := config.GetConfig()
	l, err := log.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("Starting audit database reset", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()+" TimeZone=UTC"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	tables := []string{
		"audit_logs",
	}
	for _, table := range tables {
		l.Info("Dropping table", zap.String("table", table))
		if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE;").Error; err != nil {
			l.Fatal("Failed to drop table", zap.String("table", table), zap.Error(err))
		}
	}

	if err := database.Migrate(db, l); err != nil {
		l.Fatal("Failed to recreate tables", zap.Error(err))
	}
	l.Info("Audit database reset completed")
}
