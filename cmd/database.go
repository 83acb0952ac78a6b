package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// connect opens the configured database and migrates it.
func connect(cfg config.Config) error {
	if cfg.UsePostgres() {
		log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("Using PostgreSQL")

		return models.ConnectPostgres(models.PostgresConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Name:     cfg.DB.Name,
		})
	}

	err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o750)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	log.Info().Str("path", cfg.DB.Path).Msg("Using SQLite")
	return models.Connect(cfg.DB.Path)
}

// disconnect closes the database connection.
func disconnect() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
