package service

import (
	"context"
	"database/sql"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/database"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// Version is the application version reported by the version endpoint.
const Version = "1.2.0"

// SystemService handles system-related operations: health, version, and
// system settings.
type SystemService struct {
	db           *sql.DB
	settingsRepo *repository.SettingsRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settingsRepo *repository.SettingsRepository) *SystemService {
	return &SystemService{
		db:           db,
		settingsRepo: settingsRepo,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version string.
func (s *SystemService) CheckVersion() string {
	return Version
}

// GetSetting retrieves a system setting, decrypted if stored encrypted.
func (s *SystemService) GetSetting(key string) (model.SystemSetting, error) {
	return s.settingsRepo.GetSetting(key)
}

// SetSetting upserts a system setting; secret values are stored encrypted.
func (s *SystemService) SetSetting(ctx context.Context, key, value string, encrypted bool) error {
	return s.settingsRepo.SetSetting(ctx, key, value, encrypted)
}
