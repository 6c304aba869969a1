package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// SettingsRepository provides data access methods for the system_setting
// table. Values flagged as encrypted are stored as fernet tokens and
// transparently decrypted on read.
type SettingsRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSettingsRepository creates a SettingsRepository. fernetKey may be empty,
// which disables encrypted settings; reading or writing one then fails with
// ErrEncryptionUnavailable.
func NewSettingsRepository(db *sql.DB, fernetKey string) (*SettingsRepository, error) {
	repo := &SettingsRepository{db: db}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		repo.key = key
	}

	return repo, nil
}

// GetSetting retrieves a setting by key, decrypting the value if needed.
func (r *SettingsRepository) GetSetting(key string) (model.SystemSetting, error) {
	row := r.db.QueryRow(`
		SELECT key, value, is_encrypted, updated_at
		FROM system_setting
		WHERE key = ?
	`, key)

	var setting model.SystemSetting
	var updatedAtStr string

	err := row.Scan(&setting.Key, &setting.Value, &setting.IsEncrypted, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.SystemSetting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.SystemSetting{}, fmt.Errorf("failed to scan system_setting row: %w", err)
	}

	setting.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.SystemSetting{}, err
	}

	if setting.IsEncrypted {
		if r.key == nil {
			return model.SystemSetting{}, apperrors.ErrEncryptionUnavailable
		}
		plaintext := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{r.key})
		if plaintext == nil {
			return model.SystemSetting{}, fmt.Errorf("failed to decrypt setting %s", key)
		}
		setting.Value = string(plaintext)
	}

	return setting, nil
}

// SetSetting upserts a setting, encrypting the value when requested.
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string, encrypted bool) error {
	stored := value
	if encrypted {
		if r.key == nil {
			return apperrors.ErrEncryptionUnavailable
		}
		token, err := fernet.EncryptAndSign([]byte(value), r.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt setting %s: %w", key, err)
		}
		stored = string(token)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx, `
		UPDATE system_setting
		SET value = ?, is_encrypted = ?, updated_at = ?
		WHERE key = ?
	`, stored, encrypted, now, key)
	if err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read setting update result: %w", err)
	}
	if affected == 0 {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO system_setting (key, value, is_encrypted, updated_at)
			VALUES (?, ?, ?, ?)
		`, key, stored, encrypted, now)
		if err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", key, err)
		}
	}

	return nil
}
