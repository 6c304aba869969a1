package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func TestSettingsRepository_PlaintextSettings(t *testing.T) {
	t.Run("set then get round-trips", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, testutil.TestFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsRepository failed: %v", err)
		}

		if err := repo.SetSetting(context.Background(), "sync_schedule", "0 */6 * * *", false); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}

		got, err := repo.GetSetting("sync_schedule")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if got.Value != "0 */6 * * *" {
			t.Errorf("Expected value to round-trip, got %q", got.Value)
		}
		if got.IsEncrypted {
			t.Error("Expected plaintext setting")
		}
	})

	t.Run("set overwrites an existing key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("NewSettingsRepository failed: %v", err)
		}

		ctx := context.Background()
		if err := repo.SetSetting(ctx, "theme", "light", false); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}
		if err := repo.SetSetting(ctx, "theme", "dark", false); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}

		testutil.AssertRowCount(t, db, "system_setting", 1)

		got, err := repo.GetSetting("theme")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if got.Value != "dark" {
			t.Errorf("Expected overwritten value 'dark', got %q", got.Value)
		}
	})

	t.Run("returns ErrSettingNotFound for unknown key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("NewSettingsRepository failed: %v", err)
		}

		_, err = repo.GetSetting("missing")
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})
}

func TestSettingsRepository_EncryptedSettings(t *testing.T) {
	t.Run("stores ciphertext and decrypts on read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, testutil.TestFernetKey)
		if err != nil {
			t.Fatalf("NewSettingsRepository failed: %v", err)
		}

		secret := "api-token-12345"
		if err := repo.SetSetting(context.Background(), "api_token", secret, true); err != nil {
			t.Fatalf("SetSetting failed: %v", err)
		}

		// The raw stored value must not contain the plaintext.
		var stored string
		if err := db.QueryRow(`SELECT value FROM system_setting WHERE key = 'api_token'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read raw setting: %v", err)
		}
		if strings.Contains(stored, secret) {
			t.Error("Expected stored value to be encrypted, found plaintext")
		}

		got, err := repo.GetSetting("api_token")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if got.Value != secret {
			t.Errorf("Expected decrypted value %q, got %q", secret, got.Value)
		}
		if !got.IsEncrypted {
			t.Error("Expected setting to be flagged encrypted")
		}
	})

	t.Run("writing encrypted value without key fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("NewSettingsRepository failed: %v", err)
		}

		err = repo.SetSetting(context.Background(), "api_token", "secret", true)
		if !errors.Is(err, apperrors.ErrEncryptionUnavailable) {
			t.Errorf("Expected ErrEncryptionUnavailable, got %v", err)
		}
	})

	t.Run("rejects a malformed fernet key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		_, err := repository.NewSettingsRepository(db, "not-a-key")
		if err == nil {
			t.Error("Expected error for malformed fernet key")
		}
	})
}
