package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/terraincognita07/titanlift/internal/db"
	"github.com/terraincognita07/titanlift/internal/models"
)

func seedLocalUser(t *testing.T, dbPath string) models.LocalUser {
	t.Helper()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	defer sqlDB.Close()

	user := models.LocalUser{
		ID:            gofakeit.UUID(),
		Username:      gofakeit.Username(),
		Gender:        models.GenderFemale,
		HeightCM:      168,
		WeightKG:      61.5,
		DateOfBirth:   "1994-07-12",
		ActivityLevel: models.ActivityActive,
		CreatedAt:     "2026-03-01T09:01:30.000Z",
	}
	if err := db.NewLocalUserRepository(database).Save(user); err != nil {
		t.Fatalf("save local user: %v", err)
	}
	return user
}

func TestShowUserPrintsStoredRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "titanlift.db")
	user := seedLocalUser(t, dbPath)

	var out bytes.Buffer
	if err := RunShowUserCommand(&out, dbPath); err != nil {
		t.Fatalf("RunShowUserCommand() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"id": "`+user.ID+`"`) {
		t.Fatalf("expected user id in output, got %s", out.String())
	}
	if !strings.Contains(out.String(), `"activity_level": "active"`) {
		t.Fatalf("expected activity level in output, got %s", out.String())
	}
}

func TestShowUserWithoutRecord(t *testing.T) {
	var out bytes.Buffer
	if err := RunShowUserCommand(&out, filepath.Join(t.TempDir(), "empty.db")); err != nil {
		t.Fatalf("RunShowUserCommand() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No local profile found") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestResetUserRequiresConfirmation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "titanlift.db")
	seedLocalUser(t, dbPath)

	err := RunResetUserCommand(&bytes.Buffer{}, dbPath, false)
	if !errors.Is(err, ErrResetNotConfirmed) {
		t.Fatalf("expected ErrResetNotConfirmed, got %v", err)
	}

	var out bytes.Buffer
	if err := RunShowUserCommand(&out, dbPath); err != nil {
		t.Fatalf("RunShowUserCommand() unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "No local profile found") {
		t.Fatal("expected record to survive an unconfirmed reset")
	}
}

func TestResetUserRemovesRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "titanlift.db")
	seedLocalUser(t, dbPath)

	var out bytes.Buffer
	if err := RunResetUserCommand(&out, dbPath, true); err != nil {
		t.Fatalf("RunResetUserCommand() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Local profile removed") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := RunResetUserCommand(&out, dbPath, true); err != nil {
		t.Fatalf("second reset unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No local profile found") {
		t.Fatalf("expected second reset to report no record, got %q", out.String())
	}
}

type failingStore struct{}

func (failingStore) Load() (models.LocalUser, bool, error) {
	return models.LocalUser{}, false, errors.New("disk on fire")
}

func (failingStore) Delete() (bool, error) {
	return false, errors.New("disk on fire")
}

func TestUserCommandsWrapStoreErrors(t *testing.T) {
	if err := showUser(&bytes.Buffer{}, failingStore{}); err == nil || !strings.Contains(err.Error(), "load local user") {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
	if err := resetUser(&bytes.Buffer{}, failingStore{}); err == nil || !strings.Contains(err.Error(), "delete local user") {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}
