package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/titanlift/internal/db"
	"github.com/terraincognita07/titanlift/internal/models"
)

var ErrResetNotConfirmed = errors.New("refusing to remove the local profile without --yes")

type localUserStore interface {
	Load() (models.LocalUser, bool, error)
	Delete() (bool, error)
}

func openLocalUsers(dbPath string) (*db.LocalUserRepository, func(), error) {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	return db.NewLocalUserRepository(database), func() { _ = sqlDB.Close() }, nil
}

// RunShowUserCommand prints the onboarding record stored in dbPath.
func RunShowUserCommand(out io.Writer, dbPath string) error {
	users, closeDB, err := openLocalUsers(dbPath)
	if err != nil {
		return err
	}
	defer closeDB()
	return showUser(out, users)
}

// RunResetUserCommand removes the onboarding record so the wizard runs again.
func RunResetUserCommand(out io.Writer, dbPath string, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}
	users, closeDB, err := openLocalUsers(dbPath)
	if err != nil {
		return err
	}
	defer closeDB()
	return resetUser(out, users)
}

func showUser(out io.Writer, users localUserStore) error {
	user, found, err := users.Load()
	if err != nil {
		return fmt.Errorf("load local user: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "No local profile found. Complete onboarding at /onboarding.")
		return nil
	}

	encoded, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local user: %w", err)
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}

func resetUser(out io.Writer, users localUserStore) error {
	removed, err := users.Delete()
	if err != nil {
		return fmt.Errorf("delete local user: %w", err)
	}
	if !removed {
		fmt.Fprintln(out, "No local profile found.")
		return nil
	}
	fmt.Fprintln(out, "✅ Local profile removed")
	fmt.Fprintln(out, "Onboarding will run again on the next visit.")
	return nil
}
