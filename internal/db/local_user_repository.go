package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalUserRepository keeps the singleton user record under models.LocalUserKey.
type LocalUserRepository struct {
	database *gorm.DB
}

func NewLocalUserRepository(database *gorm.DB) *LocalUserRepository {
	return &LocalUserRepository{database: database}
}

func (repo *LocalUserRepository) Save(user models.LocalUser) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode local user: %w", err)
	}

	record := models.LocalRecord{
		Key:       models.LocalUserKey,
		Value:     string(encoded),
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (repo *LocalUserRepository) Load() (models.LocalUser, bool, error) {
	var record models.LocalRecord
	err := repo.database.Where("key = ?", models.LocalUserKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LocalUser{}, false, nil
	}
	if err != nil {
		return models.LocalUser{}, false, err
	}

	user := models.LocalUser{}
	if err := json.Unmarshal([]byte(record.Value), &user); err != nil {
		return models.LocalUser{}, false, fmt.Errorf("decode local user: %w", err)
	}
	return user, true, nil
}

func (repo *LocalUserRepository) Delete() (bool, error) {
	result := repo.database.Where("key = ?", models.LocalUserKey).Delete(&models.LocalRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
