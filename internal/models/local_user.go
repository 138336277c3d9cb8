package models

import "time"

const LocalUserKey = "titanLiftUser"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
	ActivityAthlete   = "athlete"
)

var ActivityLevels = []string{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityAthlete,
}

// LocalUser is the record written once onboarding completes.
type LocalUser struct {
	Username      string  `json:"username"`
	Gender        string  `json:"gender"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	DateOfBirth   string  `json:"date_of_birth"`
	ActivityLevel string  `json:"activity_level"`
	ID            string  `json:"id"`
	CreatedAt     string  `json:"created_at"`
}

// LocalRecord is a JSON value stored under a well-known key.
type LocalRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"not null;column:value"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func (LocalRecord) TableName() string {
	return "local_records"
}

func IsGender(value string) bool {
	return value == GenderMale || value == GenderFemale
}

func IsActivityLevel(value string) bool {
	for _, level := range ActivityLevels {
		if level == value {
			return true
		}
	}
	return false
}
