package models

import "time"

type LeaderboardEntry struct {
	Username      string   `json:"username"`
	TotalVolumeKG *float64 `json:"total_volume_kg"`
	Rank          *int64   `json:"rank"`
}

type DailyActivity struct {
	Date     string  `json:"date"`
	VolumeKG float64 `json:"volume_kg"`
}

type UserProfile struct {
	Username      string          `json:"username"`
	TotalWorkouts int64           `json:"total_workouts"`
	TotalVolumeKG float64         `json:"total_volume_kg"`
	JoinDate      time.Time       `json:"join_date"`
	ActivityLog   []DailyActivity `json:"activity_log"`
	CurrentStreak int64           `json:"current_streak"`
	MaxStreak     int64           `json:"max_streak"`
}

type WorkoutHistoryEntry struct {
	ID            string     `json:"id"`
	Name          *string    `json:"name"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalVolumeKG float64    `json:"total_volume_kg"`
	ExerciseCount int64      `json:"exercise_count"`
}

type PhysicalStats struct {
	HeightCM        float64 `json:"height_cm"`
	CurrentWeightKG float64 `json:"current_weight_kg"`
	Gender          string  `json:"gender"`
	ActivityLevel   string  `json:"activity_level"`
	TDEE            float64 `json:"tdee"`
}

// PhysicalStatsUpdate is the body sent when the profile stats form is saved.
type PhysicalStatsUpdate struct {
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
}

type NutritionLog struct {
	CaloriesIn float64 `json:"calories_in"`
}

type WeightEntry struct {
	WeightKG float64 `json:"weight_kg"`
	Date     string  `json:"date"`
}

type WorkoutTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
