package services

import (
	"math"
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
)

const analyticsWeeks = 8

type WeeklyVolume struct {
	WeekStart     time.Time
	VolumeKG      float64
	HeightPercent float64
}

// BuildWeeklyVolume sums the activity log into Monday-based weeks, ending with
// the week that contains now. Days that fail to parse are skipped.
func BuildWeeklyVolume(log []models.DailyActivity, now time.Time, weeks int) []WeeklyVolume {
	if weeks <= 0 {
		weeks = analyticsWeeks
	}
	currentWeek := weekStart(now)
	firstWeek := currentWeek.AddDate(0, 0, -7*(weeks-1))

	buckets := make([]WeeklyVolume, weeks)
	for index := range buckets {
		buckets[index].WeekStart = firstWeek.AddDate(0, 0, 7*index)
	}

	for _, day := range log {
		date, err := time.ParseInLocation(time.DateOnly, day.Date, now.Location())
		if err != nil {
			continue
		}
		week := weekStart(date)
		if week.Before(firstWeek) {
			continue
		}
		offset := int(math.Round(week.Sub(firstWeek).Hours()/24)) / 7
		if offset >= weeks {
			continue
		}
		buckets[offset].VolumeKG += day.VolumeKG
	}

	peak := 0.0
	for _, bucket := range buckets {
		peak = math.Max(peak, bucket.VolumeKG)
	}
	if peak > 0 {
		for index := range buckets {
			buckets[index].HeightPercent = buckets[index].VolumeKG / peak * 100
		}
	}
	return buckets
}

func weekStart(value time.Time) time.Time {
	day := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AverageWorkoutVolume is the profile's total volume spread across its workouts.
func AverageWorkoutVolume(profile models.UserProfile) float64 {
	if profile.TotalWorkouts <= 0 {
		return 0
	}
	return profile.TotalVolumeKG / float64(profile.TotalWorkouts)
}

// WeightChange is the difference between the newest and oldest entries.
func WeightChange(history []models.WeightEntry) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}
	return history[len(history)-1].WeightKG - history[0].WeightKG, true
}
