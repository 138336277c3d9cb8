package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
)

const (
	DefaultTDEE          = 2000.0
	maxWeightTrendPoints = 12
	recentWorkoutsLimit  = 5
	defaultEditHeightCM  = 175.0
	defaultEditWeightKG  = 75.0
)

// FormatVolumeTonnes renders kilograms as tonnes with one decimal, e.g. 12345 -> "12.3t".
func FormatVolumeTonnes(kg float64) string {
	return fmt.Sprintf("%.1ft", kg/1000)
}

func FormatStreakDays(days int64) string {
	return fmt.Sprintf("%dd", days)
}

func EffectiveTDEE(stats models.PhysicalStats) float64 {
	if stats.TDEE > 0 {
		return stats.TDEE
	}
	return DefaultTDEE
}

// CalorieProgress is the consumed share of tdee as a percentage clamped to [0, 100].
func CalorieProgress(consumed float64, tdee float64) float64 {
	if tdee <= 0 {
		return 0
	}
	return math.Max(0, math.Min(consumed/tdee*100, 100))
}

type WeightBar struct {
	WeightKG      float64
	Date          string
	HeightPercent float64
}

// BuildWeightTrend scales the last twelve entries against the padded range of
// the whole series. Fewer than two points means there is no trend.
func BuildWeightTrend(history []models.WeightEntry) []WeightBar {
	if len(history) < 2 {
		return nil
	}

	low, high := history[0].WeightKG, history[0].WeightKG
	for _, entry := range history[1:] {
		low = math.Min(low, entry.WeightKG)
		high = math.Max(high, entry.WeightKG)
	}
	low *= 0.95
	high *= 1.05
	span := high - low

	visible := history[max(0, len(history)-maxWeightTrendPoints):]
	bars := make([]WeightBar, 0, len(visible))
	for _, entry := range visible {
		percent := 0.0
		if span > 0 {
			percent = (entry.WeightKG - low) / span * 100
		}
		bars = append(bars, WeightBar{WeightKG: entry.WeightKG, Date: entry.Date, HeightPercent: percent})
	}
	return bars
}

type WorkoutSummary struct {
	ID            string
	Name          string
	StartTime     time.Time
	Date          string
	Volume        string
	ExerciseCount int64
	Duration      time.Duration
}

func RecentWorkouts(history []models.WorkoutHistoryEntry, location *time.Location) []WorkoutSummary {
	return SummarizeWorkouts(history[:min(recentWorkoutsLimit, len(history))], location)
}

func SummarizeWorkouts(history []models.WorkoutHistoryEntry, location *time.Location) []WorkoutSummary {
	if location == nil {
		location = time.UTC
	}
	summaries := make([]WorkoutSummary, 0, len(history))
	for _, workout := range history {
		name := "Workout"
		if workout.Name != nil && strings.TrimSpace(*workout.Name) != "" {
			name = *workout.Name
		}
		summary := WorkoutSummary{
			ID:            workout.ID,
			Name:          name,
			StartTime:     workout.StartTime,
			Date:          workout.StartTime.In(location).Format("Mon, Jan 2"),
			Volume:        FormatKilograms(workout.TotalVolumeKG),
			ExerciseCount: workout.ExerciseCount,
		}
		if workout.EndTime != nil {
			summary.Duration = workout.EndTime.Sub(workout.StartTime)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// FormatKilograms renders a whole number of kilograms with thousands separators.
func FormatKilograms(kg float64) string {
	rounded := int64(math.Round(kg))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	digits := fmt.Sprintf("%d", rounded)
	var grouped strings.Builder
	for index, digit := range digits {
		if index > 0 && (len(digits)-index)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + grouped.String() + "kg"
}

// MemberSince formats the join date as "Jan 2006", or "" when unknown.
func MemberSince(joined time.Time) string {
	if joined.IsZero() {
		return ""
	}
	return joined.UTC().Format("Jan 2006")
}

type PhysicalStatsForm struct {
	HeightCM      float64
	WeightKG      float64
	Gender        string
	ActivityLevel string
}

func EditFormDefaults(stats models.PhysicalStats) PhysicalStatsForm {
	form := PhysicalStatsForm{
		HeightCM:      defaultEditHeightCM,
		WeightKG:      defaultEditWeightKG,
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivityModerate,
	}
	if stats.HeightCM > 0 {
		form.HeightCM = stats.HeightCM
	}
	if stats.CurrentWeightKG > 0 {
		form.WeightKG = stats.CurrentWeightKG
	}
	if stats.Gender != "" {
		form.Gender = stats.Gender
	}
	if stats.ActivityLevel != "" {
		form.ActivityLevel = stats.ActivityLevel
	}
	return form
}

type HeatmapCell struct {
	Date      string
	VolumeKG  float64
	Intensity int
}

// BuildActivityHeatmap buckets each day's volume into intensity levels 1..4
// relative to the busiest day.
func BuildActivityHeatmap(log []models.DailyActivity) []HeatmapCell {
	if len(log) == 0 {
		return nil
	}
	peak := 0.0
	for _, day := range log {
		peak = math.Max(peak, day.VolumeKG)
	}

	cells := make([]HeatmapCell, 0, len(log))
	for _, day := range log {
		intensity := 0
		if peak > 0 && day.VolumeKG > 0 {
			intensity = int(math.Ceil(day.VolumeKG / peak * 4))
		}
		cells = append(cells, HeatmapCell{Date: day.Date, VolumeKG: day.VolumeKG, Intensity: intensity})
	}
	return cells
}
