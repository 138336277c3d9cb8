package services

import (
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
)

const (
	AwardTitanVolume = "titan_volume"
	AwardHeavyLifter = "heavy_lifter"
	AwardMarathoner  = "marathoner"
	AwardSpeedDemon  = "speed_demon"

	AwardFirstWorkout  = "first_workout"
	AwardTenWorkouts   = "ten_workouts"
	AwardFiftyWorkouts = "fifty_workouts"
	AwardHundredTonnes = "hundred_tonnes"
	AwardWeekStreak    = "week_streak"
	AwardMonthStreak   = "month_streak"
)

type Award struct {
	Key    string
	Icon   string
	Earned bool
	// Count is how many sessions earned a per-session award.
	Count int
}

type awardRule struct {
	key  string
	icon string
}

var sessionAwardRules = []awardRule{
	{key: AwardTitanVolume, icon: "🏆"},
	{key: AwardHeavyLifter, icon: "🏋️"},
	{key: AwardMarathoner, icon: "⏱️"},
	{key: AwardSpeedDemon, icon: "⚡"},
}

// SessionAwards applies the finish-workout badge rules to one session. The
// volume badges are exclusive: a session at 10t earns Titan Volume only.
func SessionAwards(workout models.WorkoutHistoryEntry) []string {
	earned := make([]string, 0, 2)
	switch {
	case workout.TotalVolumeKG >= 10000:
		earned = append(earned, AwardTitanVolume)
	case workout.TotalVolumeKG >= 5000:
		earned = append(earned, AwardHeavyLifter)
	}

	if workout.EndTime == nil {
		return earned
	}
	duration := workout.EndTime.Sub(workout.StartTime)
	switch {
	case duration >= 90*time.Minute:
		earned = append(earned, AwardMarathoner)
	case duration <= 30*time.Minute && workout.TotalVolumeKG > 2000:
		earned = append(earned, AwardSpeedDemon)
	}
	return earned
}

// BuildAwards lists every award in a fixed order with its earned state.
func BuildAwards(profile models.UserProfile, history []models.WorkoutHistoryEntry) []Award {
	counts := make(map[string]int, len(sessionAwardRules))
	for _, workout := range history {
		for _, key := range SessionAwards(workout) {
			counts[key]++
		}
	}

	awards := make([]Award, 0, len(sessionAwardRules)+6)
	for _, rule := range sessionAwardRules {
		awards = append(awards, Award{Key: rule.key, Icon: rule.icon, Earned: counts[rule.key] > 0, Count: counts[rule.key]})
	}

	bestStreak := max(profile.MaxStreak, profile.CurrentStreak)
	awards = append(awards,
		Award{Key: AwardFirstWorkout, Icon: "🎯", Earned: profile.TotalWorkouts >= 1},
		Award{Key: AwardTenWorkouts, Icon: "💪", Earned: profile.TotalWorkouts >= 10},
		Award{Key: AwardFiftyWorkouts, Icon: "🔥", Earned: profile.TotalWorkouts >= 50},
		Award{Key: AwardHundredTonnes, Icon: "🪨", Earned: profile.TotalVolumeKG >= 100000},
		Award{Key: AwardWeekStreak, Icon: "📅", Earned: bestStreak >= 7},
		Award{Key: AwardMonthStreak, Icon: "👑", Earned: bestStreak >= 30},
	)
	return awards
}

func CountEarnedAwards(awards []Award) int {
	total := 0
	for _, award := range awards {
		if award.Earned {
			total++
		}
	}
	return total
}
