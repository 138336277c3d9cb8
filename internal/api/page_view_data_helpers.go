package api

import (
	"strings"
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/services"
)

const defaultDisplayName = "Titan"

type statCards struct {
	TotalVolume   string
	Workouts      int64
	CurrentStreak string
	StreakActive  bool
	BestStreak    string
}

func buildStatCards(profile models.UserProfile) statCards {
	return statCards{
		TotalVolume:   services.FormatVolumeTonnes(profile.TotalVolumeKG),
		Workouts:      profile.TotalWorkouts,
		CurrentStreak: services.FormatStreakDays(profile.CurrentStreak),
		StreakActive:  profile.CurrentStreak > 0,
		BestStreak:    services.FormatStreakDays(profile.MaxStreak),
	}
}

type dashboardSummary struct {
	Name      string
	Onboarded bool
	Cards     statCards
}

func buildDashboardSummary(identity services.Identity, profile models.UserProfile) dashboardSummary {
	name := strings.TrimSpace(identity.User.Username)
	if name == "" {
		name = strings.TrimSpace(profile.Username)
	}
	if name == "" {
		name = defaultDisplayName
	}
	return dashboardSummary{Name: name, Onboarded: identity.Onboarded, Cards: buildStatCards(profile)}
}

type workoutList struct {
	Workouts []services.WorkoutSummary
	Empty    bool
}

func (handler *Handler) localizeWorkouts(lang string, workouts []services.WorkoutSummary) []services.WorkoutSummary {
	for index := range workouts {
		workouts[index].Date = localizedDateLabel(lang, workouts[index].StartTime.In(handler.location))
	}
	return workouts
}

func (handler *Handler) buildRecentWorkouts(lang string, history []models.WorkoutHistoryEntry) workoutList {
	recent := services.RecentWorkouts(history, handler.location)
	return workoutList{Workouts: handler.localizeWorkouts(lang, recent), Empty: len(history) == 0}
}

type templateCard struct {
	ID          string
	Name        string
	Description string
	Created     string
}

func buildTemplateCards(lang string, templates []models.WorkoutTemplate, location *time.Location) []templateCard {
	cards := make([]templateCard, 0, len(templates))
	for _, item := range templates {
		card := templateCard{ID: item.ID, Name: strings.TrimSpace(item.Name)}
		if item.Description != nil {
			card.Description = strings.TrimSpace(*item.Description)
		}
		if !item.CreatedAt.IsZero() {
			card.Created = localizedMonthYear(lang, item.CreatedAt.In(location))
		}
		cards = append(cards, card)
	}
	return cards
}

type weekBar struct {
	Label         string
	Volume        string
	HeightPercent float64
}

type analyticsVolume struct {
	Weeks         []weekBar
	HasVolume     bool
	AverageVolume string
	TotalWorkouts int64
}

func buildAnalyticsVolume(lang string, profile models.UserProfile, now time.Time) analyticsVolume {
	weeks := services.BuildWeeklyVolume(profile.ActivityLog, now, 0)
	view := analyticsVolume{
		Weeks:         make([]weekBar, 0, len(weeks)),
		AverageVolume: services.FormatKilograms(services.AverageWorkoutVolume(profile)),
		TotalWorkouts: profile.TotalWorkouts,
	}
	for _, week := range weeks {
		if week.VolumeKG > 0 {
			view.HasVolume = true
		}
		view.Weeks = append(view.Weeks, weekBar{
			Label:         localizedShortDay(lang, week.WeekStart),
			Volume:        services.FormatVolumeTonnes(week.VolumeKG),
			HeightPercent: week.HeightPercent,
		})
	}
	return view
}

type weightTrend struct {
	Bars      []services.WeightBar
	HasTrend  bool
	Change    float64
	HasChange bool
	Latest    float64
}

func buildWeightTrend(history []models.WeightEntry) weightTrend {
	bars := services.BuildWeightTrend(history)
	change, hasChange := services.WeightChange(history)
	view := weightTrend{Bars: bars, HasTrend: len(bars) > 0, Change: change, HasChange: hasChange}
	if len(history) > 0 {
		view.Latest = history[len(history)-1].WeightKG
	}
	return view
}

type awardsView struct {
	Awards []services.Award
	Earned int
	Total  int
}

func buildAwardsView(profile models.UserProfile, history []models.WorkoutHistoryEntry) awardsView {
	awards := services.BuildAwards(profile, history)
	return awardsView{Awards: awards, Earned: services.CountEarnedAwards(awards), Total: len(awards)}
}

type profileHeader struct {
	Initial     string
	Name        string
	MemberSince string
}

func buildProfileHeader(lang string, profile models.UserProfile) profileHeader {
	header := profileHeader{Initial: "T", Name: defaultDisplayName}
	if username := strings.TrimSpace(profile.Username); username != "" {
		header.Name = username
		header.Initial = strings.ToUpper(string([]rune(username)[:1]))
	}
	if services.MemberSince(profile.JoinDate) != "" {
		header.MemberSince = localizedMonthYear(lang, profile.JoinDate.UTC())
	}
	return header
}

type physicalStatsView struct {
	Stats      models.PhysicalStats
	HasStats   bool
	Editing    bool
	Form       services.PhysicalStatsForm
	Genders    []onboardingOption
	Activities []onboardingOption
}

func buildPhysicalStatsView(stats models.PhysicalStats, editing bool) physicalStatsView {
	form := services.EditFormDefaults(stats)
	return physicalStatsView{
		Stats:      stats,
		HasStats:   stats.HeightCM > 0 || stats.CurrentWeightKG > 0,
		Editing:    editing,
		Form:       form,
		Genders:    onboardingOptions([]string{models.GenderMale, models.GenderFemale}, form.Gender),
		Activities: onboardingOptions(models.ActivityLevels, form.ActivityLevel),
	}
}

type nutritionView struct {
	Consumed float64
	TDEE     float64
	Progress float64
}

func buildNutritionView(nutrition models.NutritionLog, stats models.PhysicalStats) nutritionView {
	tdee := services.EffectiveTDEE(stats)
	return nutritionView{
		Consumed: nutrition.CaloriesIn,
		TDEE:     tdee,
		Progress: services.CalorieProgress(nutrition.CaloriesIn, tdee),
	}
}

type profileBody struct {
	Header    profileHeader
	Cards     statCards
	Heatmap   []services.HeatmapCell
	Physical  SectionView
	Nutrition SectionView
	Weight    SectionView
	Recent    SectionView
}
