package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/terraincognita07/titanlift/internal/models"
)

func userPath(prefix string, userID string) string {
	return prefix + url.PathEscape(userID)
}

func (client *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries := make([]models.LeaderboardEntry, 0)
	if err := client.getJSON(ctx, "/api/leaderboard", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (client *Client) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	profile := models.UserProfile{}
	err := client.getJSON(ctx, userPath("/api/profile/", userID), &profile)
	return profile, err
}

func (client *Client) WorkoutHistory(ctx context.Context, userID string) ([]models.WorkoutHistoryEntry, error) {
	history := make([]models.WorkoutHistoryEntry, 0)
	if err := client.getJSON(ctx, userPath("/api/history/", userID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (client *Client) PhysicalStats(ctx context.Context, userID string) (models.PhysicalStats, error) {
	stats := models.PhysicalStats{}
	err := client.getJSON(ctx, userPath("/api/stats/", userID), &stats)
	return stats, err
}

func (client *Client) UpdatePhysicalStats(ctx context.Context, userID string, update models.PhysicalStatsUpdate) error {
	return client.sendJSON(ctx, http.MethodPut, userPath("/api/stats/", userID), update)
}

func (client *Client) NutritionLog(ctx context.Context, userID string) (models.NutritionLog, error) {
	nutrition := models.NutritionLog{}
	err := client.getJSON(ctx, userPath("/api/nutrition/", userID), &nutrition)
	return nutrition, err
}

func (client *Client) LogNutrition(ctx context.Context, userID string, entry models.NutritionLog) error {
	return client.sendJSON(ctx, http.MethodPost, userPath("/api/nutrition/", userID), entry)
}

func (client *Client) WeightHistory(ctx context.Context, userID string) ([]models.WeightEntry, error) {
	points := make([]models.WeightEntry, 0)
	if err := client.getJSON(ctx, userPath("/api/weight/", userID), &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (client *Client) Templates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	templates := make([]models.WorkoutTemplate, 0)
	if err := client.getJSON(ctx, "/api/templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
