package api

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/querycache"
)

func leaderboardKey() querycache.Key {
	return querycache.NewKey("leaderboard")
}

func profileKey(userID string) querycache.Key {
	return querycache.NewKey("profile", userID)
}

func historyKey(userID string) querycache.Key {
	return querycache.NewKey("history", userID)
}

func statsKey(userID string) querycache.Key {
	return querycache.NewKey("stats", userID)
}

func nutritionKey(userID string) querycache.Key {
	return querycache.NewKey("nutrition", userID)
}

func weightKey(userID string) querycache.Key {
	return querycache.NewKey("weight", userID)
}

func templatesKey() querycache.Key {
	return querycache.NewKey("templates")
}

func (handler *Handler) queryLeaderboard(ctx context.Context) querycache.TypedResult[[]models.LeaderboardEntry] {
	return querycache.Query(ctx, handler.cache, leaderboardKey(), handler.backend.Leaderboard)
}

func (handler *Handler) queryProfile(ctx context.Context, userID string) querycache.TypedResult[models.UserProfile] {
	return querycache.Query(ctx, handler.cache, profileKey(userID), func(fetchCtx context.Context) (models.UserProfile, error) {
		return handler.backend.Profile(fetchCtx, userID)
	})
}

func (handler *Handler) queryHistory(ctx context.Context, userID string) querycache.TypedResult[[]models.WorkoutHistoryEntry] {
	return querycache.Query(ctx, handler.cache, historyKey(userID), func(fetchCtx context.Context) ([]models.WorkoutHistoryEntry, error) {
		return handler.backend.WorkoutHistory(fetchCtx, userID)
	})
}

func (handler *Handler) queryStats(ctx context.Context, userID string) querycache.TypedResult[models.PhysicalStats] {
	return querycache.Query(ctx, handler.cache, statsKey(userID), func(fetchCtx context.Context) (models.PhysicalStats, error) {
		return handler.backend.PhysicalStats(fetchCtx, userID)
	})
}

func (handler *Handler) queryNutrition(ctx context.Context, userID string) querycache.TypedResult[models.NutritionLog] {
	return querycache.Query(ctx, handler.cache, nutritionKey(userID), func(fetchCtx context.Context) (models.NutritionLog, error) {
		return handler.backend.NutritionLog(fetchCtx, userID)
	})
}

func (handler *Handler) queryWeight(ctx context.Context, userID string) querycache.TypedResult[[]models.WeightEntry] {
	return querycache.Query(ctx, handler.cache, weightKey(userID), func(fetchCtx context.Context) ([]models.WeightEntry, error) {
		return handler.backend.WeightHistory(fetchCtx, userID)
	})
}

func (handler *Handler) queryTemplates(ctx context.Context) querycache.TypedResult[[]models.WorkoutTemplate] {
	return querycache.Query(ctx, handler.cache, templatesKey(), handler.backend.Templates)
}

// settle turns a query result into the value a section renders. Failed
// queries render like empty ones; the failure is only logged.
func settle[T any](query string, result querycache.TypedResult[T]) (T, bool) {
	if result.Status == querycache.StatusError {
		log.WithError(result.Err).WithField("query", query).Warn("query failed, rendering empty state")
	}
	return result.Data, result.Loading()
}
