package api

import (
	"context"
	"html/template"
	"time"

	"github.com/terraincognita07/titanlift/internal/i18n"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/querycache"
	"github.com/terraincognita07/titanlift/internal/services"
)

// BackendAPI is the part of the TitanLift API the pages read and write.
type BackendAPI interface {
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	Profile(ctx context.Context, userID string) (models.UserProfile, error)
	WorkoutHistory(ctx context.Context, userID string) ([]models.WorkoutHistoryEntry, error)
	PhysicalStats(ctx context.Context, userID string) (models.PhysicalStats, error)
	UpdatePhysicalStats(ctx context.Context, userID string, update models.PhysicalStatsUpdate) error
	NutritionLog(ctx context.Context, userID string) (models.NutritionLog, error)
	LogNutrition(ctx context.Context, userID string, entry models.NutritionLog) error
	WeightHistory(ctx context.Context, userID string) ([]models.WeightEntry, error)
	Templates(ctx context.Context) ([]models.WorkoutTemplate, error)
}

type Handler struct {
	draftKey     []byte
	location     *time.Location
	cookieSecure bool
	renderBudget time.Duration
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	fragments    *template.Template

	backend    BackendAPI
	cache      *querycache.Cache
	identity   *services.UserIdentityService
	onboarding *services.OnboardingService
	metrics    *metrics.Manager
	now        func() time.Time
}

// SectionView is what every section template receives. A loading section
// renders a placeholder that polls PollURL until the data arrives.
type SectionView struct {
	Page      string
	Name      string
	Loading   bool
	PollURL   string
	Lang      string
	Messages  map[string]string
	CSRFToken string
	Data      any
}

const defaultRenderBudget = 750 * time.Millisecond
