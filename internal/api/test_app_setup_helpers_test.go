package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/titanlift/internal/db"
	"github.com/terraincognita07/titanlift/internal/i18n"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/querycache"
	"github.com/terraincognita07/titanlift/internal/services"
)

const testDefaultUserID = "763b9c95-4bae-4044-9d30-7ae513286b37"

var errBackendDown = errors.New("backend unavailable")

// stubBackend serves canned responses and counts calls per endpoint.
type stubBackend struct {
	leaderboard []models.LeaderboardEntry
	profile     models.UserProfile
	history     []models.WorkoutHistoryEntry
	stats       models.PhysicalStats
	nutrition   models.NutritionLog
	weight      []models.WeightEntry
	templates   []models.WorkoutTemplate

	leaderboardErr error
	profileErr     error
	updateErr      error
	nutritionErr   error

	// leaderboardGate, when set, holds Leaderboard until it is closed.
	leaderboardGate chan struct{}

	leaderboardCalls atomic.Int64
	profileCalls     atomic.Int64
	statsCalls       atomic.Int64
	nutritionCalls   atomic.Int64

	mu          sync.Mutex
	userIDs     []string
	statUpdates []models.PhysicalStatsUpdate
	mealsLogged []models.NutritionLog
}

func (backend *stubBackend) recordUser(userID string) {
	backend.mu.Lock()
	backend.userIDs = append(backend.userIDs, userID)
	backend.mu.Unlock()
}

func (backend *stubBackend) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	backend.leaderboardCalls.Add(1)
	if backend.leaderboardGate != nil {
		select {
		case <-backend.leaderboardGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return backend.leaderboard, backend.leaderboardErr
}

func (backend *stubBackend) Profile(_ context.Context, userID string) (models.UserProfile, error) {
	backend.profileCalls.Add(1)
	backend.recordUser(userID)
	return backend.profile, backend.profileErr
}

func (backend *stubBackend) WorkoutHistory(_ context.Context, userID string) ([]models.WorkoutHistoryEntry, error) {
	backend.recordUser(userID)
	return backend.history, nil
}

func (backend *stubBackend) PhysicalStats(_ context.Context, userID string) (models.PhysicalStats, error) {
	backend.statsCalls.Add(1)
	backend.recordUser(userID)
	return backend.stats, nil
}

func (backend *stubBackend) UpdatePhysicalStats(_ context.Context, userID string, update models.PhysicalStatsUpdate) error {
	if backend.updateErr != nil {
		return backend.updateErr
	}
	backend.mu.Lock()
	backend.statUpdates = append(backend.statUpdates, update)
	backend.mu.Unlock()
	return nil
}

func (backend *stubBackend) NutritionLog(_ context.Context, userID string) (models.NutritionLog, error) {
	backend.nutritionCalls.Add(1)
	return backend.nutrition, nil
}

func (backend *stubBackend) LogNutrition(_ context.Context, userID string, entry models.NutritionLog) error {
	if backend.nutritionErr != nil {
		return backend.nutritionErr
	}
	backend.mu.Lock()
	backend.mealsLogged = append(backend.mealsLogged, entry)
	backend.mu.Unlock()
	return nil
}

func (backend *stubBackend) WeightHistory(_ context.Context, userID string) ([]models.WeightEntry, error) {
	return backend.weight, nil
}

func (backend *stubBackend) Templates(context.Context) ([]models.WorkoutTemplate, error) {
	return backend.templates, nil
}

type testEnv struct {
	app     *fiber.App
	backend *stubBackend
	users   *db.LocalUserRepository
	cache   *querycache.Cache
}

type testAppOptions struct {
	renderBudget time.Duration
	preferLocal  bool
}

func newTestApp(t *testing.T, backend *stubBackend) testEnv {
	t.Helper()
	return newTestAppWithOptions(t, backend, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, backend *stubBackend, options testAppOptions) testEnv {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}

	apiDir := filepath.Dir(testFile)
	internalDir := filepath.Dir(apiDir)
	templatesDir := filepath.Join(internalDir, "templates")
	localesDir := filepath.Join(internalDir, "i18n", "locales")
	databasePath := filepath.Join(t.TempDir(), "titanlift-api-test.db")

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	metricsManager := metrics.NewTestManager()
	cache := querycache.New(querycache.NewMemoryStore(1), querycache.Options{
		StaleAfter: time.Minute,
		Retention:  time.Hour,
		Metrics:    metricsManager,
	})
	t.Cleanup(cache.Close)

	users := db.NewLocalUserRepository(database)
	renderBudget := options.renderBudget
	if renderBudget <= 0 {
		renderBudget = 2 * time.Second
	}

	handler, err := NewHandler(Dependencies{
		SecretKey:    "test-secret-key",
		TemplateDir:  templatesDir,
		Location:     time.UTC,
		RenderBudget: renderBudget,
		I18n:         i18nManager,
		Backend:      backend,
		Cache:        cache,
		Identity:     services.NewUserIdentityService(users, testDefaultUserID, options.preferLocal),
		Onboarding:   services.NewOnboardingService(users),
		Metrics:      metricsManager,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return testEnv{app: app, backend: backend, users: users, cache: cache}
}

func newFormRequest(method string, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func mustDo(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, string) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response, string(body)
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
