package api

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/querycache"
	"github.com/terraincognita07/titanlift/internal/services"
)

type pageView struct {
	Template      string
	TitleKey      string
	TitleFallback string
	Sections      map[string]SectionView
}

type pageBuilder func(handler *Handler, request pageRequest) pageView

var pageBuilders = map[string]pageBuilder{
	"dashboard":   (*Handler).buildDashboardPage,
	"train":       (*Handler).buildTrainPage,
	"analytics":   (*Handler).buildAnalyticsPage,
	"awards":      (*Handler).buildAwardsPage,
	"splits":      (*Handler).buildSplitsPage,
	"profile":     (*Handler).buildProfilePage,
	"leaderboard": (*Handler).buildLeaderboardPage,
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	return handler.showPage(c, "dashboard")
}

func (handler *Handler) ShowTrain(c *fiber.Ctx) error {
	return handler.showPage(c, "train")
}

func (handler *Handler) ShowAnalytics(c *fiber.Ctx) error {
	return handler.showPage(c, "analytics")
}

func (handler *Handler) ShowAwards(c *fiber.Ctx) error {
	return handler.showPage(c, "awards")
}

func (handler *Handler) ShowSplits(c *fiber.Ctx) error {
	return handler.showPage(c, "splits")
}

func (handler *Handler) ShowProfile(c *fiber.Ctx) error {
	return handler.showPage(c, "profile")
}

func (handler *Handler) ShowLeaderboard(c *fiber.Ctx) error {
	return handler.showPage(c, "leaderboard")
}

func (handler *Handler) showPage(c *fiber.Ctx, page string) error {
	request, cancel := handler.newPageRequest(c)
	defer cancel()

	view := pageBuilders[page](handler, request)
	return handler.render(c, view.Template, fiber.Map{
		"Title":     pageTitle(request.messages, view.TitleKey, view.TitleFallback),
		"Sections":  view.Sections,
		"Onboarded": request.identity.Onboarded,
	})
}

// ShowSection renders a single section for the loading placeholders' polls.
func (handler *Handler) ShowSection(c *fiber.Ctx) error {
	builder, ok := pageBuilders[c.Params("page")]
	if !ok {
		return handler.NotFound(c)
	}
	request, cancel := handler.newPageRequest(c)
	defer cancel()

	section, ok := builder(handler, request).Sections[c.Params("section")]
	if !ok {
		return handler.NotFound(c)
	}
	return handler.renderSection(c, section)
}

func (handler *Handler) buildDashboardPage(request pageRequest) pageView {
	userID := request.identity.UserID
	var profile querycache.TypedResult[models.UserProfile]
	var history querycache.TypedResult[[]models.WorkoutHistoryEntry]

	var wg sync.WaitGroup
	wg.Go(func() { profile = handler.queryProfile(request.ctx, userID) })
	wg.Go(func() { history = handler.queryHistory(request.ctx, userID) })
	wg.Wait()

	profileData, profileLoading := settle("profile", profile)
	historyData, historyLoading := settle("history", history)

	var lastWorkout workoutList
	if len(historyData) > 0 {
		lastWorkout = handler.buildRecentWorkouts(request.lang, historyData[:1])
	} else {
		lastWorkout = workoutList{Empty: true}
	}

	return pageView{
		Template:      "dashboard",
		TitleKey:      "meta.title.dashboard",
		TitleFallback: "TitanLift | Dashboard",
		Sections: map[string]SectionView{
			"summary":      request.section("dashboard", "summary", profileLoading, buildDashboardSummary(request.identity, profileData)),
			"last_workout": request.section("dashboard", "last_workout", historyLoading, lastWorkout),
		},
	}
}

func (handler *Handler) buildTrainPage(request pageRequest) pageView {
	userID := request.identity.UserID
	var templates querycache.TypedResult[[]models.WorkoutTemplate]
	var history querycache.TypedResult[[]models.WorkoutHistoryEntry]

	var wg sync.WaitGroup
	wg.Go(func() { templates = handler.queryTemplates(request.ctx) })
	wg.Go(func() { history = handler.queryHistory(request.ctx, userID) })
	wg.Wait()

	templateData, templatesLoading := settle("templates", templates)
	historyData, historyLoading := settle("history", history)

	return pageView{
		Template:      "train",
		TitleKey:      "meta.title.train",
		TitleFallback: "TitanLift | Train",
		Sections: map[string]SectionView{
			"templates": request.section("train", "templates", templatesLoading, buildTemplateCards(request.lang, templateData, handler.location)),
			"recent":    request.section("train", "recent", historyLoading, handler.buildRecentWorkouts(request.lang, historyData)),
		},
	}
}

func (handler *Handler) buildAnalyticsPage(request pageRequest) pageView {
	userID := request.identity.UserID
	var profile querycache.TypedResult[models.UserProfile]
	var weight querycache.TypedResult[[]models.WeightEntry]

	var wg sync.WaitGroup
	wg.Go(func() { profile = handler.queryProfile(request.ctx, userID) })
	wg.Go(func() { weight = handler.queryWeight(request.ctx, userID) })
	wg.Wait()

	profileData, profileLoading := settle("profile", profile)
	weightData, weightLoading := settle("weight", weight)

	return pageView{
		Template:      "analytics",
		TitleKey:      "meta.title.analytics",
		TitleFallback: "TitanLift | Analytics",
		Sections: map[string]SectionView{
			"volume": request.section("analytics", "volume", profileLoading, buildAnalyticsVolume(request.lang, profileData, request.now)),
			"weight": request.section("analytics", "weight", weightLoading, buildWeightTrend(weightData)),
		},
	}
}

func (handler *Handler) buildAwardsPage(request pageRequest) pageView {
	userID := request.identity.UserID
	var profile querycache.TypedResult[models.UserProfile]
	var history querycache.TypedResult[[]models.WorkoutHistoryEntry]

	var wg sync.WaitGroup
	wg.Go(func() { profile = handler.queryProfile(request.ctx, userID) })
	wg.Go(func() { history = handler.queryHistory(request.ctx, userID) })
	wg.Wait()

	profileData, profileLoading := settle("profile", profile)
	historyData, historyLoading := settle("history", history)

	return pageView{
		Template:      "awards",
		TitleKey:      "meta.title.awards",
		TitleFallback: "TitanLift | Awards",
		Sections: map[string]SectionView{
			"awards": request.section("awards", "awards", profileLoading || historyLoading, buildAwardsView(profileData, historyData)),
		},
	}
}

func (handler *Handler) buildSplitsPage(request pageRequest) pageView {
	templateData, loading := settle("templates", handler.queryTemplates(request.ctx))
	return pageView{
		Template:      "splits",
		TitleKey:      "meta.title.splits",
		TitleFallback: "TitanLift | Splits",
		Sections: map[string]SectionView{
			"splits": request.section("splits", "splits", loading, buildTemplateCards(request.lang, templateData, handler.location)),
		},
	}
}

// buildProfilePage blocks the whole body on the profile query; the other
// sections load independently inside it.
func (handler *Handler) buildProfilePage(request pageRequest) pageView {
	userID := request.identity.UserID
	var profile querycache.TypedResult[models.UserProfile]
	var history querycache.TypedResult[[]models.WorkoutHistoryEntry]
	var stats querycache.TypedResult[models.PhysicalStats]
	var nutrition querycache.TypedResult[models.NutritionLog]
	var weight querycache.TypedResult[[]models.WeightEntry]

	var wg sync.WaitGroup
	wg.Go(func() { profile = handler.queryProfile(request.ctx, userID) })
	wg.Go(func() { history = handler.queryHistory(request.ctx, userID) })
	wg.Go(func() { stats = handler.queryStats(request.ctx, userID) })
	wg.Go(func() { nutrition = handler.queryNutrition(request.ctx, userID) })
	wg.Go(func() { weight = handler.queryWeight(request.ctx, userID) })
	wg.Wait()

	profileData, profileLoading := settle("profile", profile)
	historyData, historyLoading := settle("history", history)
	statsData, statsLoading := settle("stats", stats)
	nutritionData, nutritionLoading := settle("nutrition", nutrition)
	weightData, weightLoading := settle("weight", weight)

	sections := map[string]SectionView{
		"physical":  request.section("profile", "physical", statsLoading, buildPhysicalStatsView(statsData, request.editing == "stats")),
		"nutrition": request.section("profile", "nutrition", nutritionLoading || statsLoading, buildNutritionView(nutritionData, statsData)),
		"weight":    request.section("profile", "weight", weightLoading, buildWeightTrend(weightData)),
		"recent":    request.section("profile", "recent", historyLoading, handler.buildRecentWorkouts(request.lang, historyData)),
	}
	sections["body"] = request.section("profile", "body", profileLoading, profileBody{
		Header:    buildProfileHeader(request.lang, profileData),
		Cards:     buildStatCards(profileData),
		Heatmap:   services.BuildActivityHeatmap(profileData.ActivityLog),
		Physical:  sections["physical"],
		Nutrition: sections["nutrition"],
		Weight:    sections["weight"],
		Recent:    sections["recent"],
	})

	return pageView{
		Template:      "profile",
		TitleKey:      "meta.title.profile",
		TitleFallback: "TitanLift | Profile",
		Sections:      sections,
	}
}

func (handler *Handler) buildLeaderboardPage(request pageRequest) pageView {
	entries, loading := settle("leaderboard", handler.queryLeaderboard(request.ctx))
	return pageView{
		Template:      "leaderboard",
		TitleKey:      "meta.title.leaderboard",
		TitleFallback: "TitanLift | Leaderboard",
		Sections: map[string]SectionView{
			"rankings": request.section("leaderboard", "rankings", loading, services.BuildLeaderboardView(entries)),
		},
	}
}
