package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerActionRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/onboarding", handler.ShowOnboarding)
	app.Get("/", handler.ShowDashboard)
	app.Get("/train", handler.ShowTrain)
	app.Get("/analytics", handler.ShowAnalytics)
	app.Get("/awards", handler.ShowAwards)
	app.Get("/splits", handler.ShowSplits)
	app.Get("/profile", handler.ShowProfile)
	app.Get("/leaderboard", handler.ShowLeaderboard)
	app.Get("/sections/:page/:section", handler.ShowSection)
}

func registerActionRoutes(app *fiber.App, handler *Handler) {
	onboarding := app.Group("/onboarding")
	onboarding.Post("/draft", handler.OnboardingDraft)
	onboarding.Post("/next", handler.OnboardingNext)

	profile := app.Group("/profile")
	profile.Post("/stats", handler.UpdatePhysicalStats)
	profile.Post("/nutrition", handler.LogNutrition)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
