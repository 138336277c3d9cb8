package api

var pageTemplates = []string{
	"onboarding",
	"dashboard",
	"train",
	"analytics",
	"awards",
	"splits",
	"profile",
	"leaderboard",
	"not_found",
}

var partialTemplateFiles = []string{"onboarding_continue_partial.html"}

const sectionTemplateFile = "sections.html"
