package api

import "github.com/gofiber/fiber/v2"

// NotFound is the catch-all route. Section polls and htmx swaps get a small
// fragment instead of a full page.
func (handler *Handler) NotFound(c *fiber.Ctx) error {
	messages := currentMessages(c)
	switch {
	case acceptsJSON(c):
		return respondError(c, fiber.StatusNotFound, "not found")
	case isHTMX(c):
		return sendErrorFragment(c, fiber.StatusNotFound, pageTitle(messages, "not_found.title", "Page not found"))
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":           pageTitle(messages, "meta.title.not_found", "TitanLift | Page Not Found"),
		"PrimaryPath":     "/",
		"PrimaryLabelKey": "not_found.action_dashboard",
		"Onboarded":       handler.identity.Current().Onboarded,
	})
}
