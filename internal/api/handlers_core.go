package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		log.WithError(err).WithField("template", name).Error("render page")
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

// renderPartial executes a named htmx partial without the page layout.
func (handler *Handler) renderPartial(c *fiber.Ctx, name string, data fiber.Map) error {
	return handler.renderFragment(c, name, handler.withTemplateDefaults(c, data))
}

// renderSection executes one section template on its own, for polling requests.
func (handler *Handler) renderSection(c *fiber.Ctx, section SectionView) error {
	return handler.renderFragment(c, sectionTemplateName(section.Page, section.Name), section)
}

func (handler *Handler) renderFragment(c *fiber.Ctx, name string, data any) error {
	if handler.fragments.Lookup(name) == nil {
		return handler.NotFound(c)
	}
	var output bytes.Buffer
	if err := handler.fragments.ExecuteTemplate(&output, name, data); err != nil {
		log.WithError(err).WithField("fragment", name).Error("render fragment")
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render fragment")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func sectionTemplateName(page string, section string) string {
	return "section_" + page + "_" + section
}
