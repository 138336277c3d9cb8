package api

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const hxRedirectHeader = "HX-Redirect"

var errorFragment = template.Must(template.New("error").Parse(`<div class="status-error" role="alert">{{.}}</div>`))

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON)
}

// respondRedirect sends htmx clients an HX-Redirect with 200, JSON clients an
// ok payload and browsers a 303.
func respondRedirect(c *fiber.Ctx, target string) error {
	switch {
	case isHTMX(c):
		c.Set(hxRedirectHeader, target)
		return c.SendStatus(fiber.StatusOK)
	case acceptsJSON(c):
		return c.JSON(fiber.Map{"ok": true, "redirect": target})
	default:
		return c.Redirect(target, fiber.StatusSeeOther)
	}
}

// respondError answers htmx requests with a localized fragment and everyone
// else with {"error": message}.
func respondError(c *fiber.Ctx, status int, message string) error {
	if !isHTMX(c) {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	text := message
	if key := errorTranslationKey(message); key != "" {
		text = pageTitle(currentMessages(c), key, message)
	}
	return sendErrorFragment(c, status, text)
}

func sendErrorFragment(c *fiber.Ctx, status int, text string) error {
	var output bytes.Buffer
	if err := errorFragment.Execute(&output, text); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(output.Bytes())
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

// pageTitle returns the translation of key, or fallback when the catalog has none.
func pageTitle(messages map[string]string, key string, fallback string) string {
	if title := translateMessage(messages, key); title != key {
		return title
	}
	return fallback
}

// localRedirectTarget accepts only same-origin absolute paths.
func localRedirectTarget(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if !strings.HasPrefix(candidate, "/") || strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return parsed.RequestURI()
}
