package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	languageCookieName   = "titanlift_lang"
	languageCookieMaxAge = 365 * 24 * time.Hour
	draftCookieName      = "titanlift_onboarding"
	contextLanguageKey   = "current_language"
	contextMessagesKey   = "current_messages"
)

// LanguageMiddleware picks the UI language from the cookie, falling back to
// Accept-Language, and exposes it with its catalog to handlers and templates.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language, remembered := handler.requestLanguage(c)
	if !remembered {
		handler.rememberLanguage(c, language)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

// requestLanguage reports whether the cookie already holds the resolved language.
func (handler *Handler) requestLanguage(c *fiber.Ctx) (string, bool) {
	if stored := strings.TrimSpace(c.Cookies(languageCookieName)); stored != "" {
		language := handler.i18n.NormalizeLanguage(stored)
		return language, language == stored
	}
	return handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)), false
}

func (handler *Handler) rememberLanguage(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(languageCookieMaxAge / time.Second),
	})
}

// SetLanguage switches the UI language and returns to ?next when it is a local path.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	handler.rememberLanguage(c, handler.i18n.NormalizeLanguage(c.Params("lang")))
	return respondRedirect(c, localRedirectTarget(c.Query("next"), "/"))
}
