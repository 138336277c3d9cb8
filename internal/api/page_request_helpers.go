package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/titanlift/internal/services"
)

type pageRequest struct {
	ctx      context.Context
	identity services.Identity
	lang     string
	messages map[string]string
	csrf     string
	query    string
	editing  string
	now      time.Time
}

// newPageRequest bounds the page's queries by the render budget. Queries
// still running when it expires render as loading sections.
func (handler *Handler) newPageRequest(c *fiber.Ctx) (pageRequest, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.UserContext(), handler.renderBudget)
	request := pageRequest{
		ctx:      ctx,
		identity: handler.identity.Current(),
		lang:     handler.languageOrDefault(c),
		messages: currentMessages(c),
		csrf:     csrfToken(c),
		query:    string(c.Request().URI().QueryString()),
		editing:  c.Query("edit"),
		now:      handler.now().In(handler.location),
	}
	return request, cancel
}

func (request pageRequest) section(page string, name string, loading bool, data any) SectionView {
	pollURL := "/sections/" + page + "/" + name
	if request.query != "" {
		pollURL += "?" + request.query
	}
	return SectionView{
		Page:      page,
		Name:      name,
		Loading:   loading,
		PollURL:   pollURL,
		Lang:      request.lang,
		Messages:  request.messages,
		CSRFToken: request.csrf,
		Data:      data,
	}
}
