package api

import (
	"fmt"
	"time"

	"github.com/terraincognita07/titanlift/internal/metrics"
)

func NewHandler(deps Dependencies) (*Handler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.RenderBudget <= 0 {
		deps.RenderBudget = defaultRenderBudget
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewTestManager()
	}

	draftKey, err := deriveDraftKey(deps.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("derive onboarding draft key: %w", err)
	}

	layout, err := parseLayout(deps.TemplateDir, newTemplateFuncMap())
	if err != nil {
		return nil, err
	}
	templates, err := parsePageTemplates(layout, deps.TemplateDir, pageTemplates)
	if err != nil {
		return nil, err
	}

	return &Handler{
		draftKey:     draftKey,
		location:     deps.Location,
		cookieSecure: deps.CookieSecure,
		renderBudget: deps.RenderBudget,
		i18n:         deps.I18n,
		templates:    templates,
		fragments:    layout,
		backend:      deps.Backend,
		cache:        deps.Cache,
		identity:     deps.Identity,
		onboarding:   deps.Onboarding,
		metrics:      deps.Metrics,
		now:          time.Now,
	}, nil
}
