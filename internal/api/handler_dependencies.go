package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/titanlift/internal/i18n"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"github.com/terraincognita07/titanlift/internal/querycache"
	"github.com/terraincognita07/titanlift/internal/services"
)

type Dependencies struct {
	SecretKey    string
	TemplateDir  string
	Location     *time.Location
	CookieSecure bool
	RenderBudget time.Duration

	I18n       *i18n.Manager
	Backend    BackendAPI
	Cache      *querycache.Cache
	Identity   *services.UserIdentityService
	Onboarding *services.OnboardingService
	Metrics    *metrics.Manager
}

func (deps Dependencies) validate() error {
	switch {
	case deps.I18n == nil:
		return errors.New("i18n manager is required")
	case deps.Backend == nil:
		return errors.New("backend client is required")
	case deps.Cache == nil:
		return errors.New("query cache is required")
	case deps.Identity == nil:
		return errors.New("identity service is required")
	case deps.Onboarding == nil:
		return errors.New("onboarding service is required")
	case deps.SecretKey == "":
		return errors.New("secret key is required")
	}
	return nil
}
