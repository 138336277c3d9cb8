package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/titanlift/internal/security"
	"github.com/terraincognita07/titanlift/internal/services"
	"golang.org/x/crypto/hkdf"
)

const (
	draftCookieTTL   = 24 * time.Hour
	draftKeyInfo     = "titanlift onboarding draft v1"
	draftIDLength    = 16
	draftTokenIssuer = "titanlift"
)

var errDraftTokenInvalid = errors.New("invalid onboarding draft token")

type onboardingDraftClaims struct {
	Step  int                      `json:"step"`
	Draft services.OnboardingDraft `json:"draft"`
	jwt.RegisteredClaims
}

func deriveDraftKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(draftKeyInfo))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (handler *Handler) encodeDraftToken(state services.WizardState, now time.Time) (string, error) {
	draftID, err := security.RandomToken(draftIDLength)
	if err != nil {
		return "", fmt.Errorf("generate draft id: %w", err)
	}

	claims := onboardingDraftClaims{
		Step:  int(state.Step),
		Draft: state.Draft,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        draftID,
			Issuer:    draftTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(state.MountedAt),
			ExpiresAt: jwt.NewNumericDate(now.Add(draftCookieTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.draftKey)
}

func (handler *Handler) decodeDraftToken(raw string, now time.Time) (services.WizardState, error) {
	claims := &onboardingDraftClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return handler.draftKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(draftTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid || claims.IssuedAt == nil {
		return services.WizardState{}, errDraftTokenInvalid
	}

	return services.WizardState{
		Step:      services.ClampOnboardingStep(claims.Step),
		Draft:     claims.Draft,
		MountedAt: claims.IssuedAt.Time,
	}, nil
}

// loadWizardState restores the wizard from the draft cookie, starting a fresh
// wizard when the cookie is missing, tampered with or expired.
func (handler *Handler) loadWizardState(c *fiber.Ctx, now time.Time) services.WizardState {
	raw := strings.TrimSpace(c.Cookies(draftCookieName))
	if raw == "" {
		return services.NewWizard(now)
	}
	state, err := handler.decodeDraftToken(raw, now)
	if err != nil {
		return services.NewWizard(now)
	}
	return state
}

func (handler *Handler) saveWizardState(c *fiber.Ctx, state services.WizardState, now time.Time) error {
	token, err := handler.encodeDraftToken(state, now)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     draftCookieName,
		Value:    token,
		Path:     "/onboarding",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  now.Add(draftCookieTTL),
	})
	return nil
}

func (handler *Handler) clearWizardState(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     draftCookieName,
		Value:    "",
		Path:     "/onboarding",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
