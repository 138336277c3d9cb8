package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/terraincognita07/titanlift/internal/services"
)

func (handler *Handler) ShowOnboarding(c *fiber.Ctx) error {
	now := handler.now()
	state := handler.loadWizardState(c, now)
	if err := handler.saveWizardState(c, state, now); err != nil {
		log.WithError(err).Error("save onboarding draft")
	}
	return handler.render(c, "onboarding", buildOnboardingPageData(currentMessages(c), state))
}

// OnboardingDraft applies field edits for the current step and reports
// whether the step can be continued.
func (handler *Handler) OnboardingDraft(c *fiber.Ctx) error {
	now := handler.now()
	state, err := handler.editWizardState(c, now)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid onboarding input")
	}
	if err := handler.saveWizardState(c, state, now); err != nil {
		log.WithError(err).Error("save onboarding draft")
		return respondError(c, fiber.StatusInternalServerError, "failed to save onboarding draft")
	}

	valid := services.IsStepValid(state.Step, state.Draft)
	if acceptsJSON(c) || !isHTMX(c) {
		return c.JSON(fiber.Map{"valid": valid, "step": int(state.Step)})
	}
	return handler.renderPartial(c, "onboarding_continue_partial", fiber.Map{
		"Valid":      valid,
		"IsLastStep": state.Step == services.LastOnboardingStep,
	})
}

func (handler *Handler) OnboardingNext(c *fiber.Ctx) error {
	now := handler.now()
	state, err := handler.editWizardState(c, now)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid onboarding input")
	}

	next, outcome := services.Transition(state, services.WizardEvent{Kind: services.WizardAdvance})
	if outcome == services.WizardSubmit {
		return handler.submitOnboarding(c, next)
	}
	if err := handler.saveWizardState(c, next, now); err != nil {
		log.WithError(err).Error("save onboarding draft")
		return respondError(c, fiber.StatusInternalServerError, "failed to save onboarding draft")
	}

	moved := outcome == services.WizardMoved
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": moved, "step": int(next.Step)})
	}
	if moved {
		return respondRedirect(c, "/onboarding")
	}
	return handler.render(c, "onboarding", buildOnboardingPageData(currentMessages(c), next))
}

// editWizardState loads the draft cookie and applies the submitted fields to
// the current step.
func (handler *Handler) editWizardState(c *fiber.Ctx, now time.Time) (services.WizardState, error) {
	state := handler.loadWizardState(c, now)
	input, err := parseOnboardingInput(c)
	if err != nil {
		log.WithError(err).Warn("parse onboarding input")
		return state, err
	}
	state, _ = services.Transition(state, services.WizardEvent{
		Kind:   services.WizardEdit,
		Fields: input.toDraft(),
	})
	return state, nil
}

func (handler *Handler) submitOnboarding(c *fiber.Ctx, state services.WizardState) error {
	user, err := handler.onboarding.Submit(state, handler.now())
	if err != nil {
		log.WithError(err).Error("submit onboarding")
		if errors.Is(err, services.ErrOnboardingDraftInvalid) {
			return respondError(c, fiber.StatusBadRequest, "onboarding is incomplete")
		}
		return respondError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	handler.metrics.CounterOnboardingSubmits.Inc()
	handler.clearWizardState(c)
	log.WithField("user_id", user.ID).Info("onboarding completed")

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "step": int(state.Step), "user_id": user.ID})
	}
	return respondRedirect(c, "/")
}
