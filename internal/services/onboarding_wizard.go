package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/titanlift/internal/models"
)

type OnboardingStep int

const (
	StepWelcome OnboardingStep = iota
	StepProfile
	StepBody
	StepActivity
)

const LastOnboardingStep = StepActivity

const minUsernameLength = 2

var onboardingStepNames = [...]string{"welcome", "profile", "body", "activity"}

func (step OnboardingStep) Name() string {
	if step < StepWelcome || step > LastOnboardingStep {
		return ""
	}
	return onboardingStepNames[step]
}

// ClampOnboardingStep maps any index onto the wizard's step range.
func ClampOnboardingStep(raw int) OnboardingStep {
	if raw < int(StepWelcome) {
		return StepWelcome
	}
	if raw > int(LastOnboardingStep) {
		return LastOnboardingStep
	}
	return OnboardingStep(raw)
}

type OnboardingDraft struct {
	Username      string  `json:"username"`
	Gender        string  `json:"gender"`
	HeightCM      float64 `json:"height_cm,omitempty"`
	WeightKG      float64 `json:"weight_kg,omitempty"`
	DateOfBirth   string  `json:"date_of_birth"`
	ActivityLevel string  `json:"activity_level"`
}

type WizardState struct {
	Step      OnboardingStep
	Draft     OnboardingDraft
	MountedAt time.Time
}

func NewWizard(now time.Time) WizardState {
	return WizardState{
		Step:      StepWelcome,
		Draft:     OnboardingDraft{ActivityLevel: models.ActivityModerate},
		MountedAt: now,
	}
}

type WizardEventKind int

const (
	WizardEdit WizardEventKind = iota
	WizardAdvance
)

// WizardEvent carries field values for WizardEdit; only the current step's
// fields are taken from Fields.
type WizardEvent struct {
	Kind   WizardEventKind
	Fields OnboardingDraft
}

type WizardOutcome int

const (
	WizardStay WizardOutcome = iota
	WizardMoved
	WizardSubmit
)

func IsStepValid(step OnboardingStep, draft OnboardingDraft) bool {
	switch step {
	case StepWelcome:
		return true
	case StepProfile:
		return utf8.RuneCountInString(strings.TrimSpace(draft.Username)) >= minUsernameLength && models.IsGender(draft.Gender)
	case StepBody:
		return draft.HeightCM > 0 && draft.WeightKG > 0 && isValidBirthDate(draft.DateOfBirth)
	case StepActivity:
		return models.IsActivityLevel(draft.ActivityLevel)
	default:
		return false
	}
}

// Transition is the wizard's pure state function. Advancing an invalid step
// leaves the state unchanged.
func Transition(state WizardState, event WizardEvent) (WizardState, WizardOutcome) {
	switch event.Kind {
	case WizardEdit:
		state.Draft = applyStepFields(state.Step, state.Draft, event.Fields)
		return state, WizardStay
	case WizardAdvance:
		if !IsStepValid(state.Step, state.Draft) {
			return state, WizardStay
		}
		if state.Step < LastOnboardingStep {
			state.Step++
			return state, WizardMoved
		}
		return state, WizardSubmit
	default:
		return state, WizardStay
	}
}

func applyStepFields(step OnboardingStep, draft OnboardingDraft, fields OnboardingDraft) OnboardingDraft {
	switch step {
	case StepProfile:
		draft.Username = strings.TrimSpace(fields.Username)
		draft.Gender = strings.ToLower(strings.TrimSpace(fields.Gender))
	case StepBody:
		draft.HeightCM = fields.HeightCM
		draft.WeightKG = fields.WeightKG
		draft.DateOfBirth = strings.TrimSpace(fields.DateOfBirth)
	case StepActivity:
		draft.ActivityLevel = strings.ToLower(strings.TrimSpace(fields.ActivityLevel))
	}
	return draft
}

func isValidBirthDate(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := time.Parse(time.DateOnly, raw)
	return err == nil
}
