package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/titanlift/internal/models"
)

func TestNewWizardStartsOnWelcome(t *testing.T) {
	mountedAt := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	state := NewWizard(mountedAt)

	if state.Step != StepWelcome {
		t.Fatalf("expected welcome step, got %d", state.Step)
	}
	if state.Draft.ActivityLevel != models.ActivityModerate {
		t.Fatalf("expected default activity moderate, got %q", state.Draft.ActivityLevel)
	}
	if !state.MountedAt.Equal(mountedAt) {
		t.Fatalf("expected mounted_at %s, got %s", mountedAt, state.MountedAt)
	}
}

func TestIsStepValid(t *testing.T) {
	tests := []struct {
		name  string
		step  OnboardingStep
		draft OnboardingDraft
		want  bool
	}{
		{name: "welcome always valid", step: StepWelcome, want: true},
		{name: "profile valid", step: StepProfile, draft: OnboardingDraft{Username: "Al", Gender: "female"}, want: true},
		{name: "profile short username", step: StepProfile, draft: OnboardingDraft{Username: "A", Gender: "male"}, want: false},
		{name: "profile padded username", step: StepProfile, draft: OnboardingDraft{Username: " A ", Gender: "male"}, want: false},
		{name: "profile multibyte username", step: StepProfile, draft: OnboardingDraft{Username: "Ян", Gender: "male"}, want: true},
		{name: "profile missing gender", step: StepProfile, draft: OnboardingDraft{Username: "Atlas"}, want: false},
		{name: "body valid", step: StepBody, draft: OnboardingDraft{HeightCM: 175, WeightKG: 70, DateOfBirth: "1990-01-31"}, want: true},
		{name: "body zero height", step: StepBody, draft: OnboardingDraft{WeightKG: 70, DateOfBirth: "1990-01-31"}, want: false},
		{name: "body negative weight", step: StepBody, draft: OnboardingDraft{HeightCM: 175, WeightKG: -1, DateOfBirth: "1990-01-31"}, want: false},
		{name: "body bad date", step: StepBody, draft: OnboardingDraft{HeightCM: 175, WeightKG: 70, DateOfBirth: "31/01/1990"}, want: false},
		{name: "activity valid", step: StepActivity, draft: OnboardingDraft{ActivityLevel: "athlete"}, want: true},
		{name: "activity unknown", step: StepActivity, draft: OnboardingDraft{ActivityLevel: "couch"}, want: false},
		{name: "out of range step", step: OnboardingStep(9), want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := IsStepValid(testCase.step, testCase.draft); got != testCase.want {
				t.Fatalf("IsStepValid() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestTransitionAdvancesThroughSteps(t *testing.T) {
	state := NewWizard(time.Now())

	state, outcome := Transition(state, WizardEvent{Kind: WizardAdvance})
	if outcome != WizardMoved || state.Step != StepProfile {
		t.Fatalf("expected move to profile, got outcome=%d step=%d", outcome, state.Step)
	}

	state, _ = Transition(state, WizardEvent{Kind: WizardEdit, Fields: OnboardingDraft{Username: "  Atlas ", Gender: "Male"}})
	if state.Draft.Username != "Atlas" || state.Draft.Gender != "male" {
		t.Fatalf("expected normalized profile fields, got %+v", state.Draft)
	}

	state, outcome = Transition(state, WizardEvent{Kind: WizardAdvance})
	if outcome != WizardMoved || state.Step != StepBody {
		t.Fatalf("expected move to body, got outcome=%d step=%d", outcome, state.Step)
	}

	state, _ = Transition(state, WizardEvent{Kind: WizardEdit, Fields: OnboardingDraft{HeightCM: 182, WeightKG: 90, DateOfBirth: "1992-06-01"}})
	state, outcome = Transition(state, WizardEvent{Kind: WizardAdvance})
	if outcome != WizardMoved || state.Step != StepActivity {
		t.Fatalf("expected move to activity, got outcome=%d step=%d", outcome, state.Step)
	}

	state, outcome = Transition(state, WizardEvent{Kind: WizardAdvance})
	if outcome != WizardSubmit {
		t.Fatalf("expected submit on last valid step, got %d", outcome)
	}
	if state.Step != StepActivity {
		t.Fatalf("expected step to stay on activity after submit, got %d", state.Step)
	}
}

func TestTransitionInvalidStepStaysPut(t *testing.T) {
	state := NewWizard(time.Now())
	state.Step = StepProfile
	state.Draft.Username = "A"
	state.Draft.Gender = models.GenderFemale

	next, outcome := Transition(state, WizardEvent{Kind: WizardAdvance})
	if outcome != WizardStay {
		t.Fatalf("expected stay, got %d", outcome)
	}
	if next != state {
		t.Fatalf("expected unchanged state, got %+v", next)
	}
}

func TestTransitionEditOnlyTouchesCurrentStep(t *testing.T) {
	state := NewWizard(time.Now())
	state.Step = StepBody
	state.Draft.Username = "Atlas"

	next, outcome := Transition(state, WizardEvent{
		Kind:   WizardEdit,
		Fields: OnboardingDraft{Username: "Intruder", HeightCM: 170, WeightKG: 65, DateOfBirth: "2000-02-02"},
	})
	if outcome != WizardStay {
		t.Fatalf("expected stay on edit, got %d", outcome)
	}
	if next.Draft.Username != "Atlas" {
		t.Fatalf("expected username untouched on body step, got %q", next.Draft.Username)
	}
	if next.Draft.HeightCM != 170 || next.Draft.DateOfBirth != "2000-02-02" {
		t.Fatalf("expected body fields applied, got %+v", next.Draft)
	}
}

func TestClampOnboardingStep(t *testing.T) {
	if got := ClampOnboardingStep(-3); got != StepWelcome {
		t.Fatalf("ClampOnboardingStep(-3) = %d", got)
	}
	if got := ClampOnboardingStep(2); got != StepBody {
		t.Fatalf("ClampOnboardingStep(2) = %d", got)
	}
	if got := ClampOnboardingStep(17); got != LastOnboardingStep {
		t.Fatalf("ClampOnboardingStep(17) = %d", got)
	}
	if StepActivity.Name() != "activity" || OnboardingStep(8).Name() != "" {
		t.Fatalf("unexpected step names")
	}
}
