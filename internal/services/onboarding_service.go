package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/titanlift/internal/models"
)

var (
	ErrOnboardingDraftInvalid    = errors.New("onboarding draft is incomplete")
	ErrLocalUserStoreUnavailable = errors.New("local user store unavailable")
)

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type LocalUserRepository interface {
	Save(user models.LocalUser) error
	Load() (models.LocalUser, bool, error)
	Delete() (bool, error)
}

type OnboardingService struct {
	users LocalUserRepository
	newID func() string
}

func NewOnboardingService(users LocalUserRepository) *OnboardingService {
	return &OnboardingService{users: users, newID: uuid.NewString}
}

// Submit seals the draft into the local user record, replacing any earlier one.
func (service *OnboardingService) Submit(state WizardState, now time.Time) (models.LocalUser, error) {
	for step := StepWelcome; step <= LastOnboardingStep; step++ {
		if !IsStepValid(step, state.Draft) {
			return models.LocalUser{}, fmt.Errorf("%w: step %s", ErrOnboardingDraftInvalid, step.Name())
		}
	}

	if !now.After(state.MountedAt) {
		now = state.MountedAt.Add(time.Millisecond)
	}

	user := models.LocalUser{
		Username:      state.Draft.Username,
		Gender:        state.Draft.Gender,
		HeightCM:      state.Draft.HeightCM,
		WeightKG:      state.Draft.WeightKG,
		DateOfBirth:   state.Draft.DateOfBirth,
		ActivityLevel: state.Draft.ActivityLevel,
		ID:            service.newID(),
		CreatedAt:     now.UTC().Format(createdAtLayout),
	}
	if err := service.users.Save(user); err != nil {
		return models.LocalUser{}, fmt.Errorf("%w: %v", ErrLocalUserStoreUnavailable, err)
	}
	return user, nil
}
