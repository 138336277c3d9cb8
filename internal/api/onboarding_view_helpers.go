package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/titanlift/internal/models"
	"github.com/terraincognita07/titanlift/internal/services"
)

type onboardingInput struct {
	Username      string       `json:"username" form:"username"`
	Gender        string       `json:"gender" form:"gender"`
	HeightCM      numericInput `json:"height_cm" form:"height_cm"`
	WeightKG      numericInput `json:"weight_kg" form:"weight_kg"`
	DateOfBirth   string       `json:"date_of_birth" form:"date_of_birth"`
	ActivityLevel string       `json:"activity_level" form:"activity_level"`
}

func (input onboardingInput) toDraft() services.OnboardingDraft {
	return services.OnboardingDraft{
		Username:      input.Username,
		Gender:        input.Gender,
		HeightCM:      input.HeightCM.Float(),
		WeightKG:      input.WeightKG.Float(),
		DateOfBirth:   input.DateOfBirth,
		ActivityLevel: input.ActivityLevel,
	}
}

// numericInput holds a number submitted either as a form value or as a JSON
// number or string.
type numericInput string

func (input *numericInput) UnmarshalText(text []byte) error {
	*input = numericInput(text)
	return nil
}

func (input *numericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*input = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*input = numericInput(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*input = numericInput(number)
	return nil
}

func (input numericInput) Float() float64 {
	return parseOptionalFloat(string(input))
}

// parseOptionalFloat treats blank, malformed or non-finite input as zero,
// which every caller rejects.
func parseOptionalFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return value
}

func isJSONBody(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func parseOnboardingInput(c *fiber.Ctx) (onboardingInput, error) {
	input := onboardingInput{}
	if isJSONBody(c) {
		err := c.BodyParser(&input)
		return input, err
	}
	input.Username = c.FormValue("username")
	input.Gender = c.FormValue("gender")
	input.HeightCM = numericInput(c.FormValue("height_cm"))
	input.WeightKG = numericInput(c.FormValue("weight_kg"))
	input.DateOfBirth = c.FormValue("date_of_birth")
	input.ActivityLevel = c.FormValue("activity_level")
	return input, nil
}

type onboardingOption struct {
	Value    string
	Selected bool
}

func onboardingOptions(values []string, selected string) []onboardingOption {
	options := make([]onboardingOption, 0, len(values))
	for _, value := range values {
		options = append(options, onboardingOption{Value: value, Selected: value == selected})
	}
	return options
}

func buildOnboardingPageData(messages map[string]string, state services.WizardState) fiber.Map {
	stepCount := int(services.LastOnboardingStep) + 1
	return fiber.Map{
		"Title":      pageTitle(messages, "meta.title.onboarding", "TitanLift | Welcome"),
		"Standalone": true,
		"Step":       int(state.Step),
		"StepName":   state.Step.Name(),
		"StepNumber": int(state.Step) + 1,
		"StepCount":  stepCount,
		"Progress":   float64(int(state.Step)+1) / float64(stepCount) * 100,
		"IsLastStep": state.Step == services.LastOnboardingStep,
		"Valid":      services.IsStepValid(state.Step, state.Draft),
		"Draft":      state.Draft,
		"Genders":    onboardingOptions([]string{models.GenderMale, models.GenderFemale}, state.Draft.Gender),
		"Activities": onboardingOptions(models.ActivityLevels, state.Draft.ActivityLevel),
	}
}
