package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/terraincognita07/titanlift/internal/models"
)

type physicalStatsInput struct {
	HeightCM      numericInput `json:"height_cm" form:"height_cm"`
	WeightKG      numericInput `json:"weight_kg" form:"weight_kg"`
	Gender        string       `json:"gender" form:"gender"`
	ActivityLevel string       `json:"activity_level" form:"activity_level"`
}

func (input physicalStatsInput) toUpdate() (models.PhysicalStatsUpdate, bool) {
	update := models.PhysicalStatsUpdate{
		HeightCM:      input.HeightCM.Float(),
		WeightKG:      input.WeightKG.Float(),
		Gender:        strings.ToLower(strings.TrimSpace(input.Gender)),
		ActivityLevel: strings.ToLower(strings.TrimSpace(input.ActivityLevel)),
	}
	valid := update.HeightCM > 0 && update.WeightKG > 0 &&
		models.IsGender(update.Gender) && models.IsActivityLevel(update.ActivityLevel)
	return update, valid
}

func (handler *Handler) UpdatePhysicalStats(c *fiber.Ctx) error {
	input := physicalStatsInput{}
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid stats input")
	}
	update, ok := input.toUpdate()
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "invalid stats input")
	}

	userID := handler.identity.Current().UserID
	err := handler.cache.Mutate(c.UserContext(), func(ctx context.Context) error {
		return handler.backend.UpdatePhysicalStats(ctx, userID, update)
	}, statsKey(userID))
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("update physical stats")
		return respondError(c, fiber.StatusBadGateway, "failed to save stats")
	}
	return respondRedirect(c, "/profile")
}

// LogNutrition adds calories to today's total. An empty amount is a no-op.
func (handler *Handler) LogNutrition(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.FormValue("calories_in"))
	if raw == "" {
		return respondRedirect(c, "/profile")
	}
	calories := parseOptionalFloat(raw)
	if calories <= 0 {
		return respondError(c, fiber.StatusBadRequest, "invalid calories")
	}

	userID := handler.identity.Current().UserID
	err := handler.cache.Mutate(c.UserContext(), func(ctx context.Context) error {
		return handler.backend.LogNutrition(ctx, userID, models.NutritionLog{CaloriesIn: calories})
	}, nutritionKey(userID))
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("log nutrition")
		return respondError(c, fiber.StatusBadGateway, "failed to log calories")
	}
	return respondRedirect(c, "/profile")
}
